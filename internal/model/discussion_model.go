package model

import (
	"time"

	"github.com/google/uuid"
)

type Discussion struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Composite unique index closes the find-then-create race: concurrent
	// creates for the same pair conflict instead of duplicating.
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_discussions_user_project"`
	ProjectId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_discussions_user_project"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User    *User    `gorm:"foreignKey:UserId"`
	Project *Project `gorm:"foreignKey:ProjectId"`
}

func (Discussion) TableName() string {
	return "discussions"
}
