package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DiscussionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role         string         `gorm:"type:varchar(50);not null"`
	Content      string         `gorm:"type:text;not null"`
	ToolCalls    datatypes.JSON `gorm:"type:jsonb"`
	Date         time.Time      `gorm:"autoCreateTime"`
	Rating       *int
	Feedback     *string `gorm:"type:text"`

	Discussion *Discussion `gorm:"foreignKey:DiscussionId"`
}

func (Message) TableName() string {
	return "messages"
}
