package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Leads []ProjectLead `gorm:"foreignKey:ProjectId"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectLead is the membership row granting a user the project-lead role on
// one project.
type ProjectLead struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_leads_pair"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_leads_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ProjectLead) TableName() string {
	return "project_leads"
}
