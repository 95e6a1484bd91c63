package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project is created lazily the first time a message references an unknown
// project name. ProjectLeads grows only via explicit lead assignment.
type Project struct {
	Id           uuid.UUID
	Name         string
	ProjectLeads []uuid.UUID
	CreatedAt    time.Time
}

// HasLead reports whether the given user is a lead of this project.
func (p *Project) HasLead(userId uuid.UUID) bool {
	for _, id := range p.ProjectLeads {
		if id == userId {
			return true
		}
	}
	return false
}
