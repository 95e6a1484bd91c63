package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByLogin filters users by their unique login
type ByLogin struct {
	Login string
}

func (s ByLogin) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("login = ?", s.Login)
}

// ByProjectName filters projects by their unique name
type ByProjectName struct {
	Name string
}

func (s ByProjectName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// ByUserAndProject filters discussions by their (user, project) pair
type ByUserAndProject struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

func (s ByUserAndProject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? AND project_id = ?", s.UserID, s.ProjectID)
}

// ByProjectID filters discussions by owning project
type ByProjectID struct {
	ProjectID uuid.UUID
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

// ByDiscussionID filters messages by owning discussion
type ByDiscussionID struct {
	DiscussionID uuid.UUID
}

func (s ByDiscussionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("discussion_id = ?", s.DiscussionID)
}

// ByDiscussionIDs filters messages by a set of discussions
type ByDiscussionIDs struct {
	DiscussionIDs []uuid.UUID
}

func (s ByDiscussionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("discussion_id IN ?", s.DiscussionIDs)
}
