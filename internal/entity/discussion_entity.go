package entity

import (
	"time"

	"github.com/google/uuid"
)

// Discussion is the conversation thread between one user and one project.
// A discussion always references an existing user and project; the pair is
// unique, enforced by a composite index at the store level.
type Discussion struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ProjectId uuid.UUID
	CreatedAt time.Time
}
