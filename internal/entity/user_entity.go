package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is created on first successful GitHub OAuth login, or seeded via cmd/seed.
// Immutable except Role.
type User struct {
	Id        uuid.UUID
	Login     string
	Role      UserRole
	CreatedAt time.Time
}
