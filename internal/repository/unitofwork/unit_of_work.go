package unitofwork

import (
	"ide-assistant-be/internal/repository/contract"
)

// UnitOfWork bundles the repositories behind a single database handle for
// the lifetime of one request.
type UnitOfWork interface {
	UserRepository() contract.UserRepository
	ProjectRepository() contract.ProjectRepository
	DiscussionRepository() contract.DiscussionRepository
	MessageRepository() contract.MessageRepository
}
