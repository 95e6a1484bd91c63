package unitofwork

import (
	"ide-assistant-be/internal/repository/contract"
	"ide-assistant-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.db)
}

func (u *UnitOfWorkImpl) ProjectRepository() contract.ProjectRepository {
	return implementation.NewProjectRepository(u.db)
}

func (u *UnitOfWorkImpl) DiscussionRepository() contract.DiscussionRepository {
	return implementation.NewDiscussionRepository(u.db)
}

func (u *UnitOfWorkImpl) MessageRepository() contract.MessageRepository {
	return implementation.NewMessageRepository(u.db)
}
