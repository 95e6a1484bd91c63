package contract

import (
	"context"

	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DiscussionRepository interface {
	// CreateIfAbsent inserts the discussion unless one for the same
	// (user, project) pair exists. A concurrent duplicate insert is not an
	// error; the caller refetches.
	CreateIfAbsent(ctx context.Context, discussion *entity.Discussion) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Discussion, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Discussion, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
