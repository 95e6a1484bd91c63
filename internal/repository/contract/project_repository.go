package contract

import (
	"context"

	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProjectRepository interface {
	// CreateIfAbsent inserts the project unless one with the same name exists.
	// A concurrent duplicate insert is not an error; the caller refetches.
	CreateIfAbsent(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	AddLead(ctx context.Context, projectId, userId uuid.UUID) error
	RemoveLead(ctx context.Context, projectId, userId uuid.UUID) error
}
