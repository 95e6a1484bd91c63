package contract

import (
	"context"

	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// UpdateRating mutates the only post-creation mutable fields.
	UpdateRating(ctx context.Context, id uuid.UUID, rating *int, feedback *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
