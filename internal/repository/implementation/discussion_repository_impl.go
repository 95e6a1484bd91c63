package implementation

import (
	"context"
	"errors"

	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/mapper"
	"ide-assistant-be/internal/model"
	"ide-assistant-be/internal/repository/contract"
	"ide-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DiscussionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssistantMapper
}

func NewDiscussionRepository(db *gorm.DB) contract.DiscussionRepository {
	return &DiscussionRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssistantMapper(),
	}
}

func (r *DiscussionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DiscussionRepositoryImpl) CreateIfAbsent(ctx context.Context, discussion *entity.Discussion) error {
	m := r.mapper.DiscussionToModel(discussion)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
			DoNothing: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*discussion = *r.mapper.DiscussionToEntity(m)
	return nil
}

func (r *DiscussionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Discussion{}, id).Error
}

func (r *DiscussionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Discussion, error) {
	var m model.Discussion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DiscussionToEntity(&m), nil
}

func (r *DiscussionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Discussion, error) {
	var models []*model.Discussion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Discussion, len(models))
	for i, m := range models {
		entities[i] = r.mapper.DiscussionToEntity(m)
	}
	return entities, nil
}

func (r *DiscussionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Discussion{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
