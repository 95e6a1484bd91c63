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

type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssistantMapper
}

func NewProjectRepository(db *gorm.DB) contract.ProjectRepository {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssistantMapper(),
	}
}

func (r *ProjectRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProjectRepositoryImpl) CreateIfAbsent(ctx context.Context, project *entity.Project) error {
	m := r.mapper.ProjectToModel(project)
	// Insert-if-absent on the unique name. On conflict the insert is a no-op
	// and the caller refetches the winning row.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*project = *r.mapper.ProjectToEntity(m)
	return nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Project{}, id).Error
}

func (r *ProjectRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	var m model.Project
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Leads"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProjectToEntity(&m), nil
}

func (r *ProjectRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	var models []*model.Project
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Leads"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Project, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ProjectToEntity(m)
	}
	return entities, nil
}

func (r *ProjectRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Project{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProjectRepositoryImpl) AddLead(ctx context.Context, projectId, userId uuid.UUID) error {
	lead := &model.ProjectLead{
		Id:        uuid.New(),
		ProjectId: projectId,
		UserId:    userId,
	}
	// Idempotent: re-assigning an existing lead is a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(lead).Error
}

func (r *ProjectRepositoryImpl) RemoveLead(ctx context.Context, projectId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectId, userId).
		Delete(&model.ProjectLead{}).Error
}
