package mapper

import (
	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AssistantMapper converts between domain entities and persistence models for
// the assistant aggregate (users, projects, discussions, messages).
type AssistantMapper struct{}

func NewAssistantMapper() *AssistantMapper {
	return &AssistantMapper{}
}

func (m *AssistantMapper) UserToModel(e *entity.User) *model.User {
	return &model.User{
		Id:        e.Id,
		Login:     e.Login,
		Role:      string(e.Role),
		CreatedAt: e.CreatedAt,
	}
}

func (m *AssistantMapper) UserToEntity(mo *model.User) *entity.User {
	return &entity.User{
		Id:        mo.Id,
		Login:     mo.Login,
		Role:      entity.UserRole(mo.Role),
		CreatedAt: mo.CreatedAt,
	}
}

func (m *AssistantMapper) ProjectToModel(e *entity.Project) *model.Project {
	leads := make([]model.ProjectLead, 0, len(e.ProjectLeads))
	for _, userId := range e.ProjectLeads {
		leads = append(leads, model.ProjectLead{
			Id:        uuid.New(),
			ProjectId: e.Id,
			UserId:    userId,
		})
	}
	return &model.Project{
		Id:        e.Id,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
		Leads:     leads,
	}
}

func (m *AssistantMapper) ProjectToEntity(mo *model.Project) *entity.Project {
	leads := make([]uuid.UUID, 0, len(mo.Leads))
	for _, lead := range mo.Leads {
		leads = append(leads, lead.UserId)
	}
	return &entity.Project{
		Id:           mo.Id,
		Name:         mo.Name,
		ProjectLeads: leads,
		CreatedAt:    mo.CreatedAt,
	}
}

func (m *AssistantMapper) DiscussionToModel(e *entity.Discussion) *model.Discussion {
	return &model.Discussion{
		Id:        e.Id,
		UserId:    e.UserId,
		ProjectId: e.ProjectId,
		CreatedAt: e.CreatedAt,
	}
}

func (m *AssistantMapper) DiscussionToEntity(mo *model.Discussion) *entity.Discussion {
	return &entity.Discussion{
		Id:        mo.Id,
		UserId:    mo.UserId,
		ProjectId: mo.ProjectId,
		CreatedAt: mo.CreatedAt,
	}
}

func (m *AssistantMapper) MessageToModel(e *entity.Message) *model.Message {
	var toolCalls datatypes.JSON
	if len(e.ToolCalls) > 0 {
		toolCalls = datatypes.JSON(e.ToolCalls)
	}
	return &model.Message{
		Id:           e.Id,
		DiscussionId: e.DiscussionId,
		Role:         e.Role,
		Content:      e.Content,
		ToolCalls:    toolCalls,
		Date:         e.Date,
		Rating:       e.Rating,
		Feedback:     e.Feedback,
	}
}

func (m *AssistantMapper) MessageToEntity(mo *model.Message) *entity.Message {
	var toolCalls []byte
	if len(mo.ToolCalls) > 0 {
		toolCalls = []byte(mo.ToolCalls)
	}
	return &entity.Message{
		Id:           mo.Id,
		DiscussionId: mo.DiscussionId,
		Role:         mo.Role,
		Content:      mo.Content,
		ToolCalls:    toolCalls,
		Date:         mo.Date,
		Rating:       mo.Rating,
		Feedback:     mo.Feedback,
	}
}

func (m *AssistantMapper) MessagesToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(models))
	for i, mo := range models {
		entities[i] = m.MessageToEntity(mo)
	}
	return entities
}
