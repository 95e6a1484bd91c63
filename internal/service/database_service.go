package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/internal/repository/specification"
	"ide-assistant-be/internal/repository/unitofwork"
	"ide-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

// IDatabaseService exposes the stored conversation data for inspection and
// the feedback/lead-management mutations.
type IDatabaseService interface {
	GetAllUsers(ctx context.Context) ([]*dto.UserDTO, error)
	GetAllProjects(ctx context.Context) ([]*dto.ProjectDTO, error)
	GetDiscussionsByProject(ctx context.Context, projectName string) ([]*dto.DiscussionDTO, error)
	GetMessagesByDiscussion(ctx context.Context, discussionId uuid.UUID) ([]*dto.MessageRecordDTO, error)
	RateMessage(ctx context.Context, accessToken string, request *dto.RateMessageRequest) error
	AddProjectLead(ctx context.Context, projectName, login string) error
	RemoveProjectLead(ctx context.Context, projectName, login string) error
}

type databaseService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   IResolverService
}

func NewDatabaseService(uowFactory unitofwork.RepositoryFactory, resolver IResolverService) IDatabaseService {
	return &databaseService{uowFactory: uowFactory, resolver: resolver}
}

func (s *databaseService) GetAllUsers(ctx context.Context) ([]*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, &dto.UserDTO{Id: u.Id, Login: u.Login, Role: string(u.Role)})
	}
	return result, nil
}

func (s *databaseService) GetAllProjects(ctx context.Context) ([]*dto.ProjectDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	projects, err := uow.ProjectRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		result = append(result, &dto.ProjectDTO{Id: p.Id, Name: p.Name, ProjectLeads: p.ProjectLeads})
	}
	return result, nil
}

func (s *databaseService) GetDiscussionsByProject(ctx context.Context, projectName string) ([]*dto.DiscussionDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := s.findProject(ctx, uow, projectName)
	if err != nil {
		return nil, err
	}

	discussions, err := uow.DiscussionRepository().FindAll(ctx, specification.ByProjectID{ProjectID: project.Id})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DiscussionDTO, 0, len(discussions))
	for _, d := range discussions {
		result = append(result, &dto.DiscussionDTO{Id: d.Id, UserId: d.UserId, ProjectId: d.ProjectId})
	}
	return result, nil
}

func (s *databaseService) GetMessagesByDiscussion(ctx context.Context, discussionId uuid.UUID) ([]*dto.MessageRecordDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByDiscussionID{DiscussionID: discussionId},
		specification.OrderBy{Field: "date", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageRecordDTO, 0, len(messages))
	for _, m := range messages {
		record := &dto.MessageRecordDTO{
			Id:           m.Id,
			DiscussionId: m.DiscussionId,
			Role:         m.Role,
			Content:      m.Content,
			Date:         m.Date,
			Rating:       m.Rating,
			Feedback:     m.Feedback,
		}
		if len(m.ToolCalls) > 0 {
			var calls []llm.ToolCall
			if err := json.Unmarshal(m.ToolCalls, &calls); err != nil {
				return nil, fmt.Errorf("decode stored tool calls for message %s: %w", m.Id, err)
			}
			record.ToolCalls = calls
		}
		result = append(result, record)
	}
	return result, nil
}

// RateMessage lets a user rate an assistant reply in their own discussion.
func (s *databaseService) RateMessage(ctx context.Context, accessToken string, request *dto.RateMessageRequest) error {
	user, err := s.resolver.GetUser(ctx, accessToken)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: request.MessageId})
	if err != nil {
		return err
	}
	if message == nil {
		return serverutils.NewNotFoundError(fmt.Sprintf("no message found with id %s", request.MessageId))
	}

	discussion, err := uow.DiscussionRepository().FindOne(ctx, specification.ByID{ID: message.DiscussionId})
	if err != nil {
		return err
	}
	if discussion == nil || discussion.UserId != user.Id {
		return serverutils.NewAuthorizationError("message does not belong to the requester")
	}

	return uow.MessageRepository().UpdateRating(ctx, message.Id, request.Rating, request.Feedback)
}

func (s *databaseService) AddProjectLead(ctx context.Context, projectName, login string) error {
	project, user, err := s.findProjectAndUser(ctx, projectName, login)
	if err != nil {
		return err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProjectRepository().AddLead(ctx, project.Id, user.Id)
}

func (s *databaseService) RemoveProjectLead(ctx context.Context, projectName, login string) error {
	project, user, err := s.findProjectAndUser(ctx, projectName, login)
	if err != nil {
		return err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProjectRepository().RemoveLead(ctx, project.Id, user.Id)
}

func (s *databaseService) findProject(ctx context.Context, uow unitofwork.UnitOfWork, name string) (*entity.Project, error) {
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByProjectName{Name: name})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NewNotFoundError(fmt.Sprintf("no project found with name %q", name))
	}
	return project, nil
}

func (s *databaseService) findProjectAndUser(ctx context.Context, projectName, login string) (*entity.Project, *entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := s.findProject(ctx, uow, projectName)
	if err != nil {
		return nil, nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByLogin{Login: login})
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, serverutils.NewNotFoundError(fmt.Sprintf("no user found for login %q", login))
	}
	return project, user, nil
}
