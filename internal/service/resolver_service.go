package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/internal/repository/memory"
	"ide-assistant-be/internal/repository/specification"
	"ide-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IResolverService bundles the identity and conversation-context resolution
// shared by the assistant and database services.
type IResolverService interface {
	// GetUser resolves an access token to a stored user. It never creates a
	// user as a side effect; that only happens in the OAuth login flow.
	GetUser(ctx context.Context, accessToken string) (*entity.User, error)

	// GetOrCreateProject and GetOrCreateDiscussion are idempotent:
	// concurrent calls for the same key resolve to the same entity.
	GetOrCreateProject(ctx context.Context, name string) (*entity.Project, error)
	GetOrCreateDiscussion(ctx context.Context, user *entity.User, project *entity.Project) (*entity.Discussion, error)
}

type resolverService struct {
	uowFactory  unitofwork.RepositoryFactory
	oauthClient OAuthClient
	tokenCache  memory.TokenCache
}

func NewResolverService(
	uowFactory unitofwork.RepositoryFactory,
	oauthClient OAuthClient,
	tokenCache memory.TokenCache,
) IResolverService {
	return &resolverService{
		uowFactory:  uowFactory,
		oauthClient: oauthClient,
		tokenCache:  tokenCache,
	}
}

func (s *resolverService) GetUser(ctx context.Context, accessToken string) (*entity.User, error) {
	login, found := s.tokenCache.Get(ctx, accessToken)
	if !found {
		resolved, err := s.oauthClient.GetUserLogin(ctx, accessToken)
		if err != nil {
			return nil, serverutils.NewUpstreamError(0, fmt.Sprintf("resolving token: %v", err))
		}
		login = resolved
		s.tokenCache.Save(ctx, accessToken, login)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByLogin{Login: login})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFoundError(fmt.Sprintf("no user found for login %q", login))
	}
	return user, nil
}

func (s *resolverService) GetOrCreateProject(ctx context.Context, name string) (*entity.Project, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	projects := uow.ProjectRepository()

	project, err := projects.FindOne(ctx, specification.ByProjectName{Name: name})
	if err != nil {
		return nil, err
	}
	if project != nil {
		return project, nil
	}

	candidate := &entity.Project{
		Id:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	// Insert-if-absent: a concurrent duplicate lands on the unique name and
	// is a no-op, so refetch to get whichever row won.
	if err := projects.CreateIfAbsent(ctx, candidate); err != nil {
		return nil, err
	}

	project, err = projects.FindOne(ctx, specification.ByProjectName{Name: name})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %q missing after create", name)
	}
	log.Printf("[Resolver] Resolved project %q -> %s", name, project.Id)
	return project, nil
}

func (s *resolverService) GetOrCreateDiscussion(ctx context.Context, user *entity.User, project *entity.Project) (*entity.Discussion, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	discussions := uow.DiscussionRepository()

	pair := specification.ByUserAndProject{UserID: user.Id, ProjectID: project.Id}
	discussion, err := discussions.FindOne(ctx, pair)
	if err != nil {
		return nil, err
	}
	if discussion != nil {
		return discussion, nil
	}

	candidate := &entity.Discussion{
		Id:        uuid.New(),
		UserId:    user.Id,
		ProjectId: project.Id,
		CreatedAt: time.Now(),
	}
	if err := discussions.CreateIfAbsent(ctx, candidate); err != nil {
		return nil, err
	}

	discussion, err = discussions.FindOne(ctx, pair)
	if err != nil {
		return nil, err
	}
	if discussion == nil {
		return nil, fmt.Errorf("discussion for user %s project %s missing after create", user.Id, project.Id)
	}
	return discussion, nil
}
