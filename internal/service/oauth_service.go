package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/internal/repository/memory"
	"ide-assistant-be/internal/repository/specification"
	"ide-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IOAuthService interface {
	// Login exchanges a GitHub authorization code for an access token and
	// registers the user on first login.
	Login(ctx context.Context, request *dto.OAuthRequest) (*dto.OAuthResponse, error)

	// ValidateToken reports whether the token maps to a registered user.
	ValidateToken(ctx context.Context, accessToken string) (bool, error)
}

type oauthService struct {
	uowFactory  unitofwork.RepositoryFactory
	oauthClient OAuthClient
	tokenCache  memory.TokenCache
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	oauthClient OAuthClient,
	tokenCache memory.TokenCache,
) IOAuthService {
	return &oauthService{
		uowFactory:  uowFactory,
		oauthClient: oauthClient,
		tokenCache:  tokenCache,
	}
}

func (s *oauthService) Login(ctx context.Context, request *dto.OAuthRequest) (*dto.OAuthResponse, error) {
	accessToken, err := s.oauthClient.GetAccessToken(ctx, request.Code)
	if err != nil {
		return nil, serverutils.NewUpstreamError(0, fmt.Sprintf("exchanging authorization code: %v", err))
	}

	login, err := s.oauthClient.GetUserLogin(ctx, accessToken)
	if err != nil {
		return nil, serverutils.NewUpstreamError(0, fmt.Sprintf("resolving token: %v", err))
	}
	s.tokenCache.Save(ctx, accessToken, login)

	if err := s.ensureUser(ctx, login); err != nil {
		return nil, err
	}

	return &dto.OAuthResponse{Success: true, AccessToken: accessToken}, nil
}

func (s *oauthService) ValidateToken(ctx context.Context, accessToken string) (bool, error) {
	login, found := s.tokenCache.Get(ctx, accessToken)
	if !found {
		resolved, err := s.oauthClient.GetUserLogin(ctx, accessToken)
		if err != nil {
			return false, nil
		}
		login = resolved
		s.tokenCache.Save(ctx, accessToken, login)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByLogin{Login: login})
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// ensureUser registers the login on first sight. A concurrent first login
// loses the insert to the unique login index; the refetch settles it.
func (s *oauthService) ensureUser(ctx context.Context, login string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users := uow.UserRepository()

	user, err := users.FindOne(ctx, specification.ByLogin{Login: login})
	if err != nil {
		return err
	}
	if user != nil {
		return nil
	}

	candidate := &entity.User{
		Id:        uuid.New(),
		Login:     login,
		Role:      entity.UserRoleUser,
		CreatedAt: time.Now(),
	}
	if err := users.Create(ctx, candidate); err != nil {
		existing, findErr := users.FindOne(ctx, specification.ByLogin{Login: login})
		if findErr == nil && existing != nil {
			return nil
		}
		return err
	}
	log.Printf("[OAuth] Registered user %q", login)
	return nil
}
