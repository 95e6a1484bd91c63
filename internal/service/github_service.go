package service

import (
	"context"
	"errors"
	"fmt"

	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/pkg/github"
)

type IGithubService interface {
	GetIssue(ctx context.Context, request *dto.IssueRequest) (*dto.IssueResponse, error)
}

type githubService struct {
	client *github.Client
}

func NewGithubService(client *github.Client) IGithubService {
	return &githubService{client: client}
}

func (s *githubService) GetIssue(ctx context.Context, request *dto.IssueRequest) (*dto.IssueResponse, error) {
	issue, err := s.client.GetIssue(ctx, request.AccessToken, request.Issue)
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) {
			return nil, serverutils.NewUpstreamError(apiErr.StatusCode, apiErr.Message)
		}
		return nil, serverutils.NewUpstreamError(0, fmt.Sprintf("fetching issue: %v", err))
	}
	return &dto.IssueResponse{Success: true, Issue: issue}, nil
}
