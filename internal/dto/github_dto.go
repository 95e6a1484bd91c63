package dto

import "ide-assistant-be/pkg/github"

type IssueRequest struct {
	AccessToken string          `json:"access_token" validate:"required"`
	Issue       github.IssueRef `json:"issue" validate:"required"`
}

type IssueResponse struct {
	Success bool          `json:"success"`
	Issue   *github.Issue `json:"issue"`
}
