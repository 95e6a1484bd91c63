package service

import "context"

// OAuthClient is the identity-provider contract the services depend on.
// pkg/github.Client is the production implementation.
type OAuthClient interface {
	GetAccessToken(ctx context.Context, code string) (string, error)
	GetUserLogin(ctx context.Context, accessToken string) (string, error)
}
