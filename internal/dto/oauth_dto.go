package dto

type OAuthRequest struct {
	Code string `json:"code" validate:"required"`
}

type OAuthResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
}

type ValidateTokenResponse struct {
	Success bool `json:"success"`
}
