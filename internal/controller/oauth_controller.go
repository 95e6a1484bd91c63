package controller

import (
	"log"

	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	ValidateToken(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/github-oauth")
	h.Post("/", c.Login)
	h.Get("/validate-token/", c.ValidateToken)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	var req dto.OAuthRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("request body is not valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		log.Printf("[OAuth] Login failed: %v", err)
		return err
	}

	return ctx.JSON(res)
}

func (c *oauthController) ValidateToken(ctx *fiber.Ctx) error {
	accessToken, ok := serverutils.BearerToken(ctx)
	if !ok {
		return serverutils.NewAuthorizationError("missing access token")
	}

	valid, err := c.service.ValidateToken(ctx.Context(), accessToken)
	if err != nil {
		return err
	}

	// Token validity must not be served from intermediary caches.
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	if !valid {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ValidateTokenResponse{Success: false})
	}
	return ctx.JSON(dto.ValidateTokenResponse{Success: true})
}
