package controller

import (
	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGithubController interface {
	RegisterRoutes(r fiber.Router)
	GetIssue(ctx *fiber.Ctx) error
}

type githubController struct {
	githubService service.IGithubService
}

func NewGithubController(githubService service.IGithubService) IGithubController {
	return &githubController{githubService: githubService}
}

func (c *githubController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/github")
	h.Post("/issue", c.GetIssue)
}

func (c *githubController) GetIssue(ctx *fiber.Ctx) error {
	var req dto.IssueRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("request body is not valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.githubService.GetIssue(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
