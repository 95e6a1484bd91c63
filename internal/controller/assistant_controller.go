package controller

import (
	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Answer(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	GenerateReadme(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/services/aiAssistantBackend")
	h.Post("", c.Answer)
	h.Get("/summarize/:project_name", c.Summarize)
	h.Post("/generateReadme/:project_name", c.GenerateReadme)
}

func (c *assistantController) Answer(ctx *fiber.Ctx) error {
	var req dto.MessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("request body is not valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Answer(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) Summarize(ctx *fiber.Ctx) error {
	projectName := ctx.Params("project_name")

	accessToken, ok := serverutils.BearerToken(ctx)
	if !ok {
		return serverutils.NewAuthorizationError("missing access token")
	}

	res, err := c.assistantService.Summarize(ctx.Context(), projectName, accessToken)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) GenerateReadme(ctx *fiber.Ctx) error {
	projectName := ctx.Params("project_name")

	accessToken, ok := serverutils.BearerToken(ctx)
	if !ok {
		return serverutils.NewAuthorizationError("missing access token")
	}

	var req dto.GenerateReadmeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("request body is not valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.GenerateReadme(ctx.Context(), projectName, accessToken, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
