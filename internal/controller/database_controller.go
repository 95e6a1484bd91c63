package controller

import (
	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDatabaseController interface {
	RegisterRoutes(r fiber.Router)
	ListUsers(ctx *fiber.Ctx) error
	ListProjects(ctx *fiber.Ctx) error
	ListDiscussions(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	RateMessage(ctx *fiber.Ctx) error
}

type databaseController struct {
	databaseService service.IDatabaseService
}

func NewDatabaseController(databaseService service.IDatabaseService) IDatabaseController {
	return &databaseController{databaseService: databaseService}
}

func (c *databaseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/database")
	h.Get("/users", c.ListUsers)
	h.Get("/projects", c.ListProjects)
	h.Get("/projects/:project_name/discussions", c.ListDiscussions)
	h.Get("/discussions/:id/messages", c.ListMessages)
	h.Put("/messages", c.RateMessage)
}

func (c *databaseController) ListUsers(ctx *fiber.Ctx) error {
	res, err := c.databaseService.GetAllUsers(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *databaseController) ListProjects(ctx *fiber.Ctx) error {
	res, err := c.databaseService.GetAllProjects(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *databaseController) ListDiscussions(ctx *fiber.Ctx) error {
	res, err := c.databaseService.GetDiscussionsByProject(ctx.Context(), ctx.Params("project_name"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *databaseController) ListMessages(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("discussion id is not a valid uuid")
	}

	res, err := c.databaseService.GetMessagesByDiscussion(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *databaseController) RateMessage(ctx *fiber.Ctx) error {
	accessToken, ok := serverutils.BearerToken(ctx)
	if !ok {
		return serverutils.NewAuthorizationError("missing access token")
	}

	var req dto.RateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("request body is not valid JSON")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.databaseService.RateMessage(ctx.Context(), accessToken, &req); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{"success": true})
}
