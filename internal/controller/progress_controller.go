package controller

import (
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProgressController interface {
	RegisterRoutes(r fiber.Router)
	RecordView(ctx *fiber.Ctx) error
	MarkComplete(ctx *fiber.Ctx) error
	GetSummary(ctx *fiber.Ctx) error
}

type progressController struct {
	progressService service.IProgressService
}

func NewProgressController(progressService service.IProgressService) IProgressController {
	return &progressController{
		progressService: progressService,
	}
}

func (c *progressController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/progress/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chapter/:id/view", c.RecordView)
	h.Post("chapter/:id/complete", c.MarkComplete)
	h.Get("course/:id/summary", c.GetSummary)
}

func (c *progressController) RecordView(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	chapterId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.InvalidInput("invalid chapter id")
	}

	if err := c.progressService.RecordView(ctx.Context(), userId, chapterId); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *progressController) MarkComplete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	userEmail, _ := ctx.Locals("user_email").(string)

	chapterId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.InvalidInput("invalid chapter id")
	}

	if err := c.progressService.MarkComplete(ctx.Context(), userId, userEmail, chapterId); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *progressController) GetSummary(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	courseId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.InvalidInput("invalid course id")
	}

	res, err := c.progressService.GetSummary(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show progress summary", res))
}
