package controller

import (
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	GetChapters(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService service.ICourseService
}

func NewCourseController(courseService service.ICourseService) ICourseController {
	return &courseController{
		courseService: courseService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/course/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id/chapters", c.GetChapters)
}

func (c *courseController) List(ctx *fiber.Ctx) error {
	res, err := c.courseService.GetCourses(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list courses", res))
}

func (c *courseController) GetChapters(ctx *fiber.Ctx) error {
	courseId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.InvalidInput("invalid course id")
	}

	res, err := c.courseService.GetChapters(ctx.Context(), courseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list chapters", res))
}
