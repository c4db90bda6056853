package controller

import (
	"io"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/serverutils"
	"facelog-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEnrollmentController interface {
	RegisterRoutes(r fiber.Router)
	EnrollFace(ctx *fiber.Ctx) error
}

type enrollmentController struct {
	service service.IEnrollmentService
}

func NewEnrollmentController(service service.IEnrollmentService) IEnrollmentController {
	return &enrollmentController{service: service}
}

func (c *enrollmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/students")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
	h.Post("/:id/face", c.EnrollFace)
}

func (c *enrollmentController) EnrollFace(ctx *fiber.Ctx) error {
	studentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid student ID"))
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Photo is required"))
	}
	f, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Cannot read photo"))
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Cannot read photo"))
	}

	res, err := c.service.EnrollFace(ctx.Context(), &dto.EnrollFaceRequest{
		StudentId: studentId,
		Image:     image,
	})
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Face enrolled", res))
}
