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

type IRecognitionController interface {
	RegisterRoutes(r fiber.Router)
	RecognizeFrame(ctx *fiber.Ctx) error
}

type recognitionController struct {
	service service.IRecognitionService
}

func NewRecognitionController(service service.IRecognitionService) IRecognitionController {
	return &recognitionController{service: service}
}

func (c *recognitionController) RegisterRoutes(r fiber.Router) {
	// Shares the /sessions prefix with the session controller, so the role
	// guard stays on the route itself.
	r.Post("/sessions/:id/recognize",
		serverutils.JwtMiddleware,
		serverutils.RequireRole(entity.RoleInstructor, entity.RoleAdmin),
		c.RecognizeFrame,
	)
}

func (c *recognitionController) RecognizeFrame(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	file, err := ctx.FormFile("frame")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Frame image is required"))
	}
	f, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Cannot read frame image"))
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Cannot read frame image"))
	}

	res, err := c.service.RecognizeFrame(ctx.Context(), &dto.RecognizeFrameRequest{
		SessionId: sessionId,
		Image:     image,
	})
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Frame processed", res))
}
