package controller

import (
	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/serverutils"
	"facelog-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFichaController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	EnrollStudents(ctx *fiber.Ctx) error
	ListStudents(ctx *fiber.Ctx) error
}

type fichaController struct {
	service service.IFichaService
}

func NewFichaController(service service.IFichaService) IFichaController {
	return &fichaController{service: service}
}

func (c *fichaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/fichas")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Get("/:id/students", c.ListStudents)

	// Per-route guards: a group-level Use would also catch routes other
	// controllers register under this prefix.
	staffOnly := serverutils.RequireRole(entity.RoleInstructor, entity.RoleAdmin)
	h.Post("/", staffOnly, c.Create)
	h.Post("/:id/students", staffOnly, c.EnrollStudents)
}

func (c *fichaController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateFichaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Ficha created", res))
}

func (c *fichaController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Fichas", res))
}

func (c *fichaController) Get(ctx *fiber.Ctx) error {
	fichaId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ficha ID"))
	}

	res, err := c.service.Get(ctx.Context(), fichaId)
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Ficha", res))
}

func (c *fichaController) EnrollStudents(ctx *fiber.Ctx) error {
	fichaId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ficha ID"))
	}

	var req dto.EnrollStudentsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.FichaId = fichaId
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.service.EnrollStudents(ctx.Context(), &req); err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Students enrolled", nil))
}

func (c *fichaController) ListStudents(ctx *fiber.Ctx) error {
	fichaId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ficha ID"))
	}

	res, err := c.service.ListStudents(ctx.Context(), fichaId)
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Ficha students", res))
}
