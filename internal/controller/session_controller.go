package controller

import (
	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/serverutils"
	"facelog-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Schedule(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	ListByFicha(ctx *fiber.Ctx) error
	Activate(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	ListAttendance(ctx *fiber.Ctx) error
	OverrideAttendance(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessions   service.ISessionService
	attendance service.IAttendanceService
}

func NewSessionController(sessions service.ISessionService, attendance service.IAttendanceService) ISessionController {
	return &sessionController{
		sessions:   sessions,
		attendance: attendance,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/:id", c.Get)
	h.Get("/:id/attendance", c.ListAttendance)

	// Per-route guards: a group-level Use would also catch routes other
	// controllers register under this prefix.
	staffOnly := serverutils.RequireRole(entity.RoleInstructor, entity.RoleAdmin)
	h.Post("/", staffOnly, c.Schedule)
	h.Post("/:id/activate", staffOnly, c.Activate)
	h.Post("/:id/deactivate", staffOnly, c.Deactivate)
	h.Put("/:id/attendance", staffOnly, c.OverrideAttendance)

	fichas := r.Group("/fichas", serverutils.JwtMiddleware)
	fichas.Get("/:id/sessions", c.ListByFicha)
}

func (c *sessionController) Schedule(ctx *fiber.Ctx) error {
	var req dto.ScheduleSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.sessions.Schedule(ctx.Context(), &req)
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session scheduled", res))
}

func (c *sessionController) Get(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.sessions.Get(ctx.Context(), sessionId)
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session", res))
}

func (c *sessionController) ListByFicha(ctx *fiber.Ctx) error {
	fichaId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ficha ID"))
	}

	res, err := c.sessions.ListByFicha(ctx.Context(), fichaId)
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions", res))
}

func (c *sessionController) Activate(ctx *fiber.Ctx) error {
	return c.setActive(ctx, true)
}

func (c *sessionController) Deactivate(ctx *fiber.Ctx) error {
	return c.setActive(ctx, false)
}

func (c *sessionController) setActive(ctx *fiber.Ctx, active bool) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	if err := c.sessions.SetActive(ctx.Context(), sessionId, active); err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session updated", nil))
}

func (c *sessionController) ListAttendance(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.attendance.ListBySession(ctx.Context(), sessionId)
	if err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session attendance", res))
}

func (c *sessionController) OverrideAttendance(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	var req dto.OverrideAttendanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.SessionId = sessionId
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.attendance.Override(ctx.Context(), &req); err != nil {
		code := errorStatus(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Attendance updated", nil))
}
