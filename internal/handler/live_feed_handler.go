package handler

import (
	"os"

	"facelog-be/internal/pkg/logger"
	internalWS "facelog-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LiveFeedHandler upgrades instructor dashboards onto the websocket feed of a
// session's recognition outcomes.
type LiveFeedHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveFeedHandler(hub *internalWS.Hub, log logger.ILogger) *LiveFeedHandler {
	return &LiveFeedHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *LiveFeedHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/sessions/:id", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *LiveFeedHandler) ServeWs(c *fiber.Ctx) error {
	sessionId, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	// Browsers cannot set headers on a websocket handshake, so the token may
	// arrive as a query param instead.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("LiveFeedHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("LiveFeedHandler", "Viewer joined session feed", map[string]interface{}{"session_id": sessionId.String()})
			internalWS.ServeWs(h.hub, conn, sessionId.String())
			h.logger.Info("LiveFeedHandler", "Viewer left session feed", map[string]interface{}{"session_id": sessionId.String()})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
