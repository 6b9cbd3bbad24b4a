package handler

import (
	"context"
	"os"

	"email-responder-be/internal/pkg/logger"
	"email-responder-be/internal/service"
	internalWS "email-responder-be/internal/websocket"
	"email-responder-be/pkg/events"
	pktNats "email-responder-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ApprovalHandler owns the operator chat surface: the websocket endpoint
// where operators review drafts, plus the bus bridge that announces new
// drafts and escalations to whoever is connected.
type ApprovalHandler struct {
	approvalService service.IApprovalService
	subscriber      *pktNats.Subscriber
	hub             *internalWS.Hub
	logger          logger.ILogger
}

func NewApprovalHandler(approvalService service.IApprovalService, sub *pktNats.Subscriber, hub *internalWS.Hub, log logger.ILogger) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
		subscriber:      sub,
		hub:             hub,
		logger:          log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ApprovalHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Parse JWT with the same secret as the REST middleware
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("ApprovalHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	// 3. Extract Operator ID from Claim
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	operatorID, ok := claims["user_id"].(string)
	if !ok || operatorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("ApprovalHandler", "Starting WebSocket session", map[string]interface{}{"operator_id": operatorID})
			internalWS.ServeWs(h.hub, c, operatorID, h.approvalService.HandleOperatorMessage)
			h.logger.Info("ApprovalHandler", "WebSocket session ended", map[string]interface{}{"operator_id": operatorID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// StartEventBridge consumes triage events from the bus and fans them out
// to connected operators. No-op when NATS is unavailable.
func (h *ApprovalHandler) StartEventBridge() {
	if h.subscriber == nil || h.hub == nil {
		return
	}

	bridge := func(messageType string) pktNats.EventHandler {
		return func(ctx context.Context, event events.Event) error {
			h.hub.Broadcast(messageType, event.Payload())
			return nil
		}
	}

	subscriptions := map[string]string{
		events.TypeDraftCreated:     "draft_created",
		events.TypeMessageEscalated: "message_escalated",
	}
	for eventType, messageType := range subscriptions {
		subject := "events." + eventType
		durable := "approval-bridge-" + messageType
		if err := h.subscriber.Subscribe(subject, durable, bridge(messageType)); err != nil {
			h.logger.Warn("ApprovalHandler", "Failed to subscribe to event subject", map[string]interface{}{
				"subject": subject,
				"error":   err.Error(),
			})
		}
	}
}
