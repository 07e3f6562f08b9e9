package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that the session and device are named before allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		sessionID := c.Params("sessionId")
		if sessionID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "session ID is required",
			})
		}

		deviceID := c.Locals(DeviceIDKey)
		if deviceID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "device ID is required",
			})
		}

		// Locals survive the upgrade; the connection context is a different one
		c.Locals("wsSessionID", sessionID)
		c.Locals("wsDeviceID", deviceID)
		return c.Next()
	}
}
