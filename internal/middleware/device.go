package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const DeviceIDKey = "deviceID"

// EnsureDeviceID requires the caller to name itself, by X-Device-ID header
// or deviceId query parameter, and stores the name in Locals.
func EnsureDeviceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(DeviceIDKey) != nil {
			return c.Next()
		}

		deviceID := c.Get("X-Device-ID")
		if deviceID == "" {
			deviceID = c.Query("deviceId")
		}
		if deviceID == "" {
			log.Debugf("rejecting %s %s: no device id", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Device ID is required. Send an X-Device-ID header or deviceId query parameter.",
			})
		}

		c.Locals(DeviceIDKey, deviceID)
		return c.Next()
	}
}
