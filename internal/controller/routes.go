package controller

import (
	"github.com/benbeisheim/sensorchess-backend/internal/middleware"
	"github.com/benbeisheim/sensorchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the REST API under /api and the device stream under /ws.
func SetupRoutes(app *fiber.App, sessionService *service.SessionService, wsConfig websocket.Config) {
	sessionController := NewSessionController(sessionService)
	wsController := NewWebSocketController(sessionService)

	app.Use("/ws/*", middleware.EnsureDeviceID())
	app.Get("/ws/session/:sessionId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, wsConfig))

	api := app.Group("/api")
	api.Post("/infer", sessionController.Infer)

	sessionRoutes := api.Group("/session", middleware.EnsureDeviceID())
	sessionRoutes.Post("/", sessionController.CreateSession)
	sessionRoutes.Get("/:sessionId", sessionController.GetSessionState)
	sessionRoutes.Delete("/:sessionId", sessionController.DeleteSession)
	sessionRoutes.Post("/:sessionId/snapshot", sessionController.SubmitSnapshot)
	sessionRoutes.Post("/:sessionId/reset", sessionController.ResetSession)
	sessionRoutes.Get("/:sessionId/board.svg", sessionController.BoardSVG)
}
