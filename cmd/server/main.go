package main

import (
	"os"

	"github.com/benbeisheim/sensorchess-backend/internal/config"
	"github.com/benbeisheim/sensorchess-backend/internal/controller"
	"github.com/benbeisheim/sensorchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	app := fiber.New(fiber.Config{
		AppName: "sensorchess",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Device-ID",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	// Initialize services
	sessionManager := service.NewSessionManager()
	sessionService := service.NewSessionService(sessionManager, cfg.DefaultToMove)

	controller.SetupRoutes(app, sessionService, websocket.Config{
		ReadBufferSize:  cfg.WSBufferSize,
		WriteBufferSize: cfg.WSBufferSize,
		Origins:         cfg.Origins(),
	})

	log.Infof("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
