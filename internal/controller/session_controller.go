package controller

import (
	"errors"

	"github.com/benbeisheim/sensorchess-backend/internal/middleware"
	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/benbeisheim/sensorchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type SessionController struct {
	sessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

type inferRequest struct {
	Previous *model.Board `json:"previous"`
	Next     *model.Board `json:"next"`
	ToMove   *model.Team  `json:"toMove"`
}

type createRequest struct {
	Board  *model.Board `json:"board"`
	ToMove *model.Team  `json:"toMove"`
}

type snapshotRequest struct {
	Board *model.Board `json:"board"`
}

type resetRequest struct {
	Board  *model.Board `json:"board"`
	ToMove *model.Team  `json:"toMove"`
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// Infer answers a single board pair without any session state.
func (sc *SessionController) Infer(c *fiber.Ctx) error {
	var req inferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Previous == nil || req.Next == nil || req.ToMove == nil {
		return badRequest(c, "previous, next and toMove are required")
	}
	return c.JSON(sc.sessionService.Infer(*req.Previous, *req.Next, *req.ToMove))
}

func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err.Error())
		}
	}

	sessionID, err := sc.sessionService.CreateSession(req.Board, req.ToMove)
	if err != nil {
		return sessionError(c, err)
	}
	log.Infof("device %v created session %s", c.Locals(middleware.DeviceIDKey), sessionID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Session created",
		"sessionId": sessionID,
	})
}

func (sc *SessionController) GetSessionState(c *fiber.Ctx) error {
	state, err := sc.sessionService.GetState(c.Params("sessionId"))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(state)
}

func (sc *SessionController) SubmitSnapshot(c *fiber.Ctx) error {
	var req snapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Board == nil {
		return badRequest(c, "board is required")
	}

	reading, state, err := sc.sessionService.HandleSnapshot(c.Params("sessionId"), *req.Board)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": reading.Status,
		"move":   reading.Move,
		"toMove": reading.ToMove,
		"state":  state,
	})
}

func (sc *SessionController) ResetSession(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Board == nil || req.ToMove == nil {
		return badRequest(c, "board and toMove are required")
	}

	state, err := sc.sessionService.Reset(c.Params("sessionId"), *req.Board, *req.ToMove)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(state)
}

func (sc *SessionController) DeleteSession(c *fiber.Ctx) error {
	if err := sc.sessionService.DeleteSession(c.Params("sessionId")); err != nil {
		return sessionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (sc *SessionController) BoardSVG(c *fiber.Ctx) error {
	svg, err := sc.sessionService.RenderSVG(c.Params("sessionId"))
	if err != nil {
		return sessionError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(svg)
}
