package service

import (
	"bytes"
	"fmt"

	"github.com/benbeisheim/sensorchess-backend/internal/inference"
	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/benbeisheim/sensorchess-backend/internal/render"
	"github.com/benbeisheim/sensorchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type SessionService struct {
	sessionManager *SessionManager
	defaultToMove  model.Team
}

func NewSessionService(sessionManager *SessionManager, defaultToMove model.Team) *SessionService {
	return &SessionService{
		sessionManager: sessionManager,
		defaultToMove:  defaultToMove,
	}
}

// Infer runs the inferencer on two boards without touching any session.
func (ss *SessionService) Infer(previous, next model.Board, toMove model.Team) Reading {
	mv, err := inference.Infer(previous, next, toMove)
	reading := Reading{Status: inference.StatusOf(err), ToMove: toMove}
	if err == nil {
		reading.Move = &mv
		reading.ToMove = toMove.Other()
	}
	return reading
}

// CreateSession starts a session from board, or from the standard setup
// when board is nil. A nil toMove uses the configured default.
func (ss *SessionService) CreateSession(board *model.Board, toMove *model.Team) (string, error) {
	b := model.NewStandardBoard()
	if board != nil {
		b = *board
	}
	team := ss.defaultToMove
	if toMove != nil {
		team = *toMove
	}

	id, err := ss.sessionManager.CreateSession("", b, team)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

func (ss *SessionService) GetState(id string) (SessionState, error) {
	return ss.sessionManager.GetState(id)
}

func (ss *SessionService) DeleteSession(id string) error {
	return ss.sessionManager.DeleteSession(id)
}

func (ss *SessionService) HandleSnapshot(id string, snapshot model.Board) (Reading, SessionState, error) {
	return ss.sessionManager.Submit(id, snapshot)
}

func (ss *SessionService) Reset(id string, board model.Board, toMove model.Team) (SessionState, error) {
	return ss.sessionManager.Reset(id, board, toMove)
}

// RenderSVG draws the settled board of a session with its last move marked.
func (ss *SessionService) RenderSVG(id string) ([]byte, error) {
	state, err := ss.sessionManager.GetState(id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	render.WriteSVG(&buf, state.Board, state.LastMove)
	return buf.Bytes(), nil
}

func (ss *SessionService) RegisterConnection(id string, device model.Device) error {
	return ss.sessionManager.RegisterConnection(id, device)
}

func (ss *SessionService) UnregisterConnection(id string, deviceID string, conn *websocket.Conn) {
	ss.sessionManager.UnregisterConnection(id, deviceID, conn)
}

func (ss *SessionService) Send(id string, deviceID string, msg ws.Message) error {
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return err
	}
	return session.Send(deviceID, msg)
}
