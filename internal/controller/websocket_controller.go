package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/benbeisheim/sensorchess-backend/internal/service"
	"github.com/benbeisheim/sensorchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	sessionService *service.SessionService
}

func NewWebSocketController(sessionService *service.SessionService) *WebSocketController {
	return &WebSocketController{
		sessionService: sessionService,
	}
}

// HandleConnection serves one sensor controller or display for the
// lifetime of its websocket.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	sessionID, _ := c.Locals("wsSessionID").(string)
	deviceID, _ := c.Locals("wsDeviceID").(string)

	if err := wsc.sessionService.RegisterConnection(sessionID, model.Device{ID: deviceID, Conn: c}); err != nil {
		log.Warnf("device %s: register on session %s: %v", deviceID, sessionID, err)
		c.WriteJSON(errorMessage(err))
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, err.Error()),
		)
		c.Close()
		return
	}
	log.Infof("device %s connected to session %s", deviceID, sessionID)

	if state, err := wsc.sessionService.GetState(sessionID); err == nil {
		if msg, err := ws.NewMessage(ws.MessageTypeState, state); err == nil {
			wsc.reply(sessionID, deviceID, msg)
		}
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("device %s: read: %v", deviceID, err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.reply(sessionID, deviceID, errorMessage(fmt.Errorf("parse message: %w", err)))
			continue
		}
		reply, err := wsc.handleMessage(sessionID, msg)
		if err != nil {
			log.Debugf("device %s: %v", deviceID, err)
			reply = errorMessage(err)
		}
		wsc.reply(sessionID, deviceID, reply)
	}

	wsc.sessionService.UnregisterConnection(sessionID, deviceID, c)
	log.Infof("device %s left session %s", deviceID, sessionID)
}

type snapshotPayload struct {
	Board *model.Board `json:"board"`
}

type resetPayload struct {
	Board  *model.Board `json:"board"`
	ToMove *model.Team  `json:"toMove"`
}

func (wsc *WebSocketController) handleMessage(sessionID string, msg ws.Message) (ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeSnapshot:
		var p snapshotPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return ws.Message{}, err
		}
		if p.Board == nil {
			return ws.Message{}, fmt.Errorf("snapshot without board")
		}
		reading, _, err := wsc.sessionService.HandleSnapshot(sessionID, *p.Board)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeReading, reading)

	case ws.MessageTypeReset:
		var p resetPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return ws.Message{}, err
		}
		if p.Board == nil || p.ToMove == nil {
			return ws.Message{}, fmt.Errorf("reset needs board and toMove")
		}
		state, err := wsc.sessionService.Reset(sessionID, *p.Board, *p.ToMove)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeState, state)

	default:
		return ws.Message{}, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) reply(sessionID, deviceID string, msg ws.Message) {
	if err := wsc.sessionService.Send(sessionID, deviceID, msg); err != nil {
		log.Warnf("device %s: send %s: %v", deviceID, msg.Type, err)
	}
}

func errorMessage(err error) ws.Message {
	payload, _ := json.Marshal(errorBody{Error: err.Error()})
	return ws.Message{Type: ws.MessageTypeError, Payload: payload}
}

type errorBody struct {
	Error string `json:"error"`
}
