package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/sensorchess-backend/internal/inference"
	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/benbeisheim/sensorchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type SessionStatus string

const (
	// StatusSettled: the physical board matches the settled board.
	StatusSettled SessionStatus = "settled"
	// StatusMoveInProgress: a piece of the side to move is in the air.
	StatusMoveInProgress SessionStatus = "moveInProgress"
	// StatusRejected: the last snapshot could not be explained and someone
	// has to check the board.
	StatusRejected SessionStatus = "rejected"
)

// SessionState is what observers see. Version grows with every change so
// observers can drop anything older than what they already have.
type SessionState struct {
	Board       model.Board   `json:"board"`
	ToMove      model.Team    `json:"toMove"`
	Status      SessionStatus `json:"status"`
	MoveHistory []model.Move  `json:"moveHistory"`
	LastMove    *model.Move   `json:"lastMove"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Version     uint64        `json:"version"`
}

// Reading is the outcome of one submitted snapshot.
type Reading struct {
	Status inference.Status `json:"status"`
	Move   *model.Move      `json:"move,omitempty"`
	ToMove model.Team       `json:"toMove"`
}

// ErrDeviceConnected is returned when a device opens a second connection
// to the same session.
var ErrDeviceConnected = errors.New("device already connected")

// The devices watching a specific session
type SessionConnections struct {
	devices  map[string]model.Device // deviceID -> device
	lastSent uint64                  // version of the last broadcast state
	mu       sync.RWMutex
}

// Session follows one physical board: the last settled snapshot, whose
// turn it is and the moves inferred so far.
type Session struct {
	ID          string
	mu          sync.Mutex
	state       SessionState
	connections *SessionConnections
}

func NewSession(id string, board model.Board, toMove model.Team) *Session {
	return &Session{
		ID: id,
		state: SessionState{
			Board:       board,
			ToMove:      toMove,
			Status:      StatusSettled,
			MoveHistory: make([]model.Move, 0),
			UpdatedAt:   time.Now(),
		},
		connections: NewSessionConnections(),
	}
}

func NewSessionConnections() *SessionConnections {
	return &SessionConnections{
		devices: make(map[string]model.Device),
	}
}

func (s *Session) GetState() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked()
}

// stateLocked copies the state so callers never share the history slice.
func (s *Session) stateLocked() SessionState {
	state := s.state
	state.MoveHistory = append(make([]model.Move, 0, len(s.state.MoveHistory)), s.state.MoveHistory...)
	if s.state.LastMove != nil {
		last := *s.state.LastMove
		state.LastMove = &last
	}
	return state
}

// Submit infers what happened between the settled board and snapshot.
// Only a recognised move replaces the settled board and passes the turn.
func (s *Session) Submit(snapshot model.Board) Reading {
	s.mu.Lock()
	mv, err := inference.Infer(s.state.Board, snapshot, s.state.ToMove)
	reading := Reading{Status: inference.StatusOf(err)}
	switch {
	case err == nil:
		s.state.Board = snapshot
		s.state.MoveHistory = append(s.state.MoveHistory, mv)
		s.state.LastMove = &mv
		s.state.ToMove = s.state.ToMove.Other()
		s.state.Status = StatusSettled
		reading.Move = &mv
	case errors.Is(err, inference.ErrNoMove):
		s.state.Status = StatusSettled
	case errors.Is(err, inference.ErrMakingMove):
		s.state.Status = StatusMoveInProgress
	default:
		s.state.Status = StatusRejected
	}
	s.state.UpdatedAt = time.Now()
	s.state.Version++
	reading.ToMove = s.state.ToMove
	state := s.stateLocked()
	s.mu.Unlock()

	if err != nil {
		log.Debugf("session %s: %s (%v)", s.ID, reading.Status, err)
	} else {
		log.Infof("session %s: move %s, %s to move", s.ID, mv, reading.ToMove)
	}
	go s.broadcastState(state)
	return reading
}

// Reset replaces the settled board, e.g. after a rejected snapshot was
// checked by hand.
func (s *Session) Reset(board model.Board, toMove model.Team) SessionState {
	s.mu.Lock()
	s.state.Board = board
	s.state.ToMove = toMove
	s.state.Status = StatusSettled
	s.state.LastMove = nil
	s.state.UpdatedAt = time.Now()
	s.state.Version++
	state := s.stateLocked()
	s.mu.Unlock()

	log.Infof("session %s: reset, %s to move", s.ID, toMove)
	go s.broadcastState(state)
	return state
}

func (s *Session) RegisterConnection(device model.Device) error {
	if device.Conn == nil {
		return errors.New("device has no connection")
	}
	connID := fmt.Sprintf("%p", device.Conn)

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	// Keep the existing connection; the caller rejects the new one
	if _, exists := s.connections.devices[device.ID]; exists {
		return ErrDeviceConnected
	}
	s.connections.devices[device.ID] = device
	log.Debugf("session %s: registered connection %s for device %s", s.ID, connID, device.ID)
	return nil
}

// UnregisterConnection drops the device only if conn is still its current
// connection.
func (s *Session) UnregisterConnection(deviceID string, conn *websocket.Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if d, exists := s.connections.devices[deviceID]; exists && d.Conn == conn {
		delete(s.connections.devices, deviceID)
		log.Debugf("session %s: unregistered device %s", s.ID, deviceID)
	}
}

// Send writes one message to a single device. Writes go through the
// connections lock since a websocket connection allows one writer at a time.
func (s *Session) Send(deviceID string, msg ws.Message) error {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	d, ok := s.connections.devices[deviceID]
	if !ok {
		return fmt.Errorf("device %s not connected", deviceID)
	}
	return d.Conn.WriteJSON(msg)
}

// Close disconnects every device.
func (s *Session) Close() {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	for id, d := range s.connections.devices {
		d.Conn.Close()
		delete(s.connections.devices, id)
	}
}

// broadcastState sends state to every device unless a newer state has
// already gone out. It reports whether state was sent.
func (s *Session) broadcastState(state SessionState) bool {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("session %s: marshal state: %v", s.ID, err)
		return false
	}
	msg := ws.Message{Type: ws.MessageTypeState, Payload: payload}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	if state.Version <= s.connections.lastSent {
		log.Debugf("session %s: skipping stale state %d", s.ID, state.Version)
		return false
	}
	s.connections.lastSent = state.Version
	for id, d := range s.connections.devices {
		if err := d.Conn.WriteJSON(msg); err != nil {
			log.Warnf("session %s: dropping device %s: %v", s.ID, id, err)
			delete(s.connections.devices, id)
		}
	}
	return true
}
