package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// CreateSession registers a session under id. An empty id gets a fresh uuid.
func (sm *SessionManager) CreateSession(id string, board model.Board, toMove model.Team) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[id]; exists {
		return "", ErrSessionExists
	}
	sm.sessions[id] = NewSession(id, board, toMove)
	log.Infof("session %s created, %s to move", id, toMove)
	return id, nil
}

func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (sm *SessionManager) DeleteSession(id string) error {
	sm.mu.Lock()
	session, exists := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}
	session.Close()
	log.Infof("session %s deleted", id)
	return nil
}

func (sm *SessionManager) GetState(id string) (SessionState, error) {
	session, err := sm.GetSession(id)
	if err != nil {
		return SessionState{}, err
	}
	return session.GetState(), nil
}

func (sm *SessionManager) Submit(id string, snapshot model.Board) (Reading, SessionState, error) {
	session, err := sm.GetSession(id)
	if err != nil {
		return Reading{}, SessionState{}, err
	}
	reading := session.Submit(snapshot)
	return reading, session.GetState(), nil
}

func (sm *SessionManager) Reset(id string, board model.Board, toMove model.Team) (SessionState, error) {
	session, err := sm.GetSession(id)
	if err != nil {
		return SessionState{}, err
	}
	return session.Reset(board, toMove), nil
}

func (sm *SessionManager) RegisterConnection(id string, device model.Device) error {
	session, err := sm.GetSession(id)
	if err != nil {
		return err
	}
	return session.RegisterConnection(device)
}

func (sm *SessionManager) UnregisterConnection(id string, deviceID string, conn *websocket.Conn) {
	session, err := sm.GetSession(id)
	if err != nil {
		return
	}
	session.UnregisterConnection(deviceID, conn)
}
