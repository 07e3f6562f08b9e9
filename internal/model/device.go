package model

import (
	"github.com/gofiber/websocket/v2"
)

// Device is a sensor controller or display attached to a session.
type Device struct {
	ID   string
	Conn *websocket.Conn
}
