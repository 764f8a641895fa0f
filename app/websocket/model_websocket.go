package web3socket

import (
	tools "github.com/kirillDanshin/nulltime"
)

const (
	Websocket_Scores     = "SCORES"
	Websocket_Clients    = "CLIENTS"
	Websocket_Therapists = "THERAPISTS"
)

const (
	Websocket_Update = "UPDATE"
	Websocket_Add    = "ADD"
)

// Define our message object
type WebsocketMessage struct {
	MessageType string         `json:"message_type"`
	Timestamp   tools.NullTime `json:"timestamp"`
	Message     string         `json:"message,omitempty"`
	Action      string         `json:"action,omitempty"`
	Data        interface{}    `json:"data,omitempty"`
}
