package web3socket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	tools "github.com/kirillDanshin/nulltime"
)

var websocketClients = make(map[*websocket.Conn]bool) // connected dashboards
var clientsMutex sync.Mutex

var Broadcast = make(chan WebsocketMessage) // broadcast channel

// Configure the upgrader
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleDashboardConnections upgrades a dashboard request and keeps the
// connection registered until the peer goes away.
func HandleDashboardConnections(w http.ResponseWriter, r *http.Request) {
	ws, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	clientsMutex.Lock()
	websocketClients[ws] = true
	clientsMutex.Unlock()

	for {
		// Dashboards never send payloads, the read just detects the close.
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	clientsMutex.Lock()
	delete(websocketClients, ws)
	clientsMutex.Unlock()
	ws.Close()
}

func HandleBroadcastMessages() {
	for {
		// Grab the next message from the broadcast channel
		msg := <-Broadcast
		// Send it out to every dashboard that is currently connected

		clientsMutex.Lock()
		for client := range websocketClients {
			err := client.WriteJSON(&msg)
			if err != nil {
				log.Printf("error: %v", err)
				client.Close()
				delete(websocketClients, client)
			}
		}
		clientsMutex.Unlock()
	}
}

func SendBroadcastWebsocketDataInfoMessage(message string, action string, messageType string, data interface{}) {
	var wsMsg WebsocketMessage = WebsocketMessage{
		MessageType: messageType,
		Timestamp:   tools.NullTime{Time: time.Now(), Valid: true},
		Message:     message,
		Action:      action,
		Data:        data,
	}
	Broadcast <- wsMsg
}
