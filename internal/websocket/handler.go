package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs handles an upgraded operator connection.
func ServeWs(hub *Hub, c *websocket.Conn, operatorID string, onMessage MessageHandler) {
	client := &Client{
		Hub:        hub,
		Conn:       c,
		OperatorID: operatorID,
		Send:       make(chan []byte, 256),
		OnMessage:  onMessage,
	}
	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
