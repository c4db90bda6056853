package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a viewer connection to the live feed of one session.
func ServeWs(hub *Hub, c *websocket.Conn, sessionId string) {
	client := &Client{Hub: hub, Conn: c, SessionID: sessionId, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
