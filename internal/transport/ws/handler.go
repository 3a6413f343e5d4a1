package ws

import (
	"log"
	"net/http"

	"nhooyr.io/websocket"
)

// ServeWS returns an HTTP handler that upgrades to WebSocket. The gate
// runs before any event handling; a connection without a valid
// credential is admitted unauthenticated rather than rejected.
func ServeWS(hub *Hub, router *Router, gate *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := gate.Authenticate(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			log.Printf("ws: accept error: %v", err)
			return
		}

		client := NewClient(hub, router, conn, username)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}
