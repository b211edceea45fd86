package ws

import (
	"log"
	"net/http"
)

// Handler upgrades the request and keeps the connection registered for its
// session until the client goes away. Clients only listen; anything they send
// is discarded.
func Handler(hub *Hub, sessionOf func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionOf(r)

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[WS] upgrade failed session=%s err=%v", session, err)
			return
		}

		hub.Register(session, conn)
		defer hub.Unregister(session, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Printf("[WS] disconnect session=%s", session)
				return
			}
		}
	}
}
