// handlers/live.go - websocket feed of quiz completions
package handlers

import (
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// LiveEvent is one message on the live feed.
type LiveEvent struct {
	Type         string   `json:"type"`
	UserID       uint     `json:"user_id"`
	Level        int      `json:"level"`
	Score        int      `json:"score"`
	Perfect      bool     `json:"perfect"`
	Achievements []string `json:"achievements,omitempty"`
}

var (
	liveClients   = make(map[*websocket.Conn]bool)
	liveClientsMu sync.Mutex
)

// LiveUpgradeMiddleware rejects non-websocket requests to the feed route.
func LiveUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// LiveFeedHandler keeps the connection registered until the client hangs up.
// The feed is broadcast-only; inbound frames are read and dropped to detect
// disconnects.
var LiveFeedHandler = websocket.New(func(conn *websocket.Conn) {
	liveClientsMu.Lock()
	liveClients[conn] = true
	liveClientsMu.Unlock()

	defer func() {
		liveClientsMu.Lock()
		delete(liveClients, conn)
		liveClientsMu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
})

// BroadcastLive sends an event to every connected feed client. Dead
// connections are dropped on write failure.
func BroadcastLive(event LiveEvent) {
	liveClientsMu.Lock()
	defer liveClientsMu.Unlock()

	for conn := range liveClients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Dropping live feed client: %v", err)
			conn.Close()
			delete(liveClients, conn)
		}
	}
}
