package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the per-trip websocket. Live coordinates are as
// sensitive as the REST location endpoints, so the upgrade is gated by the
// same authorization the caller wires in.
func RegisterRoutes(r fiber.Router, hub *Hub, authorize func(c *fiber.Ctx, tripID string) error) {
	wsHandler := websocket.New(func(c *websocket.Conn) {
		tripID := c.Params("tripID")
		client := hub.Register(tripID)
		defer hub.Unregister(client)

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		<-done
	})

	r.Get("/ws/:tripID", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if authorize != nil {
			if err := authorize(c, c.Params("tripID")); err != nil {
				return err
			}
		}
		return wsHandler(c)
	})
}
