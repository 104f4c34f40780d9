package server

import (
	"strings"

	"socialnet/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// EventsWebsocketHandler streams domain events. The optional follow query
// parameter restricts the stream to events about one user id.
// @Summary Domain event stream
// @Tags events
// @Param follow query string false "User ID to follow"
// @Success 101 {string} string "Switching Protocols"
// @Failure 426 {object} models.ErrorResponse
// @Router /ws/events [get]
func (s *Server) EventsWebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		follow := strings.TrimSpace(conn.Query("follow"))

		client, err := s.hub.Register(conn, follow)
		if err != nil {
			middleware.Logger.Warn("event stream registration failed", "follow", follow, "error", err)
			_ = conn.WriteJSON(fiber.Map{"error": err.Error()})
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
