package websocket

import (
	"github.com/labstack/echo/v4"
)

// Handler upgrades an authenticated request onto the live-chat channel.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	visitorID, _ := c.Get("visitor_id").(string)
	if visitorID == "" {
		visitorID = "anonymous"
	}

	// One conversation per visitor fingerprint, shared across tabs.
	client := NewClient(conn, visitorID, visitorID)
	client.onMessage = s.handleInbound
	s.hub.Register(client)

	client.Run()

	defer s.hub.Unregister(client)

	// Wait for the client context to be done (connection closed)
	<-client.Context().Done()

	return nil
}
