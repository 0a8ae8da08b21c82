package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"partsdesk/internal/core/domain/model/kernel"
)

const heartbeatInterval = 30 * time.Second

// StreamOrderEvents handles GET /api/v1/orders/:orderNo/events. It streams
// the order's change notifications as server-sent events until the client
// disconnects. Comment lines are sent as heartbeats to keep intermediaries
// from timing out the connection.
func (s *Server) StreamOrderEvents(ctx echo.Context) error {
	orderNo, err := kernel.NewOrderNumber(ctx.Param("orderNo"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	writer := ctx.Response()
	writer.Header().Set(echo.HeaderContentType, "text/event-stream")
	writer.Header().Set("Cache-Control", "no-cache")
	writer.Header().Set("Connection", "keep-alive")
	writer.Header().Set("X-Accel-Buffering", "no")
	writer.WriteHeader(http.StatusOK)

	sub := s.notifier.Subscribe(orderNo.Topic())
	defer sub.Close()

	fmt.Fprintf(writer, "event: connected\ndata: {\"orderNo\":%q}\n\n", orderNo.String())
	writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	clientGone := ctx.Request().Context().Done()

	for {
		select {
		case <-clientGone:
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			fmt.Fprintf(writer, "event: order\ndata: %s\n\n", event)
			writer.Flush()
		case <-heartbeat.C:
			fmt.Fprint(writer, ": keepalive\n\n")
			writer.Flush()
		}
	}
}
