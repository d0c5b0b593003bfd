package ws

import (
	"net/http"

	"log/slog"

	"github.com/myk225/mini-draw/internal/board"
	"github.com/myk225/mini-draw/pkg/metrics"
)

// Hub accepts websocket connections and runs one session per connection
// against the board service: read a frame, decode it, dispatch it.
// Everything the session may not see again after a dropped connection is
// recovered by the catch-up snapshot on its next join.
type Hub struct {
	log     *slog.Logger
	svc     *board.Service
	sendBuf int
}

// NewHub wires the hub to the board service.
func NewHub(logger *slog.Logger, svc *board.Service, sendBuffer int) *Hub {
	return &Hub{log: logger, svc: svc, sendBuf: sendBuffer}
}

// ServeWS handles one /ws connection for its whole lifetime.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	c := NewConn(conn, h.sendBuf)
	sess := h.svc.Connect(c)
	metrics.ConnectionsActive.Inc()
	h.log.Info("ws.open", "session", sess.ID, "remote", r.RemoteAddr)

	// Outbound writer
	go c.WriteLoop(ctx)

	defer func() {
		h.svc.Disconnect(sess)
		metrics.ConnectionsActive.Dec()
		_ = c.Close()
		h.log.Info("ws.close", "session", sess.ID)
	}()

	// Inbound reader: a malformed frame costs its sender an error reply,
	// never the connection.
	for {
		data, ok := c.Read(ctx)
		if !ok {
			return
		}
		ev, err := board.DecodeEvent(data)
		if err != nil {
			metrics.ProtocolErrors.Inc()
			c.Send(board.EncodeError(err.Error()))
			continue
		}
		h.svc.Dispatch(sess, ev)
	}
}
