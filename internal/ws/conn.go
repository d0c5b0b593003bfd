package ws

import (
	"context"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/myk225/mini-draw/pkg/metrics"
)

// Conn wraps one websocket connection with a buffered outbound queue.
// Send never blocks; WriteLoop drains the queue in FIFO order so a
// recipient sees frames in the order they were queued.
type Conn struct {
	ws  *websocket.Conn
	out chan []byte
}

// Accept upgrades HTTP to websocket (allow all origins)
func Accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
}

// NewConn wraps a WS connection with a send buffer of the given size.
func NewConn(ws *websocket.Conn, sendBuffer int) *Conn {
	return &Conn{ws: ws, out: make(chan []byte, sendBuffer)}
}

// Send queues an encoded frame for delivery, dropping it if the buffer
// is full. Implements board.Sender.
func (c *Conn) Send(b []byte) {
	select {
	case c.out <- b:
		metrics.FramesSent.Inc()
	default:
		metrics.FramesDropped.Inc()
	}
}

// Read blocks until it receives a text/binary message
// Returns false if connection is closed
func (c *Conn) Read(ctx context.Context) ([]byte, bool) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return nil, false
		}
		if typ == websocket.MessageText || typ == websocket.MessageBinary {
			return []byte(data), true
		}
	}
}

// WriteLoop sends outbound frames + periodic pings
// Exits when ctx is cancelled
func (c *Conn) WriteLoop(ctx context.Context) {
	t := time.NewTicker(20 * time.Second)
	defer t.Stop()

	for {
		select {
		case b := <-c.out:
			_ = c.ws.Write(ctx, websocket.MessageText, b)
		case <-t.C:
			_ = c.ws.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close closes the WS connection normally
func (c *Conn) Close() error { return c.ws.Close(websocket.StatusNormalClosure, "bye") }
