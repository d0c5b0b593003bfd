package httpx

import (
	"log/slog"
	"net/http"

	"github.com/myk225/mini-draw/internal/app"
	"github.com/myk225/mini-draw/internal/ws"
	"github.com/myk225/mini-draw/pkg/metrics"
)

// NewRouter wires up the HTTP surface: health probes, metrics, and the
// websocket endpoint, all behind the shared middleware stack.
func NewRouter(cfg app.Config, logger *slog.Logger, hub *ws.Hub) http.Handler {
	mw := NewMiddleware(cfg)

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
