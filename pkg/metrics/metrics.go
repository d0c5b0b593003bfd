package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors for the whiteboard server, registered on the default
// Prometheus registry.
var (
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "minidraw",
		Name:      "connections_active",
		Help:      "Currently open websocket connections.",
	})

	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "minidraw",
		Name:      "rooms_active",
		Help:      "Rooms currently live in the registry.",
	})

	StrokesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minidraw",
		Name:      "strokes_total",
		Help:      "Strokes appended to any room since start.",
	})

	FramesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minidraw",
		Name:      "frames_sent_total",
		Help:      "Server frames queued for delivery to clients.",
	})

	FramesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minidraw",
		Name:      "frames_dropped_total",
		Help:      "Server frames dropped because a client's send buffer was full.",
	})

	ProtocolErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minidraw",
		Name:      "protocol_errors_total",
		Help:      "Inbound frames rejected as malformed or unknown.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
