package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "qr_service"

type Metrics struct {
	registry *prometheus.Registry

	TokenRequests *prometheus.CounterVec
	QROperations  *prometheus.CounterVec
	AuthRejects   prometheus.Counter
}

// New registers the service collectors on a private registry so tests can
// build as many instances as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		TokenRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_requests_total",
			Help:      "Token endpoint calls by result.",
		}, []string{"result"}),
		QROperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "qr_operations_total",
			Help:      "QR code operations by operation and result.",
		}, []string{"operation", "result"}),
		AuthRejects: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_rejections_total",
			Help:      "Requests rejected by the bearer token guard.",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
