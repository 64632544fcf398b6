package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas HTTP del servicio, registradas en el registry global de Prometheus
// y expuestas por el endpoint /metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joyeria_http_requests_total",
		Help: "Total de peticiones HTTP por método, ruta y código de estado.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "joyeria_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	InvoicesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "joyeria_invoices_created_total",
		Help: "Total de facturas emitidas.",
	})

	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joyeria_stock_movements_total",
		Help: "Total de movimientos de inventario por tipo.",
	}, []string{"type"})
)
