package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus de la aplicación. Se registran en el registry por defecto
// y se exponen en GET /metrics.
var (
	SalesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lot_sales_created_total",
		Help: "Total de ventas creadas, etiquetadas por tipo (regular|combo)",
	}, []string{"type"})

	SalesRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lot_sales_rejected_total",
		Help: "Total de ventas rechazadas, etiquetadas por motivo",
	}, []string{"reason"})

	SalesDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lot_sales_deleted_total",
		Help: "Total de ventas eliminadas con restauración de stock",
	})

	ReportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lot_reports_generated_total",
		Help: "Total de reportes snapshot generados, por tipo (category|stock_average)",
	}, []string{"type"})

	ReportGenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lot_report_generation_failures_total",
		Help: "Fallos de generación de reportes (no afectan la venta)",
	})

	StockCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lot_stock_cache_requests_total",
		Help: "Lecturas de check-stock servidas, por resultado (hit|miss|bypass)",
	}, []string{"result"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lot_http_requests_total",
		Help: "Total de peticiones HTTP",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lot_http_request_duration_seconds",
		Help:    "Latencia de peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
