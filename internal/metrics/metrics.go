package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SalesCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sales_committed_total",
			Help: "Sales committed since start",
		},
	)

	SalesRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sales_revenue_total",
			Help: "Revenue from committed sales since start, in naira",
		},
	)

	StockAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_stock_adjustments_total",
			Help: "Stock adjustments by source (sale, addition, borrowing, repayment)",
		},
		[]string{"source"},
	)

	DocumentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_document_failures_total",
			Help: "Invoice/statement generation failures (non-fatal)",
		},
	)

	SystemCPUPercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pos_system_cpu_percent",
			Help: "Host CPU utilisation percent",
		},
	)

	SystemMemoryPercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pos_system_memory_percent",
			Help: "Host memory utilisation percent",
		},
	)
)
