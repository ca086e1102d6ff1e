package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("contentmodel.session")

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contentmodel_operations_total",
		Help: "Edit operations applied to sessions, by operation and outcome.",
	}, []string{"operation", "changed"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contentmodel_operation_duration_seconds",
		Help:    "Time spent applying an edit operation, including normalization.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"operation"})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "contentmodel_sessions_active",
		Help: "Edit sessions currently held in memory.",
	})
)
