package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Schema build Prometheus metrics.
var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schemagen",
			Name:      "runs_total",
			Help:      "Schema build runs by deployment target and outcome",
		},
		[]string{"target", "outcome"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "schemagen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"stage"},
	)

	FieldsProjected = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "schemagen",
			Name:      "fields_projected",
			Help:      "Number of index fields in the last rendered schema",
		},
		[]string{"connection", "tier"},
	)

	AdminRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schemagen",
			Name:      "solr_admin_requests_total",
			Help:      "Solr admin API requests by operation and status",
		},
		[]string{"op", "status"},
	)

	AdminRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "schemagen",
			Name:      "solr_admin_request_duration_seconds",
			Help:      "Solr admin API request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op"},
	)
)

// Collectors returns every schemagen collector.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		RunsTotal, StageDuration, FieldsProjected,
		AdminRequestsTotal, AdminRequestDuration,
	}
}

// Register registers the schemagen metrics on reg. Already-registered collectors are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("register metrics: %w", err)
		}
	}
	return nil
}

// WriteTextfile writes everything gathered by g to path in the text exposition format,
// for the node_exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
