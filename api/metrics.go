package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// METRICS - Validation outcomes and HTTP surface
// =============================================================================

var (
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vacation_validations_total",
		Help: "Validation pipeline outcomes, labeled by verdict and rejection reason.",
	}, []string{"verdict", "reason"})

	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vacation_http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	})
)

func observeVerdict(admitted bool, reason string) {
	verdict := "rejected"
	if admitted {
		verdict = "admitted"
		reason = ""
	}
	validationsTotal.WithLabelValues(verdict, reason).Inc()
}
