package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlanRequests counts /api/plan-trip outcomes: ok, config, method, upstream, malformed, bad_request.
	PlanRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packntrack_plan_requests_total",
			Help: "Total number of trip plan requests by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "packntrack_upstream_duration_seconds",
			Help:    "Duration of LLM upstream calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider", "result"},
	)

	PlanRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packntrack_plan_repairs_total",
			Help: "Plans altered by post-processing, by step",
		},
		[]string{"step"},
	)
)
