package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dashboardComputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchboard_dashboard_computes_total",
		Help: "Total number of full dashboard recomputations (cache misses)",
	})

	insightFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchboard_insight_fallbacks_total",
		Help: "Total number of insight generations that fell back to defaults",
	})
)
