package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	pathColdStart    = "cold_start"
	pathPersonalized = "personalized"
	pathFallback     = "fallback"
	pathCache        = "cache"
)

var (
	RecommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Count of served recommendation sets by orchestration path and A/B variant.",
		},
		[]string{"path", "variant"},
	)
)

func init() {
	prometheus.MustRegister(RecommendationsServedTotal)
}
