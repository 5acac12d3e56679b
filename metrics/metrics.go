package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_chat_requests_total",
			Help: "Total number of chat relay requests by outcome",
		},
		[]string{"status"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "portfolio_provider_latency_seconds",
			Help: "Outbound provider call latency in seconds",
		},
		[]string{"provider"},
	)

	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_provider_errors_total",
			Help: "Total number of failed provider calls",
		},
		[]string{"provider", "kind"},
	)

	FallbackMatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_fallback_matches_total",
			Help: "Total number of replies served by the local intent matcher",
		},
	)

	ActiveWebsockets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_active_websockets",
			Help: "Number of connected live-chat websocket clients",
		},
	)

	ContactSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Total number of accepted contact form submissions",
		},
	)
)
