package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus counters exported on the metrics port
var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lunchlink_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"result"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lunchlink_orders_placed_total",
		Help: "Orders placed, including guest orders.",
	})

	OrdersDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lunchlink_orders_delivered_total",
		Help: "Orders marked delivered.",
	})

	MenusPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lunchlink_menus_published_total",
		Help: "Daily menus created or replaced.",
	})

	GuestCodeRotations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lunchlink_guest_code_rotations_total",
		Help: "Guest passcode regenerations.",
	})

	SuggestionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lunchlink_ai_requests_total",
		Help: "Generative requests by kind (ideas, summary).",
	}, []string{"kind"})
)
