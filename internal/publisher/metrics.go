package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pikav_sessions",
		Help: "Number of live SSE sessions.",
	})

	framesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pikav_frames_delivered_total",
		Help: "Frames accepted by session queues, pings included.",
	})

	framesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pikav_frames_dropped_total",
		Help: "Frames rejected because a session queue was full.",
	})

	sessionsReaped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pikav_sessions_reaped_total",
		Help: "Sessions removed by the stale reaper.",
	})
)
