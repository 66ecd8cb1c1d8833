package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	TweetsCreated    *prometheus.CounterVec
	TweetsDeleted    *prometheus.CounterVec
	LikeRequests     *prometheus.CounterVec
	FollowRequests   *prometheus.CounterVec
	RejectedRequests *prometheus.CounterVec
}

// New builds the counters without registering them.
func New() *Metrics {
	return &Metrics{
		TweetsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tweets_created_total",
				Help: "Total number of tweets created",
			},
			[]string{"path"},
		),
		TweetsDeleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tweets_deleted_total",
				Help: "Total number of tweets deleted",
			},
			[]string{"path"},
		),
		LikeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "likes_total",
				Help: "Total number of successful like requests",
			},
			[]string{"path"},
		),
		FollowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "follows_total",
				Help: "Total number of successful follow requests",
			},
			[]string{"path"},
		),
		RejectedRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rejected_requests_total",
				Help: "Total number of rejected (4xx) requests",
			},
			[]string{"path"},
		),
	}
}

// InitMetrics builds the counters and registers them with the default
// registry for the /metrics endpoint.
func InitMetrics() *Metrics {
	m := New()

	prometheus.MustRegister(m.TweetsCreated)
	prometheus.MustRegister(m.TweetsDeleted)
	prometheus.MustRegister(m.LikeRequests)
	prometheus.MustRegister(m.FollowRequests)
	prometheus.MustRegister(m.RejectedRequests)

	return m
}
