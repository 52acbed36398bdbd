package services

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the client-side counters exposed on the optional /metrics
// endpoint.
type Metrics struct {
	Swipes          *prometheus.CounterVec
	SwipeFailures   *prometheus.CounterVec
	Matches         prometheus.Counter
	Resolutions     *prometheus.CounterVec
	FeedLoads       *prometheus.CounterVec
	FeedCandidates  prometheus.Gauge
	SessionAttempts *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg. A nil reg
// leaves them unregistered, which is what most tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Swipes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studybuddy",
			Name:      "swipes_total",
			Help:      "Swipe decisions taken, by status.",
		}, []string{"status"}),
		SwipeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studybuddy",
			Name:      "swipe_record_failures_total",
			Help:      "Swipe records that failed to reach the backend, by status.",
		}, []string{"status"}),
		Matches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studybuddy",
			Name:      "matches_total",
			Help:      "Mutual matches reported by the backend.",
		}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studybuddy",
			Name:      "resource_resolutions_total",
			Help:      "Course and major resolutions, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		FeedLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studybuddy",
			Name:      "feed_loads_total",
			Help:      "Candidate feed loads, by outcome.",
		}, []string{"outcome"}),
		FeedCandidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "studybuddy",
			Name:      "feed_candidates",
			Help:      "Candidates returned by the last successful feed load.",
		}),
		SessionAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studybuddy",
			Name:      "session_attempts_total",
			Help:      "Login, signup and profile requests, by operation and outcome.",
		}, []string{"op", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Swipes, m.SwipeFailures, m.Matches, m.Resolutions,
			m.FeedLoads, m.FeedCandidates, m.SessionAttempts)
	}
	return m
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "miss"
}
