package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the intake flow and its notifications.
type IntakeMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	submitLatency      prometheus.Histogram
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webmcp",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Intake submissions by outcome",
		}, []string{"outcome"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webmcp",
			Subsystem: "intake",
			Name:      "notifications_total",
			Help:      "Post-acceptance notifications by notifier and status",
		}, []string{"notifier", "status"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "webmcp",
			Subsystem: "intake",
			Name:      "submit_duration_seconds",
			Help:      "Latency of intake submission handling",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.notificationsTotal, m.submitLatency)
	return m
}

func (m *IntakeMetrics) ObserveSubmission(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
	m.submitLatency.Observe(seconds)
}

func (m *IntakeMetrics) ObserveNotification(notifier string, ok bool) {
	if m == nil {
		return
	}
	status := "failed"
	if ok {
		status = "sent"
	}
	m.notificationsTotal.WithLabelValues(notifier, status).Inc()
}
