// Package metrics defines the Prometheus instruments for the travel inquiry API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/travel-inquiry/backend/internal/notify"
	"github.com/pkordes/travel-inquiry/backend/internal/service"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New; passed by pointer wherever needed.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
	Notifications      *prometheus.CounterVec
}

// New registers all instruments with the given registerer and returns them.
// Pass a fresh prometheus.NewRegistry() in tests to avoid global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inquiry_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "status"}),

		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inquiry_submissions_total",
			Help: "Submission attempts that passed request decoding, by outcome.",
		}, []string{"outcome"}),

		SubmissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inquiry_submission_duration_seconds",
			Help:    "Time from validation to the last notification attempt.",
			Buckets: prometheus.DefBuckets,
		}),

		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inquiry_notifications_total",
			Help: "Notification send attempts, by kind and result.",
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.Submissions,
		m.SubmissionDuration,
		m.Notifications,
	)

	return m
}

// ServiceHooks returns the callbacks expected by service.MetricHooks.
func (m *Metrics) ServiceHooks() service.MetricHooks {
	return service.MetricHooks{
		OnSubmission: func(o service.Outcome, elapsed time.Duration) {
			m.Submissions.WithLabelValues(string(o)).Inc()
			m.SubmissionDuration.Observe(elapsed.Seconds())
		},
	}
}

// NotifyHooks returns the callbacks expected by notify.MetricHooks.
func (m *Metrics) NotifyHooks() notify.MetricHooks {
	return notify.MetricHooks{
		OnSent: func(k notify.Kind) {
			m.Notifications.WithLabelValues(string(k), "sent").Inc()
		},
		OnFailed: func(k notify.Kind) {
			m.Notifications.WithLabelValues(string(k), "failed").Inc()
		},
	}
}

// ObserveRequest counts one served HTTP request.
func (m *Metrics) ObserveRequest(method string, status int) {
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
