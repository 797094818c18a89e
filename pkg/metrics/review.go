package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReviewMetrics tracks the submission workflow.
type ReviewMetrics struct {
	submissions *prometheus.CounterVec
	transitions *prometheus.CounterVec
	logins      *prometheus.CounterVec
}

// NewReviewMetrics registers the workflow metrics on reg. A nil registerer yields a no-op recorder.
func NewReviewMetrics(reg prometheus.Registerer) *ReviewMetrics {
	if reg == nil {
		return &ReviewMetrics{}
	}
	m := &ReviewMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_created_total",
			Help:      "Submissions created, by file type.",
		}, []string{"file_type"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submission_transitions_total",
			Help:      "Applied submission status transitions.",
		}, []string{"from", "to"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.submissions, m.transitions, m.logins)
	return m
}

// SubmissionCreated counts a new submission.
func (m *ReviewMetrics) SubmissionCreated(fileType string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(fileType)).Inc()
}

// Transition counts an applied status change.
func (m *ReviewMetrics) Transition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// Login counts an admin login attempt; result is "success" or "failure".
func (m *ReviewMetrics) Login(result string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(result)).Inc()
}
