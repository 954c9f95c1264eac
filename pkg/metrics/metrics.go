package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "printstudio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "printstudio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "printstudio", Name: "admin_logins_total", Help: "Admin login attempts by outcome."},
		[]string{"outcome"},
	)
	DraftEdits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "printstudio", Name: "draft_edits_total", Help: "Draft edit submissions by page."},
		[]string{"page"},
	)
	ContentPublishes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "printstudio", Name: "content_publishes_total", Help: "Number of draft publish operations."},
	)
	ContentDiscards = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "printstudio", Name: "content_discards_total", Help: "Number of draft discard operations."},
	)
	MediaUploads = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "printstudio", Name: "media_uploads_total", Help: "Number of media files uploaded through the admin panel."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(AdminLogins)
	reg.MustRegister(DraftEdits)
	reg.MustRegister(ContentPublishes)
	reg.MustRegister(ContentDiscards)
	reg.MustRegister(MediaUploads)
}
