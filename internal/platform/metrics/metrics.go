package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the consent service.
type Metrics struct {
	WordingsAdded   prometheus.Counter
	WordingsUpdated prometheus.Counter
	WordingsDeleted prometheus.Counter

	ConsentActions      *prometheus.CounterVec
	ProfilesErased      prometheus.Counter
	WithdrawalRollbacks prometheus.Counter

	ApplicabilityChecks *prometheus.CounterVec
	GeoResolveLatency   prometheus.Histogram
}

// Action labels for the ConsentActions counter.
const (
	ActionGiven     = "given"
	ActionWithdrawn = "withdrawn"
)

// Outcome labels for the ApplicabilityChecks counter.
const (
	OutcomeRequired    = "required"
	OutcomeNotRequired = "not_required"
	OutcomeError       = "error"
)

// New registers and returns the service metrics collectors.
func New() *Metrics {
	return &Metrics{
		WordingsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assent_wordings_added_total",
			Help: "Total number of consent wording versions added to the catalog",
		}),
		WordingsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assent_wordings_updated_total",
			Help: "Total number of consent wording updates",
		}),
		WordingsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assent_wordings_deleted_total",
			Help: "Total number of consent wording deletions",
		}),
		ConsentActions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "assent_consent_actions_total",
			Help: "Total number of consent actions recorded, labeled by action",
		}, []string{"action"}),
		ProfilesErased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assent_profiles_erased_total",
			Help: "Total number of consumer profiles erased on withdrawal",
		}),
		WithdrawalRollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assent_withdrawal_rollbacks_total",
			Help: "Total number of withdrawals rolled back because erasure failed",
		}),
		ApplicabilityChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "assent_applicability_checks_total",
			Help: "Total number of consent applicability checks, labeled by outcome",
		}, []string{"outcome"}),
		GeoResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "assent_geo_resolve_latency_seconds",
			Help:    "Latency of geolocation resolver calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncWordingsAdded increments the wording-added counter if metrics are enabled.
func (m *Metrics) IncWordingsAdded() {
	if m != nil {
		m.WordingsAdded.Inc()
	}
}

// IncWordingsUpdated increments the wording-updated counter if metrics are enabled.
func (m *Metrics) IncWordingsUpdated() {
	if m != nil {
		m.WordingsUpdated.Inc()
	}
}

// IncWordingsDeleted increments the wording-deleted counter if metrics are enabled.
func (m *Metrics) IncWordingsDeleted() {
	if m != nil {
		m.WordingsDeleted.Inc()
	}
}

// IncConsentAction increments the consent-action counter if metrics are enabled.
func (m *Metrics) IncConsentAction(action string) {
	if m != nil {
		m.ConsentActions.WithLabelValues(action).Inc()
	}
}

// IncProfilesErased increments the erasure counter if metrics are enabled.
func (m *Metrics) IncProfilesErased() {
	if m != nil {
		m.ProfilesErased.Inc()
	}
}

// IncWithdrawalRollbacks increments the rollback counter if metrics are enabled.
func (m *Metrics) IncWithdrawalRollbacks() {
	if m != nil {
		m.WithdrawalRollbacks.Inc()
	}
}

// IncApplicabilityCheck increments the applicability counter if metrics are enabled.
func (m *Metrics) IncApplicabilityCheck(outcome string) {
	if m != nil {
		m.ApplicabilityChecks.WithLabelValues(outcome).Inc()
	}
}

// ObserveGeoResolveLatency records resolver latency if metrics are enabled.
func (m *Metrics) ObserveGeoResolveLatency(seconds float64) {
	if m != nil {
		m.GeoResolveLatency.Observe(seconds)
	}
}
