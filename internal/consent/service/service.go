// Package service orchestrates the consent flow: the applicability check,
// the append-only ledger, and the erasure duty that withdrawal triggers.
package service

import (
	"context"
	"log/slog"
	"time"

	"assent/internal/identity"
	ledgermodels "assent/internal/ledger/models"
	ledgerservice "assent/internal/ledger/service"
	ledgerstore "assent/internal/ledger/store"
	"assent/internal/platform/metrics"
	profileservice "assent/internal/profile/service"
	dErrors "assent/pkg/domain-errors"
)

// Applicability answers whether consent must be collected for a source IP.
// Satisfied by the applicability service.
type Applicability interface {
	IsRequired(ctx context.Context, sourceIP string) (bool, error)
}

// Service is the consent orchestrator. Reads go straight to the ledger
// store; writes run inside a transaction keyed by the acting user, with the
// ledger and profile services rebuilt over the transaction-bound stores.
type Service struct {
	tx            Tx
	reads         ledgerstore.Store
	wordings      ledgerservice.WordingResolver
	applicability Applicability
	logger        *slog.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the action-date clock. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService constructs the consent orchestrator.
func NewService(tx Tx, reads ledgerstore.Store, wordings ledgerservice.WordingResolver, applicability Applicability, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		tx:            tx,
		reads:         reads,
		wordings:      wordings,
		applicability: applicability,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// IsConsentRequired reports whether consent must be collected for a request
// originating from sourceIP.
func (s *Service) IsConsentRequired(ctx context.Context, sourceIP string) (bool, error) {
	return s.applicability.IsRequired(ctx, sourceIP)
}

// GiveConsent records a positive consent action by the actor against the
// given wording version. The wording becomes immutable from this point on.
func (s *Service) GiveConsent(ctx context.Context, actor identity.Actor, wordingVersion int64) (*ledgermodels.Entry, error) {
	entry, err := s.record(ctx, actor, wordingVersion, true, nil)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "consent given",
		"user_name", actor.UserName, "wording_version", wordingVersion)
	s.metrics.IncConsentAction(metrics.ActionGiven)
	return entry, nil
}

// WithdrawConsent records a negative consent action and erases the actor's
// personal data in the same transaction, per the right to erasure. If the
// erasure fails the withdrawal entry is rolled back with it.
func (s *Service) WithdrawConsent(ctx context.Context, actor identity.Actor, wordingVersion int64) (*ledgermodels.Entry, error) {
	entry, err := s.record(ctx, actor, wordingVersion, false, func(ctx context.Context, stores TxStores) error {
		eraser := profileservice.NewEraser(stores.Profiles, s.logger, s.metrics)
		return eraser.EraseOnWithdrawal(ctx, actor.UserID)
	})
	if err != nil {
		s.metrics.IncWithdrawalRollbacks()
		return nil, err
	}

	s.logger.InfoContext(ctx, "consent withdrawn and personal data erased",
		"user_name", actor.UserName, "wording_version", wordingVersion)
	s.metrics.IncConsentAction(metrics.ActionWithdrawn)
	return entry, nil
}

// GetLastConsentFor returns the most recent consent action recorded for the
// named user, or nil when none exists.
func (s *Service) GetLastConsentFor(ctx context.Context, userName string) (*ledgermodels.Entry, error) {
	ledger := ledgerservice.New(s.reads, s.wordings, ledgerservice.WithClock(s.now))
	return ledger.LastActionFor(ctx, userName)
}

// record runs a consent action inside a transaction. The optional followUp
// runs after the ledger insert against the same transaction-bound stores.
func (s *Service) record(ctx context.Context, actor identity.Actor, wordingVersion int64, given bool, followUp func(ctx context.Context, stores TxStores) error) (*ledgermodels.Entry, error) {
	if actor.Zero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing user context")
	}

	var entry *ledgermodels.Entry
	err := s.tx.RunInTx(ctx, actor.UserName, func(ctx context.Context, stores TxStores) error {
		ledger := ledgerservice.New(stores.Ledger, s.wordings, ledgerservice.WithClock(s.now))

		var err error
		entry, err = ledger.Record(ctx, actor.UserName, wordingVersion, given)
		if err != nil {
			return err
		}
		if followUp != nil {
			return followUp(ctx, stores)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
