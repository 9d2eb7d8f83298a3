package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assent/internal/ledger/models"
	"assent/internal/ledger/store"
	wordingmodels "assent/internal/wording/models"
	dErrors "assent/pkg/domain-errors"
)

// WordingResolver resolves a wording version before an entry is recorded.
// Satisfied by the wording service.
type WordingResolver interface {
	GetByVersion(ctx context.Context, version int64) (*wordingmodels.Wording, error)
}

// Ledger appends consent actions to the audit trail. Entries are write-once:
// there is no update path anywhere in this package.
type Ledger struct {
	store    store.Store
	wordings WordingResolver
	now      func() time.Time
}

// Option configures the Ledger.
type Option func(*Ledger)

// WithClock overrides the action-date clock. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New constructs a Ledger over the given store. The store may be bound to a
// surrounding transaction; withdrawal runs exactly that way.
func New(st store.Store, wordings WordingResolver, opts ...Option) *Ledger {
	l := &Ledger{store: st, wordings: wordings, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record resolves the wording version and appends an immutable entry.
func (l *Ledger) Record(ctx context.Context, actorUserName string, wordingVersion int64, consentGiven bool) (*models.Entry, error) {
	if strings.TrimSpace(actorUserName) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "actor user name is required")
	}

	// The resolver returns domain errors; a missing version propagates
	// as-is per the ledger contract.
	if _, err := l.wordings.GetByVersion(ctx, wordingVersion); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		ActorUserName:  actorUserName,
		WordingVersion: wordingVersion,
		ActionDate:     l.now(),
		ConsentGiven:   consentGiven,
	}
	if err := l.store.Insert(ctx, entry); err != nil {
		if errors.Is(err, store.ErrWordingGone) {
			return nil, dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("consent wording version %d does not exist", wordingVersion))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not record consent action")
	}
	return entry, nil
}

// LastActionFor returns the actor's most recent consent action, or nil when
// the actor has none. Absence is a valid administrative answer, not an error.
func (l *Ledger) LastActionFor(ctx context.Context, userName string) (*models.Entry, error) {
	entry, err := l.store.LastActionFor(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrNoEntries) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not look up last consent action")
	}
	return entry, nil
}
