package main

import (
	"context"
	"database/sql"
	"time"

	consentservice "assent/internal/consent/service"
	ledgerstore "assent/internal/ledger/store"
	"assent/internal/platform/crypto"
	profilestore "assent/internal/profile/store"
	dErrors "assent/pkg/domain-errors"
)

const defaultConsentTxTimeout = 5 * time.Second

// consentPostgresTx runs consent writes inside a single database
// transaction. The ledger insert and the profile erasure share the
// transaction, so a failed erasure rolls the withdrawal entry back.
type consentPostgresTx struct {
	db      *sql.DB
	codec   *crypto.Codec
	timeout time.Duration
}

func newConsentPostgresTx(db *sql.DB, codec *crypto.Codec) *consentPostgresTx {
	return &consentPostgresTx{db: db, codec: codec}
}

func (t *consentPostgresTx) RunInTx(ctx context.Context, _ string, fn func(ctx context.Context, stores consentservice.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultConsentTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback after commit is no-op; error already captured
	}()

	stores := consentservice.TxStores{
		Ledger:   ledgerstore.NewPostgresTx(tx),
		Profiles: profilestore.NewPostgresTx(tx, t.codec),
	}
	if err := fn(ctx, stores); err != nil {
		return err
	}

	return tx.Commit()
}
