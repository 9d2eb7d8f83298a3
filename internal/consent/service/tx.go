package service

import (
	"context"
	"sync"

	ledgerstore "assent/internal/ledger/store"
	profilestore "assent/internal/profile/store"
	syncutil "assent/pkg/platform/sync"
)

// TxStores bundles the stores bound to one consent transaction. A withdrawal
// appends its ledger entry and erases the profile through the same
// transaction so both land or neither does.
type TxStores struct {
	Ledger   ledgerstore.Store
	Profiles profilestore.Store
}

// Tx runs a function within a transaction boundary. The key identifies the
// actor the transaction belongs to; implementations may use it to serialize
// transactions per actor.
type Tx interface {
	RunInTx(ctx context.Context, key string, fn func(ctx context.Context, stores TxStores) error) error
}

// MemoryTx is the in-memory transaction runner. It serializes transactions
// per actor with a sharded mutex and hands the callback staged store views;
// staged writes publish only when the callback succeeds, which gives the
// memory pair the same rollback behavior the database pair gets for free.
type MemoryTx struct {
	ledger   *ledgerstore.Memory
	profiles *profilestore.Memory
	locks    *syncutil.ShardedMutex
	catalog  *sync.RWMutex
}

// NewMemoryTx constructs an in-memory transaction runner over the given stores.
func NewMemoryTx(ledger *ledgerstore.Memory, profiles *profilestore.Memory) *MemoryTx {
	return &MemoryTx{
		ledger:   ledger,
		profiles: profiles,
		locks:    syncutil.NewShardedMutex(),
	}
}

// SetCatalogGate wires the wording store's mutation gate. RunInTx holds it
// for reading for the whole transaction, so a concurrent wording update or
// delete lands strictly before it (and the wording lookup fails) or
// strictly after (and the attachment check sees the committed entry).
// Without the gate a delete could pass its attachment check against
// staged, not-yet-visible entries.
func (t *MemoryTx) SetCatalogGate(gate *sync.RWMutex) {
	t.catalog = gate
}

func (t *MemoryTx) RunInTx(ctx context.Context, key string, fn func(ctx context.Context, stores TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.locks.Lock(key)
	defer t.locks.Unlock(key)

	if t.catalog != nil {
		t.catalog.RLock()
		defer t.catalog.RUnlock()
	}

	ledgerTx := t.ledger.Begin()
	profilesTx := t.profiles.Begin()
	if err := fn(ctx, TxStores{Ledger: ledgerTx, Profiles: profilesTx}); err != nil {
		return err
	}

	ledgerTx.Commit()
	profilesTx.Commit()
	return nil
}

var _ Tx = (*MemoryTx)(nil)
