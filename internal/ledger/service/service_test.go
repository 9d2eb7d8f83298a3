package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assent/internal/ledger/store"
	wordingservice "assent/internal/wording/service"
	wordingstore "assent/internal/wording/store"
	dErrors "assent/pkg/domain-errors"
)

func newLedger(t *testing.T) (*Ledger, *store.Memory, int64) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	wordings := wordingservice.NewService(wordingstore.NewMemory(), logger)
	w, err := wordings.Add(context.Background(), "v1.0", "We process your data to fulfil orders.")
	require.NoError(t, err)

	st := store.NewMemory()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return New(st, wordings, WithClock(func() time.Time { return now })), st, w.Version
}

func TestRecord(t *testing.T) {
	ledger, st, version := newLedger(t)

	entry, err := ledger.Record(context.Background(), "jane", version, true)
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "jane", entry.ActorUserName)
	assert.Equal(t, version, entry.WordingVersion)
	assert.True(t, entry.ConsentGiven)
	assert.Equal(t, 1, st.Len())
}

func TestRecordRequiresActor(t *testing.T) {
	ledger, st, version := newLedger(t)

	_, err := ledger.Record(context.Background(), "  ", version, true)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Zero(t, st.Len())
}

func TestRecordUnknownWording(t *testing.T) {
	ledger, st, _ := newLedger(t)

	_, err := ledger.Record(context.Background(), "jane", 42, true)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Zero(t, st.Len())
}

func TestLastActionFor(t *testing.T) {
	ledger, _, version := newLedger(t)

	last, err := ledger.LastActionFor(context.Background(), "jane")
	require.NoError(t, err)
	assert.Nil(t, last)

	_, err = ledger.Record(context.Background(), "jane", version, true)
	require.NoError(t, err)

	last, err = ledger.LastActionFor(context.Background(), "jane")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.ConsentGiven)
}
