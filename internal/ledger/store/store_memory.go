package store

import (
	"context"
	"sync"

	"assent/internal/ledger/models"
)

// Memory keeps ledger entries in an append-only slice for tests and
// development. Entries are copied on the way in and out so callers can never
// mutate a stored record.
type Memory struct {
	mu      sync.RWMutex
	entries []models.Entry
	nextID  int64
}

// NewMemory constructs an empty in-memory ledger store.
func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) Insert(_ context.Context, entry *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry.ID = s.nextID
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *Memory) LastActionFor(_ context.Context, userName string) (*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last *models.Entry
	for i := range s.entries {
		e := &s.entries[i]
		if e.ActorUserName != userName {
			continue
		}
		// Insertion order (highest id) breaks action-date ties.
		if last == nil || e.ActionDate.After(last.ActionDate) ||
			(e.ActionDate.Equal(last.ActionDate) && e.ID > last.ID) {
			last = e
		}
	}
	if last == nil {
		return nil, ErrNoEntries
	}
	copyEntry := *last
	return &copyEntry, nil
}

func (s *Memory) HasEntryForWording(_ context.Context, version int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasEntryLocked(version), nil
}

// AttachmentCheck adapts this store to the wording memory store's
// attachment callback.
func (s *Memory) AttachmentCheck() func(version int64) bool {
	return func(version int64) bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.hasEntryLocked(version)
	}
}

func (s *Memory) hasEntryLocked(version int64) bool {
	for i := range s.entries {
		if s.entries[i].WordingVersion == version {
			return true
		}
	}
	return false
}

// Len reports the number of stored entries. Used by tests asserting that a
// rolled-back withdrawal left the ledger untouched.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns a copy of all entries in insertion order. Test helper.
func (s *Memory) Snapshot() []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
