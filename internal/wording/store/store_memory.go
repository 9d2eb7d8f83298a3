package store

import (
	"context"
	"sync"
	"time"

	"assent/internal/wording/models"
)

// Memory stores the wording catalog in memory for tests and development.
// It enforces the same guarantees as the Postgres store: label uniqueness
// and attachment immutability are checked under the store mutex, so two
// concurrent Inserts with the same label yield exactly one success. The
// gate stands in for the row lock the Postgres pair takes: mutations wait
// for in-flight consent transactions, so a delete cannot slip between a
// transaction's attachment check and its ledger publish.
type Memory struct {
	mu       sync.RWMutex
	gate     sync.RWMutex
	rows     map[int64]*models.Wording
	nextID   int64
	attached func(version int64) bool
}

// NewMemory constructs an empty in-memory wording store.
func NewMemory() *Memory {
	return &Memory{rows: make(map[int64]*models.Wording)}
}

// SetAttachmentCheck wires the ledger's attachment lookup. The callback runs
// under the store mutex and must not call back into this store.
func (s *Memory) SetAttachmentCheck(fn func(version int64) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = fn
}

// TxGate exposes the catalog mutation gate. Consent transaction runners
// hold it for reading while they record, Update and Delete take it for
// writing, so neither side can observe the other half-done.
func (s *Memory) TxGate() *sync.RWMutex {
	return &s.gate
}

func (s *Memory) Insert(_ context.Context, label, text string, creationDate time.Time) (*models.Wording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.labelTakenLocked(label, 0) {
		return nil, ErrLabelTaken
	}
	s.nextID++
	w := &models.Wording{
		Version:      s.nextID,
		VersionLabel: label,
		Wording:      text,
		CreationDate: creationDate,
	}
	s.rows[w.Version] = w
	copyRow := *w
	return &copyRow, nil
}

func (s *Memory) Update(_ context.Context, version int64, label, text string) (*models.Wording, error) {
	s.gate.Lock()
	defer s.gate.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[version]
	if !ok {
		return nil, ErrNotFound
	}
	if s.attached != nil && s.attached(version) {
		return nil, ErrAttached
	}
	if s.labelTakenLocked(label, version) {
		return nil, ErrLabelTaken
	}
	row.VersionLabel = label
	row.Wording = text
	copyRow := *row
	return &copyRow, nil
}

func (s *Memory) GetByVersion(_ context.Context, version int64) (*models.Wording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[version]
	if !ok {
		return nil, ErrNotFound
	}
	copyRow := *row
	return &copyRow, nil
}

func (s *Memory) Delete(_ context.Context, version int64) error {
	s.gate.Lock()
	defer s.gate.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[version]; !ok {
		return ErrNotFound
	}
	if s.attached != nil && s.attached(version) {
		return ErrAttached
	}
	delete(s.rows, version)
	return nil
}

func (s *Memory) GetCurrent(_ context.Context) (*models.Wording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var current *models.Wording
	for _, row := range s.rows {
		if current == nil {
			current = row
			continue
		}
		// Highest version id breaks creation-date ties.
		if row.CreationDate.After(current.CreationDate) ||
			(row.CreationDate.Equal(current.CreationDate) && row.Version > current.Version) {
			current = row
		}
	}
	if current == nil {
		return nil, ErrEmptyCatalog
	}
	copyRow := *current
	return &copyRow, nil
}

func (s *Memory) LabelExists(_ context.Context, label string, excludeVersion int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.labelTakenLocked(label, excludeVersion), nil
}

func (s *Memory) labelTakenLocked(label string, excludeVersion int64) bool {
	for _, row := range s.rows {
		if row.VersionLabel == label && row.Version != excludeVersion {
			return true
		}
	}
	return false
}
