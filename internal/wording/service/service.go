package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"assent/internal/platform/metrics"
	"assent/internal/wording/models"
	"assent/internal/wording/store"
	dErrors "assent/pkg/domain-errors"
)

// Service manages the versioned consent wording catalog.
//
// The label-uniqueness pre-check here is advisory and exists for precise
// error messages; the store's unique constraint decides races. Attachment
// immutability is likewise enforced by the store inside the mutating
// operation, never by a read-then-write in this layer alone.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the creation-date clock. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService constructs the wording catalog service.
func NewService(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{store: st, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Add validates and persists a new wording version.
func (s *Service) Add(ctx context.Context, label, text string) (*models.Wording, error) {
	if err := s.validateContent(ctx, label, text, 0); err != nil {
		return nil, err
	}

	w, err := s.store.Insert(ctx, label, text, s.now())
	if err != nil {
		if errors.Is(err, store.ErrLabelTaken) {
			return nil, labelTakenError(label)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not add wording")
	}

	s.logger.InfoContext(ctx, "wording added", "version", w.Version, "label", w.VersionLabel)
	s.metrics.IncWordingsAdded()
	return w, nil
}

// Update replaces label and text of an unattached wording version.
func (s *Service) Update(ctx context.Context, version int64, label, text string) (*models.Wording, error) {
	if _, err := s.getByVersion(ctx, version); err != nil {
		return nil, err
	}
	if err := s.validateContent(ctx, label, text, version); err != nil {
		return nil, err
	}

	w, err := s.store.Update(ctx, version, label, text)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, notFoundError(version)
		case errors.Is(err, store.ErrAttached):
			return nil, attachedError()
		case errors.Is(err, store.ErrLabelTaken):
			return nil, labelTakenError(label)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not update wording")
	}

	s.logger.InfoContext(ctx, "wording updated", "version", version, "label", label)
	s.metrics.IncWordingsUpdated()
	return w, nil
}

// GetByVersion fetches a single wording version.
func (s *Service) GetByVersion(ctx context.Context, version int64) (*models.Wording, error) {
	return s.getByVersion(ctx, version)
}

// Delete removes an unattached wording version.
func (s *Service) Delete(ctx context.Context, version int64) error {
	err := s.store.Delete(ctx, version)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return notFoundError(version)
		case errors.Is(err, store.ErrAttached):
			return attachedError()
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not delete wording")
	}

	s.logger.InfoContext(ctx, "wording deleted", "version", version)
	s.metrics.IncWordingsDeleted()
	return nil
}

// GetCurrent returns the most recently created wording version.
func (s *Service) GetCurrent(ctx context.Context) (*models.Wording, error) {
	w, err := s.store.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, store.ErrEmptyCatalog) {
			return nil, dErrors.New(dErrors.CodeEmptyCatalog, "no consent wording registered yet")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not get current wording")
	}
	return w, nil
}

func (s *Service) getByVersion(ctx context.Context, version int64) (*models.Wording, error) {
	w, err := s.store.GetByVersion(ctx, version)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError(version)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not get wording")
	}
	return w, nil
}

func (s *Service) validateContent(ctx context.Context, label, text string, excludeVersion int64) error {
	if err := models.ValidateContent(label, text); err != nil {
		return err
	}
	taken, err := s.store.LabelExists(ctx, label, excludeVersion)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not check version label")
	}
	if taken {
		return labelTakenError(label)
	}
	return nil
}

func notFoundError(version int64) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("consent wording version %d does not exist", version))
}

func labelTakenError(label string) error {
	return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("version label %q already exists", label))
}

func attachedError() error {
	return dErrors.New(dErrors.CodeConflict, "wording is attached to a consent action and cannot be changed or deleted")
}
