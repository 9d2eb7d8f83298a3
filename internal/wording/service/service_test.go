package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"assent/internal/wording/store"
	dErrors "assent/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	store *store.Memory
	svc   *Service
	now   time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewMemory()
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.svc = NewService(s.store,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *ServiceSuite) TestAdd() {
	w, err := s.svc.Add(context.Background(), "v1.0", "We process your data to fulfil orders.")
	s.Require().NoError(err)
	s.Equal(int64(1), w.Version)
	s.Equal(s.now, w.CreationDate)
}

func (s *ServiceSuite) TestAddRejectsBlankContent() {
	for _, tc := range []struct{ label, text string }{
		{"", "text"},
		{"   ", "text"},
		{"v1.0", ""},
		{"v1.0", "  "},
	} {
		_, err := s.svc.Add(context.Background(), tc.label, tc.text)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), "label=%q text=%q", tc.label, tc.text)
	}
}

func (s *ServiceSuite) TestAddDuplicateLabel() {
	_, err := s.svc.Add(context.Background(), "v1.0", "text")
	s.Require().NoError(err)

	_, err = s.svc.Add(context.Background(), "v1.0", "other text")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestUpdate() {
	w, err := s.svc.Add(context.Background(), "v1.0", "text")
	s.Require().NoError(err)

	updated, err := s.svc.Update(context.Background(), w.Version, "v1.1", "revised text")
	s.Require().NoError(err)
	s.Equal(w.Version, updated.Version)
	s.Equal("v1.1", updated.VersionLabel)
	s.Equal("revised text", updated.Wording)
}

func (s *ServiceSuite) TestUpdateMissingVersion() {
	_, err := s.svc.Update(context.Background(), 42, "v1.0", "text")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateAttachedWording() {
	w, err := s.svc.Add(context.Background(), "v1.0", "text")
	s.Require().NoError(err)
	s.store.SetAttachmentCheck(func(int64) bool { return true })

	_, err = s.svc.Update(context.Background(), w.Version, "v1.1", "revised")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestDelete() {
	w, err := s.svc.Add(context.Background(), "v1.0", "text")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(context.Background(), w.Version))
	s.True(dErrors.HasCode(s.svc.Delete(context.Background(), w.Version), dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteAttachedWording() {
	w, err := s.svc.Add(context.Background(), "v1.0", "text")
	s.Require().NoError(err)
	s.store.SetAttachmentCheck(func(int64) bool { return true })

	s.True(dErrors.HasCode(s.svc.Delete(context.Background(), w.Version), dErrors.CodeConflict))
}

func (s *ServiceSuite) TestGetCurrent() {
	_, err := s.svc.GetCurrent(context.Background())
	s.True(dErrors.HasCode(err, dErrors.CodeEmptyCatalog))

	_, err = s.svc.Add(context.Background(), "v1.0", "text")
	s.Require().NoError(err)
	s.now = s.now.Add(time.Hour)
	w2, err := s.svc.Add(context.Background(), "v2.0", "newer text")
	s.Require().NoError(err)

	current, err := s.svc.GetCurrent(context.Background())
	s.Require().NoError(err)
	s.Equal(w2.Version, current.Version)
}

func (s *ServiceSuite) TestGetByVersion() {
	w, err := s.svc.Add(context.Background(), "v1.0", "text")
	s.Require().NoError(err)

	got, err := s.svc.GetByVersion(context.Background(), w.Version)
	s.Require().NoError(err)
	s.Equal("v1.0", got.VersionLabel)

	_, err = s.svc.GetByVersion(context.Background(), 99)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
