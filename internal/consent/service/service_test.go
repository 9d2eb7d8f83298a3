package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"assent/internal/identity"
	ledgermodels "assent/internal/ledger/models"
	ledgerstore "assent/internal/ledger/store"
	profilemodels "assent/internal/profile/models"
	profileservice "assent/internal/profile/service"
	profilestore "assent/internal/profile/store"
	wordingservice "assent/internal/wording/service"
	wordingstore "assent/internal/wording/store"
	dErrors "assent/pkg/domain-errors"
)

// stubApplicability pins the applicability answer for orchestrator tests;
// the real decision logic has its own suite.
type stubApplicability struct {
	required bool
	err      error
}

func (a stubApplicability) IsRequired(context.Context, string) (bool, error) {
	return a.required, a.err
}

type ServiceSuite struct {
	suite.Suite
	ledger   *ledgerstore.Memory
	profiles *profilestore.Memory
	wordings *wordingservice.Service
	tx       *MemoryTx
	svc      *Service
	actor    identity.Actor
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	wordingStore := wordingstore.NewMemory()
	s.ledger = ledgerstore.NewMemory()
	wordingStore.SetAttachmentCheck(s.ledger.AttachmentCheck())
	s.profiles = profilestore.NewMemory()
	s.wordings = wordingservice.NewService(wordingStore, logger)

	profiles := profileservice.NewService(s.profiles, logger)
	profile, err := profiles.Signup(context.Background(), profilemodels.SignupRequest{
		UserName: "jane",
		Password: "s3cret",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
	})
	s.Require().NoError(err)
	s.actor = identity.Actor{UserID: profile.UserID, UserName: "jane", Role: identity.RoleConsumer}

	s.tx = NewMemoryTx(s.ledger, s.profiles)
	s.tx.SetCatalogGate(wordingStore.TxGate())

	s.svc = NewService(
		s.tx,
		s.ledger,
		s.wordings,
		stubApplicability{required: true},
		logger,
	)
}

func (s *ServiceSuite) addWording(label string) int64 {
	w, err := s.wordings.Add(context.Background(), label, "We process your data to fulfil orders.")
	s.Require().NoError(err)
	return w.Version
}

func (s *ServiceSuite) TestGiveConsent() {
	version := s.addWording("v1.0")

	entry, err := s.svc.GiveConsent(context.Background(), s.actor, version)
	s.Require().NoError(err)
	s.True(entry.ConsentGiven)
	s.Equal("jane", entry.ActorUserName)
	s.Equal(version, entry.WordingVersion)
	s.NotZero(entry.ID)
	s.Equal(1, s.ledger.Len())
}

func (s *ServiceSuite) TestGiveConsentUnknownWording() {
	_, err := s.svc.GiveConsent(context.Background(), s.actor, 42)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Zero(s.ledger.Len())
}

func (s *ServiceSuite) TestGiveConsentRequiresActor() {
	version := s.addWording("v1.0")
	_, err := s.svc.GiveConsent(context.Background(), identity.Actor{}, version)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestWithdrawErasesProfile() {
	version := s.addWording("v1.0")
	_, err := s.svc.GiveConsent(context.Background(), s.actor, version)
	s.Require().NoError(err)

	entry, err := s.svc.WithdrawConsent(context.Background(), s.actor, version)
	s.Require().NoError(err)
	s.False(entry.ConsentGiven)

	_, err = s.profiles.FindProfileByUserID(context.Background(), s.actor.UserID)
	s.ErrorIs(err, profilestore.ErrNotFound)
	s.Equal(2, s.ledger.Len())
}

func (s *ServiceSuite) TestWithdrawRollsBackWhenErasureFails() {
	version := s.addWording("v1.0")
	_, err := s.svc.GiveConsent(context.Background(), s.actor, version)
	s.Require().NoError(err)

	_, err = s.svc.WithdrawConsent(context.Background(), s.actor, version)
	s.Require().NoError(err)

	// The profile is already gone, so a second withdrawal cannot honor its
	// erasure duty and must not leave a ledger entry behind.
	_, err = s.svc.WithdrawConsent(context.Background(), s.actor, version)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal(2, s.ledger.Len())
}

// A wording delete racing an in-flight consent transaction must not orphan
// the recorded entry: the delete waits for the transaction to finish and
// then loses the attachment check.
func (s *ServiceSuite) TestWordingDeleteWaitsForInflightConsent() {
	version := s.addWording("v1.0")

	deleteErr := make(chan error, 1)
	err := s.tx.RunInTx(context.Background(), s.actor.UserName, func(ctx context.Context, stores TxStores) error {
		insertErr := stores.Ledger.Insert(ctx, &ledgermodels.Entry{
			ActorUserName:  s.actor.UserName,
			WordingVersion: version,
			ActionDate:     time.Now().UTC(),
			ConsentGiven:   true,
		})
		if insertErr != nil {
			return insertErr
		}
		go func() { deleteErr <- s.wordings.Delete(context.Background(), version) }()
		// Give the delete a chance to reach the catalog gate.
		time.Sleep(20 * time.Millisecond)
		return nil
	})
	s.Require().NoError(err)

	err = <-deleteErr
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	// The committed entry still references an existing wording.
	_, err = s.wordings.GetByVersion(context.Background(), version)
	s.NoError(err)
	s.Equal(1, s.ledger.Len())
}

func (s *ServiceSuite) TestGetLastConsentFor() {
	last, err := s.svc.GetLastConsentFor(context.Background(), "jane")
	s.Require().NoError(err)
	s.Nil(last)

	version := s.addWording("v1.0")
	_, err = s.svc.GiveConsent(context.Background(), s.actor, version)
	s.Require().NoError(err)
	_, err = s.svc.WithdrawConsent(context.Background(), s.actor, version)
	s.Require().NoError(err)

	last, err = s.svc.GetLastConsentFor(context.Background(), "jane")
	s.Require().NoError(err)
	s.Require().NotNil(last)
	s.False(last.ConsentGiven)
}

func (s *ServiceSuite) TestIsConsentRequiredDelegates() {
	required, err := s.svc.IsConsentRequired(context.Background(), "185.60.216.35")
	s.Require().NoError(err)
	s.True(required)
}

// TestConsentLifecycle walks the whole flow end to end against the in-memory
// stores: empty catalog, first wording, consent, the immutability it causes,
// and withdrawal with erasure.
func (s *ServiceSuite) TestConsentLifecycle() {
	ctx := context.Background()

	_, err := s.wordings.GetCurrent(ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeEmptyCatalog))

	version := s.addWording("v1.0")
	current, err := s.wordings.GetCurrent(ctx)
	s.Require().NoError(err)
	s.Equal(version, current.Version)

	entry, err := s.svc.GiveConsent(ctx, s.actor, version)
	s.Require().NoError(err)
	s.True(entry.ConsentGiven)
	s.WithinDuration(time.Now(), entry.ActionDate, time.Minute)

	// The referenced wording is now frozen.
	_, err = s.wordings.Update(ctx, version, "v1.1", "Updated text.")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.True(dErrors.HasCode(s.wordings.Delete(ctx, version), dErrors.CodeConflict))

	_, err = s.svc.WithdrawConsent(ctx, s.actor, version)
	s.Require().NoError(err)

	_, err = s.profiles.FindProfileByUserID(ctx, s.actor.UserID)
	s.ErrorIs(err, profilestore.ErrNotFound)

	last, err := s.svc.GetLastConsentFor(ctx, "jane")
	s.Require().NoError(err)
	s.Require().NotNil(last)
	s.False(last.ConsentGiven)
	s.Equal(version, last.WordingVersion)
}
