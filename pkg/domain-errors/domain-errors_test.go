package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// These are the core error primitives used at every trust boundary. Unit
// tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "wording not found"}
		s.Equal("wording not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeEmptyCatalog}
		s.Equal("empty_catalog", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("database connection failed")
		err := &Error{Code: CodeInternal, Message: "service error", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})

	s.Run("works with errors.Unwrap", func() {
		inner := errors.New("root cause")
		err := &Error{Code: CodeExternalService, Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeConflict, Message: "version label already exists"}
		err2 := &Error{Code: CodeConflict, Message: "wording is attached"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := &Error{Code: CodeInternal}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := errors.New("not found")
		s.False(err1.Is(err2))
	})

	s.Run("works with errors.Is through chain", func() {
		inner := &Error{Code: CodeNotFound, Message: "original"}
		wrapped := &Error{Code: CodeInternal, Message: "wrapped", Err: inner}
		target := &Error{Code: CodeNotFound}
		s.True(errors.Is(wrapped, target))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves the code of a wrapped domain error", func() {
		inner := New(CodeConflict, "label taken")
		wrapped := Wrap(inner, CodeInternal, "could not add wording")
		s.True(HasCode(wrapped, CodeConflict))
	})

	s.Run("applies the given code to plain errors", func() {
		inner := errors.New("dial tcp: connection refused")
		wrapped := Wrap(inner, CodeExternalService, "geolocation lookup failed")
		s.True(HasCode(wrapped, CodeExternalService))
		s.ErrorContains(wrapped, "geolocation lookup failed")
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.True(HasCode(New(CodeValidation, "source IP is required"), CodeValidation))
	s.False(HasCode(errors.New("plain"), CodeValidation))
	s.False(HasCode(nil, CodeValidation))
}
