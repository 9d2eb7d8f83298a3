package models

import (
	"strings"
	"time"

	dErrors "assent/pkg/domain-errors"
)

// Wording is a versioned text of the consent terms shown to consumers.
//
// # Attachment Invariant
//
// A wording starts as a draft: label and text may change and the version may
// be deleted. The first consent action referencing the version attaches it
// permanently; from then on every update or delete is rejected. The audit
// trail depends on this: a recorded consent must always point at the exact
// text the consumer saw.
type Wording struct {
	// Version is the internal numeric identity, assigned by the store on
	// creation and never reused.
	Version int64

	// VersionLabel is the human-readable version name, unique across the
	// catalog (case-sensitive).
	VersionLabel string

	// Wording is the legal text body.
	Wording string

	// CreationDate is set once at creation. GetCurrent returns the row
	// with the maximum CreationDate.
	CreationDate time.Time
}

// ValidateContent checks the caller-supplied fields shared by add and update.
func ValidateContent(label, text string) error {
	if strings.TrimSpace(label) == "" {
		return dErrors.New(dErrors.CodeValidation, "version label is required")
	}
	if strings.TrimSpace(text) == "" {
		return dErrors.New(dErrors.CodeValidation, "wording text is required")
	}
	return nil
}
