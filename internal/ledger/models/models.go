package models

import "time"

// Entry is one immutable consent action in the append-only ledger.
//
// ActorUserName is a weak reference: it is the user name string at the time
// of the action, deliberately not a relational constraint. The consumer
// profile behind it may be erased on withdrawal while this record persists
// for the audit trail.
type Entry struct {
	ID             int64
	ActorUserName  string
	WordingVersion int64
	ActionDate     time.Time

	// ConsentGiven is true when consent was granted, false when withdrawn.
	ConsentGiven bool
}
