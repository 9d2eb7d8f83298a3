package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"assent/internal/ledger/models"
)

// Postgres persists ledger entries in PostgreSQL.
//
// Insert locks the referenced wording row FOR UPDATE before writing the
// entry. The wording store takes the same lock before update and delete, so
// a consent action and a wording mutation on the same version serialize: one
// of the two observes the other's effect and fails.
type Postgres struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPostgres constructs a PostgreSQL-backed ledger store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// NewPostgresTx constructs a PostgreSQL-backed ledger store bound to a transaction.
func NewPostgresTx(tx *sql.Tx) *Postgres {
	return &Postgres{tx: tx}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer() dbExecutor {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *Postgres) Insert(ctx context.Context, entry *models.Entry) error {
	if s.tx != nil {
		return s.insertLocked(ctx, s.tx, entry)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback after commit is a no-op
	}()
	if err := s.insertLocked(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger insert: %w", err)
	}
	return nil
}

func (s *Postgres) insertLocked(ctx context.Context, tx *sql.Tx, entry *models.Entry) error {
	// Attachment lock: serializes against wording update/delete.
	var version int64
	err := tx.QueryRowContext(ctx,
		`SELECT version FROM consent_wordings WHERE version = $1 FOR UPDATE`,
		entry.WordingVersion,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWordingGone
		}
		return fmt.Errorf("lock wording for entry: %w", err)
	}

	query := `
		INSERT INTO consent_entries (actor_user_name, wording_version, action_date, consent_given)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		entry.ActorUserName,
		entry.WordingVersion,
		entry.ActionDate,
		entry.ConsentGiven,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (s *Postgres) LastActionFor(ctx context.Context, userName string) (*models.Entry, error) {
	// Backed by consent_entries_actor_action_date_idx; id breaks ties in
	// insertion order.
	query := `
		SELECT id, actor_user_name, wording_version, action_date, consent_given
		FROM consent_entries
		WHERE actor_user_name = $1
		ORDER BY action_date DESC, id DESC
		LIMIT 1
	`
	var e models.Entry
	err := s.execer().QueryRowContext(ctx, query, userName).Scan(
		&e.ID, &e.ActorUserName, &e.WordingVersion, &e.ActionDate, &e.ConsentGiven,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoEntries
		}
		return nil, fmt.Errorf("last action for %q: %w", userName, err)
	}
	return &e, nil
}

func (s *Postgres) HasEntryForWording(ctx context.Context, version int64) (bool, error) {
	var has bool
	err := s.execer().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM consent_entries WHERE wording_version = $1)`,
		version,
	).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("check entries for wording: %w", err)
	}
	return has, nil
}

var _ Store = (*Postgres)(nil)
