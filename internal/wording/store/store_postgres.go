package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"assent/internal/platform/database"
	"assent/internal/wording/models"
)

// Postgres persists the wording catalog in PostgreSQL.
//
// The version_label unique constraint is the authoritative uniqueness guard.
// Update and Delete lock the wording row FOR UPDATE before checking for
// attached consent actions; the ledger store takes the same lock before
// inserting an entry, so an update/delete and a concurrent record on the same
// version can never both succeed.
type Postgres struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPostgres constructs a PostgreSQL-backed wording store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// NewPostgresTx constructs a PostgreSQL-backed wording store bound to a transaction.
func NewPostgresTx(tx *sql.Tx) *Postgres {
	return &Postgres{tx: tx}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer() dbExecutor {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *Postgres) Insert(ctx context.Context, label, text string, creationDate time.Time) (*models.Wording, error) {
	query := `
		INSERT INTO consent_wordings (version_label, wording, creation_date)
		VALUES ($1, $2, $3)
		RETURNING version
	`
	w := &models.Wording{VersionLabel: label, Wording: text, CreationDate: creationDate}
	err := s.execer().QueryRowContext(ctx, query, label, text, creationDate).Scan(&w.Version)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrLabelTaken
		}
		return nil, fmt.Errorf("insert wording: %w", err)
	}
	return w, nil
}

func (s *Postgres) Update(ctx context.Context, version int64, label, text string) (*models.Wording, error) {
	var updated *models.Wording
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		w, err := lockWording(ctx, tx, version)
		if err != nil {
			return err
		}
		attached, err := isAttached(ctx, tx, version)
		if err != nil {
			return err
		}
		if attached {
			return ErrAttached
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE consent_wordings SET version_label = $2, wording = $3 WHERE version = $1`,
			version, label, text,
		)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return ErrLabelTaken
			}
			return fmt.Errorf("update wording: %w", err)
		}
		w.VersionLabel = label
		w.Wording = text
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Postgres) GetByVersion(ctx context.Context, version int64) (*models.Wording, error) {
	query := `
		SELECT version, version_label, wording, creation_date
		FROM consent_wordings
		WHERE version = $1
	`
	w, err := scanWording(s.execer().QueryRowContext(ctx, query, version))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get wording: %w", err)
	}
	return w, nil
}

func (s *Postgres) Delete(ctx context.Context, version int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := lockWording(ctx, tx, version); err != nil {
			return err
		}
		attached, err := isAttached(ctx, tx, version)
		if err != nil {
			return err
		}
		if attached {
			return ErrAttached
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM consent_wordings WHERE version = $1`, version); err != nil {
			return fmt.Errorf("delete wording: %w", err)
		}
		return nil
	})
}

func (s *Postgres) GetCurrent(ctx context.Context) (*models.Wording, error) {
	// Highest version id breaks creation-date ties.
	query := `
		SELECT version, version_label, wording, creation_date
		FROM consent_wordings
		ORDER BY creation_date DESC, version DESC
		LIMIT 1
	`
	w, err := scanWording(s.execer().QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("get current wording: %w", err)
	}
	return w, nil
}

func (s *Postgres) LabelExists(ctx context.Context, label string, excludeVersion int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM consent_wordings WHERE version_label = $1 AND version <> $2
		)
	`
	var exists bool
	if err := s.execer().QueryRowContext(ctx, query, label, excludeVersion).Scan(&exists); err != nil {
		return false, fmt.Errorf("check version label: %w", err)
	}
	return exists, nil
}

// inTx runs fn inside the bound transaction if one exists, otherwise in a
// fresh transaction that commits on success.
func (s *Postgres) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wording tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback after commit is a no-op
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wording tx: %w", err)
	}
	return nil
}

// lockWording fetches the wording row FOR UPDATE so concurrent consent
// recording on the same version serializes against this transaction.
func lockWording(ctx context.Context, tx *sql.Tx, version int64) (*models.Wording, error) {
	query := `
		SELECT version, version_label, wording, creation_date
		FROM consent_wordings
		WHERE version = $1
		FOR UPDATE
	`
	w, err := scanWording(tx.QueryRowContext(ctx, query, version))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock wording: %w", err)
	}
	return w, nil
}

func isAttached(ctx context.Context, tx *sql.Tx, version int64) (bool, error) {
	var attached bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM consent_entries WHERE wording_version = $1)`,
		version,
	).Scan(&attached)
	if err != nil {
		return false, fmt.Errorf("check attachment: %w", err)
	}
	return attached, nil
}

type wordingRow interface {
	Scan(dest ...any) error
}

func scanWording(row wordingRow) (*models.Wording, error) {
	var w models.Wording
	if err := row.Scan(&w.Version, &w.VersionLabel, &w.Wording, &w.CreationDate); err != nil {
		return nil, err
	}
	return &w, nil
}
