package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"assent/internal/identity"
	"assent/internal/platform/database"
	"assent/internal/profile/models"
)

// FieldCodec encrypts personal fields at the persistence boundary. The store
// never sees key material, only the codec. Satisfied by platform/crypto.Codec.
type FieldCodec interface {
	Encode(plaintext string) string
	Decode(ciphertext string) (string, error)
}

// Postgres persists users and consumer profiles in PostgreSQL. Personal
// fields (full name, email, phone, address) are stored encrypted through the
// injected codec; user names stay plaintext because ledger entries and
// logins look them up directly.
type Postgres struct {
	db    *sql.DB
	tx    *sql.Tx
	codec FieldCodec
}

// NewPostgres constructs a PostgreSQL-backed profile store.
func NewPostgres(db *sql.DB, codec FieldCodec) *Postgres {
	return &Postgres{db: db, codec: codec}
}

// NewPostgresTx constructs a PostgreSQL-backed profile store bound to a transaction.
func NewPostgresTx(tx *sql.Tx, codec FieldCodec) *Postgres {
	return &Postgres{tx: tx, codec: codec}
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

func (s *Postgres) InsertUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_name, role, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := s.execer().QueryRowContext(ctx, query, user.UserName, string(user.Role), user.PasswordHash).Scan(&user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrUserNameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Postgres) FindUserByName(ctx context.Context, userName string) (*models.User, error) {
	query := `
		SELECT id, user_name, role, password_hash
		FROM users
		WHERE user_name = $1
	`
	var u models.User
	var role string
	err := s.execer().QueryRowContext(ctx, query, userName).Scan(&u.ID, &u.UserName, &role, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Role = identity.Role(role)
	return &u, nil
}

func (s *Postgres) InsertProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO consumer_profiles (user_id, full_name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.execer().QueryRowContext(ctx, query,
		profile.UserID,
		s.codec.Encode(profile.FullName),
		s.codec.Encode(profile.Email),
		s.codec.Encode(profile.Phone),
		s.codec.Encode(profile.Address),
	).Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *Postgres) FindProfileByID(ctx context.Context, id int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, full_name, email, phone, address
		FROM consumer_profiles
		WHERE id = $1
	`
	return s.scanProfile(s.execer().QueryRowContext(ctx, query, id))
}

func (s *Postgres) FindProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, full_name, email, phone, address
		FROM consumer_profiles
		WHERE user_id = $1
	`
	return s.scanProfile(s.execer().QueryRowContext(ctx, query, userID))
}

func (s *Postgres) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE consumer_profiles
		SET full_name = $2, email = $3, phone = $4, address = $5
		WHERE id = $1
	`
	res, err := s.execer().ExecContext(ctx, query,
		profile.ID,
		s.codec.Encode(profile.FullName),
		s.codec.Encode(profile.Email),
		s.codec.Encode(profile.Phone),
		s.codec.Encode(profile.Address),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return requireRow(res, "update profile")
}

func (s *Postgres) DeleteProfile(ctx context.Context, id int64) error {
	res, err := s.execer().ExecContext(ctx, `DELETE FROM consumer_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return requireRow(res, "delete profile")
}

func (s *Postgres) scanProfile(row *sql.Row) (*models.Profile, error) {
	var p models.Profile
	var fullName, email, phone, address string
	if err := row.Scan(&p.ID, &p.UserID, &fullName, &email, &phone, &address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	var err error
	if p.FullName, err = s.codec.Decode(fullName); err != nil {
		return nil, fmt.Errorf("decode full name: %w", err)
	}
	if p.Email, err = s.codec.Decode(email); err != nil {
		return nil, fmt.Errorf("decode email: %w", err)
	}
	if p.Phone, err = s.codec.Decode(phone); err != nil {
		return nil, fmt.Errorf("decode phone: %w", err)
	}
	if p.Address, err = s.codec.Decode(address); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	return &p, nil
}

func requireRow(res sql.Result, op string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Store = (*Postgres)(nil)
