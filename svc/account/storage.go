package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/pkgindex/pkg/pg"
)

// Storage persists accounts. Lookups return ErrNotFound for missing rows
// and Create returns ErrDuplicateIdentity for a taken email.
type Storage interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// DB is the subset of pgxpool.Pool the storage needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGStorage struct {
	db DB
}

func NewPGStorage(db DB) *PGStorage {
	return &PGStorage{db: db}
}

const userColumns = `id, name, email, password_hash, created_at, login_at, profile_image_url`

func (s *PGStorage) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *PGStorage) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *PGStorage) getOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.LoginAt, &u.ProfileImageURL,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// Create inserts user and fills its ID and CreatedAt.
func (s *PGStorage) Create(ctx context.Context, user *User) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, profile_image_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		user.Name, user.Email, user.PasswordHash, user.ProfileImageURL,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PGStorage) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET login_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update login_at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Storage = (*PGStorage)(nil)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
