package admin

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studyhall/studyhall/internal/platform/db"
	"github.com/studyhall/studyhall/internal/platform/httpx"
	"github.com/studyhall/studyhall/internal/shared"
)

// Repository defines persistence operations for the admin account.
type Repository interface {
	CreateAdmin(ctx context.Context, admin Admin) (int64, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id int64) (*Admin, error)
	CreateSession(ctx context.Context, id string, accountID int64, expiresAt time.Time, ip, ua string) error
	DeleteSession(ctx context.Context, id string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CreateAdmin inserts the admin account. The insert and the
// single-admin check are one statement, so two concurrent registrations
// cannot both succeed.
func (r *PGRepository) CreateAdmin(ctx context.Context, admin Admin) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO admins (username, email, password_hash)
			 SELECT $1, $2, $3
			 WHERE NOT EXISTS (SELECT 1 FROM admins)
			 RETURNING id`,
			admin.Username, admin.Email, admin.PasswordHash,
		).Scan(&id)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAlreadyRegistered
		}
		return 0, err
	}
	return id, nil
}

// FindByEmail fetches the admin by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM admins WHERE email = $1`, email)
	return scanAdmin(row)
}

// FindByID fetches the admin by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Admin, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

// CreateSession records an issued admin session for auditing.
func (r *PGRepository) CreateSession(ctx context.Context, id string, accountID int64, expiresAt time.Time, ip, ua string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (id, account_id, role, created_at, expires_at, ip, ua)
		 VALUES ($1, $2, $3, now(), $4, $5, $6)`,
		id, accountID, shared.RoleAdmin, expiresAt.UTC(), ip, ua)
	return err
}

// DeleteSession removes a session audit record.
func (r *PGRepository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func scanAdmin(row pgx.Row) (*Admin, error) {
	var admin Admin
	err := row.Scan(&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

var _ Repository = (*PGRepository)(nil)
