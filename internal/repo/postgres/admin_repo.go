package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

// AdminRepo covers operator accounts and their opaque server-side sessions.
type AdminRepo interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	FindUserByID(ctx context.Context, id int64) (*domain.AdminUser, error)

	CreateSession(ctx context.Context, token string, adminID int64, expiresAt time.Time) error
	// GetSession returns nil for unknown or expired tokens.
	GetSession(ctx context.Context, token string) (*domain.AdminSession, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type AdminRepoImpl struct{ pool *pgxpool.Pool }

func NewAdminRepo(pool *pgxpool.Pool) *AdminRepoImpl { return &AdminRepoImpl{pool: pool} }

func (r *AdminRepoImpl) FindUserByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	const q = `SELECT id, email, name, password_hash, created_at
FROM admin_users WHERE lower(email) = lower($1)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.AdminUser
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepoImpl) FindUserByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	const q = `SELECT id, email, name, password_hash, created_at FROM admin_users WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.AdminUser
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepoImpl) CreateSession(ctx context.Context, token string, adminID int64, expiresAt time.Time) error {
	const q = `INSERT INTO admin_sessions (token, admin_id, expires_at) VALUES ($1,$2,$3)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, token, adminID, expiresAt)
	return err
}

func (r *AdminRepoImpl) GetSession(ctx context.Context, token string) (*domain.AdminSession, error) {
	const q = `SELECT token, admin_id, expires_at, created_at
FROM admin_sessions WHERE token = $1 AND expires_at > now()`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.AdminSession
	err := r.pool.QueryRow(ctx, q, token).Scan(&s.Token, &s.AdminID, &s.ExpiresAt, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AdminRepoImpl) DeleteSession(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE token = $1`, token)
	return err
}

func (r *AdminRepoImpl) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

var _ AdminRepo = (*AdminRepoImpl)(nil)
