package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexus/internal/domain"
)

const userColumns = `id, username, password_hash, role, COALESCE(last_login_ip, ''), COALESCE(device_details, ''), last_login_at, created_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Role, user.CreatedAt,
	).Scan(&user.ID)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepo) SearchByUsername(ctx context.Context, fragment string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username ILIKE '%' || $1 || '%' ORDER BY username`
	return r.scanUsers(ctx, query, fragment)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.scanUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (r *UserRepo) Contacts(ctx context.Context, userID int64) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users WHERE id IN (
			SELECT recipient_id FROM messages WHERE sender_id = $1
			UNION
			SELECT sender_id FROM messages WHERE recipient_id = $1
		)
		ORDER BY username`
	return r.scanUsers(ctx, query, userID)
}

func (r *UserRepo) RecordLogin(ctx context.Context, id int64, ip, device string, at time.Time) error {
	query := `UPDATE users SET last_login_ip = $2, device_details = $3, last_login_at = $4 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, ip, device, at)
	return err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&u.LastLoginIP, &u.DeviceDetails, &u.LastLoginAt, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) scanUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.PasswordHash, &u.Role,
			&u.LastLoginIP, &u.DeviceDetails, &u.LastLoginAt, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
