package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/vturenko/brokerage-admin/internal/model"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, usernameFilter string) ([]*model.User, error)
	Update(ctx context.Context, id int64, patch map[string]interface{}) (*model.User, error)
	SetPassword(ctx context.Context, id int64, passwordHash string) error
	SetFrozen(ctx context.Context, id int64, frozen bool) error
	SetBroker(ctx context.Context, id int64, broker string) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db *Database
}

func NewUserRepository(db *Database) UserRepository {
	return &userRepository{db: db}
}

// Create relies on the unique index on username: a duplicate insert fails
// atomically with ErrUsernameTaken instead of a separate existence check.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, password_hash, balance, broker, is_frozen)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id, created_at`
	err := r.db.db.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Balance,
		user.Broker,
		user.IsFrozen,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `WHERE username = $1`, username)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, username, password_hash, balance, broker, is_frozen, created_at
              FROM users ` + where
	err := r.db.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Balance,
		&user.Broker,
		&user.IsFrozen,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, usernameFilter string) ([]*model.User, error) {
	query := `SELECT id, username, password_hash, balance, broker, is_frozen, created_at
              FROM users`
	args := []interface{}{}
	if usernameFilter != "" {
		query += ` WHERE username ILIKE '%' || $1 || '%'`
		args = append(args, usernameFilter)
	}

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.Balance,
			&u.Broker,
			&u.IsFrozen,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return users, nil
}

// Update applies a patch of already-validated column/value pairs and returns
// the updated row. Callers own the allow-list of columns.
func (r *userRepository) Update(ctx context.Context, id int64, patch map[string]interface{}) (*model.User, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("empty patch")
	}

	setClauses := make([]string, 0, len(patch))
	args := make([]interface{}, 0, len(patch)+1)
	for _, col := range []string{"username", "balance", "broker", "is_frozen"} {
		val, ok := patch[col]
		if !ok {
			continue
		}
		args = append(args, val)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no recognized columns in patch")
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d
              RETURNING id, username, password_hash, balance, broker, is_frozen, created_at`,
		strings.Join(setClauses, ", "), len(args))

	user := &model.User{}
	err := r.db.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Balance,
		&user.Broker,
		&user.IsFrozen,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (r *userRepository) SetPassword(ctx context.Context, id int64, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
}

func (r *userRepository) SetFrozen(ctx context.Context, id int64, frozen bool) error {
	return r.exec(ctx, `UPDATE users SET is_frozen = $1 WHERE id = $2`, frozen, id)
}

// SetBroker does not report a missing account: broker assignment is
// fire-and-forget in the admin UI.
func (r *userRepository) SetBroker(ctx context.Context, id int64, broker string) error {
	_, err := r.db.db.ExecContext(ctx, `UPDATE users SET broker = $1 WHERE id = $2`, broker, id)
	if err != nil {
		return fmt.Errorf("failed to assign broker: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *userRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
