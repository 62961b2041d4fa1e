package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vturenko/brokerage-admin/internal/model"
)

var ErrAccountFrozen = errors.New("account is frozen")

type TransactionRepository interface {
	CreateIfActive(ctx context.Context, txn *model.Transaction) error
	List(ctx context.Context, userID *int64) ([]*model.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type transactionRepository struct {
	db *Database
}

func NewTransactionRepository(db *Database) TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateIfActive inserts the transaction only if the referenced user exists
// and is not frozen, in a single statement. The frozen check and the insert
// are not separate round trips, so no window exists for the flag to change
// between them.
func (r *transactionRepository) CreateIfActive(ctx context.Context, txn *model.Transaction) error {
	query := `INSERT INTO transactions (user_id, type, amount, description)
              SELECT u.id, $2, $3, $4 FROM users u
              WHERE u.id = $1 AND NOT u.is_frozen
              RETURNING id, created_at`
	err := r.db.db.QueryRowContext(ctx, query,
		txn.UserID,
		txn.Type,
		txn.Amount,
		txn.Description,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err == nil {
		txn.CreatedAt = txn.CreatedAt.UTC()
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// Nothing inserted: tell a frozen account apart from a missing one.
	var exists bool
	checkErr := r.db.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, txn.UserID).Scan(&exists)
	if checkErr != nil {
		return fmt.Errorf("failed to check user: %w", checkErr)
	}
	if exists {
		return ErrAccountFrozen
	}
	return ErrUserNotFound
}

func (r *transactionRepository) List(ctx context.Context, userID *int64) ([]*model.Transaction, error) {
	query := `SELECT id, user_id, type, amount, description, created_at
              FROM transactions`
	args := []interface{}{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*model.Transaction
	for rows.Next() {
		var t model.Transaction
		var description sql.NullString
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Type,
			&t.Amount,
			&description,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if description.Valid {
			t.Description = description.String
		}
		t.CreatedAt = t.CreatedAt.UTC()
		txns = append(txns, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return txns, nil
}

func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
