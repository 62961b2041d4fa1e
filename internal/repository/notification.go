package repository

import (
	"context"
	"fmt"

	"github.com/vturenko/brokerage-admin/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error)
}

type notificationRepository struct {
	db *Database
}

func NewNotificationRepository(db *Database) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `INSERT INTO notifications (user_id, message)
              VALUES ($1, $2)
              RETURNING id, is_read, created_at`
	err := r.db.db.QueryRowContext(ctx, query, n.UserID, n.Message).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	n.CreatedAt = n.CreatedAt.UTC()
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error) {
	query := `SELECT id, user_id, message, is_read, created_at
              FROM notifications
              WHERE user_id = $1
              ORDER BY created_at DESC`
	rows, err := r.db.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.CreatedAt = n.CreatedAt.UTC()
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return notifications, nil
}
