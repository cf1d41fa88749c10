package database

import (
	"context"
	"fmt"
	"time"

	"huonganh/internal/models"

	sq "github.com/Masterminds/squirrel"
)

func (db *DB) CreateNotification(ctx context.Context, n *models.Notification) error {
	now := time.Now()
	result, err := db.db.ExecContext(ctx, `
        INSERT INTO notifications (type, content, booking_id, read, created_at)
        VALUES (?, ?, ?, 0, ?)`,
		n.Type, n.Content, n.BookingID, now)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = id
	n.CreatedAt = now
	return nil
}

// NotificationFilter narrows ListNotifications. UnreadOnly filters to
// read = false; Limit of 0 means no limit.
type NotificationFilter struct {
	UnreadOnly bool
	Limit      uint64
}

func (db *DB) ListNotifications(ctx context.Context, filter NotificationFilter) ([]models.Notification, error) {
	builder := db.sq.
		Select("id, type, content, booking_id, read, created_at").
		From("notifications").
		OrderBy("created_at DESC")

	if filter.UnreadOnly {
		builder = builder.Where(sq.Eq{"read": false})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notifications query: %w", err)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Content, &n.BookingID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (db *DB) MarkNotificationRead(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return checkAffected(result)
}

func (db *DB) CountUnreadNotifications(ctx context.Context) (int, error) {
	var n int
	err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}
