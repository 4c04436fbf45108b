package repository

import (
	"database/sql"
	"fmt"

	"railcare/apperrors"
	"railcare/models"
)

// NotificationRepository handles database operations for notifications.
// Notifications are owned by their recipient only.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts one notification row.
func (r *NotificationRepository) Create(n *models.Notification) error {
	query := `
		INSERT INTO notifications (login_id, type, title, message, priority, is_read)
		VALUES (?, ?, ?, ?, ?, FALSE)
	`

	result, err := r.db.Exec(query, n.LoginID, n.Type, n.Title, n.Message, n.Priority)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get notification ID: %w", err)
	}

	n.NotificationID = id
	return nil
}

// ListByRecipient retrieves a recipient's notifications, newest first.
func (r *NotificationRepository) ListByRecipient(loginID string) ([]models.Notification, error) {
	query := `
		SELECT notification_id, login_id, type, title, message, priority, is_read, created_at
		FROM notifications
		WHERE login_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, loginID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.NotificationID,
			&n.LoginID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.Priority,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

// MarkAsRead flips is_read for one notification. The update is scoped to
// the recipient, so a notification owned by someone else reads as missing.
// Idempotent: marking an already-read notification changes nothing.
func (r *NotificationRepository) MarkAsRead(notificationID int64, loginID string) error {
	result, err := r.db.Exec(
		`UPDATE notifications SET is_read = TRUE WHERE notification_id = ? AND login_id = ?`,
		notificationID, loginID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("notification", fmt.Sprintf("%d", notificationID))
	}
	return nil
}

// MarkAllAsRead flips is_read for every notification of a recipient.
// Idempotent.
func (r *NotificationRepository) MarkAllAsRead(loginID string) error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = TRUE WHERE login_id = ? AND is_read = FALSE`, loginID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// DeleteOlderThan removes notifications older than retentionDays,
// regardless of read state. Returns the number of rows deleted.
func (r *NotificationRepository) DeleteOlderThan(retentionDays int) (int64, error) {
	result, err := r.db.Exec(
		`DELETE FROM notifications WHERE created_at < DATE_SUB(NOW(), INTERVAL ? DAY)`,
		retentionDays,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return deleted, nil
}
