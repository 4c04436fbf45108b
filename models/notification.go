package models

import (
	"database/sql"
	"time"
)

// NotificationType classifies a system notification.
type NotificationType string

const (
	NotificationLifecycle NotificationType = "lifecycle"
	NotificationBroadcast NotificationType = "broadcast"
	NotificationAccount   NotificationType = "account"
)

// NotificationPriority represents notification display priority.
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// Notification is a system notification owned by its recipient only.
type Notification struct {
	NotificationID int64                `db:"notification_id" json:"notification_id"`
	LoginID        string               `db:"login_id" json:"login_id"`
	Type           NotificationType     `db:"type" json:"type"`
	Title          string               `db:"title" json:"title"`
	Message        string               `db:"message" json:"message"`
	Priority       NotificationPriority `db:"priority" json:"priority"`
	IsRead         bool                 `db:"is_read" json:"is_read"`
	CreatedAt      time.Time            `db:"created_at" json:"created_at"`
}

// NotificationSegment selects the recipient set of a broadcast.
type NotificationSegment string

const (
	SegmentAll         NotificationSegment = "all"
	SegmentCustomers   NotificationSegment = "customers"
	SegmentControllers NotificationSegment = "controllers"
	SegmentDepartment  NotificationSegment = "department"
	SegmentUser        NotificationSegment = "user"
)

// EmailTemplate holds a reusable message template with {placeholder}
// tokens substituted at render time.
type EmailTemplate struct {
	ID        int64        `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Subject   string       `db:"subject" json:"subject"`
	Content   string       `db:"content" json:"content"`
	Category  string       `db:"category" json:"category"`
	IsDefault bool         `db:"is_default" json:"is_default"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at" json:"updated_at"`
}
