package models

import (
	"database/sql"
	"time"
)

// Role represents the portal role of a user account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleController Role = "controller"
	RoleViewer     Role = "viewer"
	RoleCustomer   Role = "customer"
)

// IsStaff reports whether the role belongs to railway staff rather than a
// customer account.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleController || r == RoleViewer
}

// UserStatus is the account status.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserDisabled UserStatus = "disabled"
)

// User represents a portal account (staff or customer).
type User struct {
	LoginID      string         `db:"login_id" json:"login_id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	Mobile       sql.NullString `db:"mobile" json:"mobile"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         Role           `db:"role" json:"role"`
	Department   sql.NullString `db:"department" json:"department"`
	Status       UserStatus     `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// Customer holds the customer profile linked to a customer-role user.
type Customer struct {
	CustomerID  int64          `db:"customer_id" json:"customer_id"`
	LoginID     string         `db:"login_id" json:"login_id"`
	Name        string         `db:"name" json:"name"`
	CompanyName sql.NullString `db:"company_name" json:"company_name"`
	Email       string         `db:"email" json:"email"`
	Mobile      sql.NullString `db:"mobile" json:"mobile"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Actor is the request-scoped identity set by the auth middleware and
// passed explicitly to every service call. There is no process-wide
// session state.
type Actor struct {
	LoginID    string `json:"login_id"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	CustomerID int64  `json:"customer_id,omitempty"`
}
