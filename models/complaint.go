package models

import (
	"database/sql"
	"time"
)

// ComplaintStatus is the closed set of complaint lifecycle states. No other
// string is ever persisted; transitions happen only through the lifecycle
// service.
type ComplaintStatus string

const (
	StatusPending          ComplaintStatus = "pending"
	StatusForwarded        ComplaintStatus = "forwarded"
	StatusReplied          ComplaintStatus = "replied"
	StatusReverted         ComplaintStatus = "reverted"
	StatusAwaitingApproval ComplaintStatus = "awaiting_approval"
	StatusClosed           ComplaintStatus = "closed"
)

// AllStatuses lists every valid lifecycle state.
var AllStatuses = []ComplaintStatus{
	StatusPending,
	StatusForwarded,
	StatusReplied,
	StatusReverted,
	StatusAwaitingApproval,
	StatusClosed,
}

// IsValid reports whether s is one of the enumerated lifecycle states.
func (s ComplaintStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is the terminal state.
func (s ComplaintStatus) IsTerminal() bool {
	return s == StatusClosed
}

// Priority represents complaint priority levels
type Priority string

const (
	PriorityNormal   Priority = "normal"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParsePriority maps a free-form priority string to a Priority, defaulting
// to normal.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityMedium:
		return PriorityMedium
	case PriorityHigh:
		return PriorityHigh
	case PriorityCritical:
		return PriorityCritical
	default:
		return PriorityNormal
	}
}

// Department names are a fixed set; COMMERCIAL has exclusive authority over
// revert and approval.
const (
	DeptCommercial  = "COMMERCIAL"
	DeptOperating   = "OPERATING"
	DeptMechanical  = "MECHANICAL"
	DeptElectrical  = "ELECTRICAL"
	DeptEngineering = "ENGINEERING"
	DeptSecurity    = "SECURITY"
)

// Departments lists the departments complaints can be forwarded to.
var Departments = []string{
	DeptCommercial,
	DeptOperating,
	DeptMechanical,
	DeptElectrical,
	DeptEngineering,
	DeptSecurity,
}

// IsKnownDepartment reports whether name is in the allowed department set.
func IsKnownDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// Complaint represents a freight grievance ticket.
//
// Type/Subtype are denormalized free text copied from the category entry at
// submission time, not a foreign key. The taxonomy may evolve without
// migrating historical complaints; deleting a category entry never breaks
// existing rows.
type Complaint struct {
	ComplaintID     int64           `db:"complaint_id" json:"complaint_id"`
	ComplaintNumber string          `db:"complaint_number" json:"complaint_number"`
	CustomerID      int64           `db:"customer_id" json:"customer_id"`
	Type            string          `db:"type" json:"type"`
	Subtype         string          `db:"subtype" json:"subtype"`
	Category        string          `db:"category" json:"category"`
	Description     string          `db:"description" json:"description"`
	FNR             sql.NullString  `db:"fnr" json:"fnr"`
	ShedID          int64           `db:"shed_id" json:"shed_id"`
	Priority        Priority        `db:"priority" json:"priority"`
	Status          ComplaintStatus `db:"status" json:"status"`
	Department      string          `db:"department" json:"department"`
	AssignedUser    sql.NullString  `db:"assigned_user" json:"assigned_user"`
	RejectionReason sql.NullString  `db:"rejection_reason" json:"rejection_reason"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       sql.NullTime    `db:"updated_at" json:"updated_at"`
}

// LifecycleAction names a transition on the complaint state machine.
type LifecycleAction string

const (
	ActionSubmit         LifecycleAction = "submit"
	ActionForward        LifecycleAction = "forward"
	ActionReply          LifecycleAction = "reply"
	ActionClose          LifecycleAction = "close"
	ActionApprove        LifecycleAction = "approve"
	ActionRevert         LifecycleAction = "revert"
	ActionAdditionalInfo LifecycleAction = "additional_info"
	ActionFeedback       LifecycleAction = "feedback"
)

// ComplaintTransaction is an immutable history record appended on every
// lifecycle action.
type ComplaintTransaction struct {
	TransactionID  int64           `db:"transaction_id" json:"transaction_id"`
	ComplaintID    int64           `db:"complaint_id" json:"complaint_id"`
	Action         LifecycleAction `db:"action" json:"action"`
	FromStatus     sql.NullString  `db:"from_status" json:"from_status"`
	ToStatus       ComplaintStatus `db:"to_status" json:"to_status"`
	FromDepartment sql.NullString  `db:"from_department" json:"from_department"`
	ToDepartment   sql.NullString  `db:"to_department" json:"to_department"`
	ActorLoginID   string          `db:"actor_login_id" json:"actor_login_id"`
	Remarks        sql.NullString  `db:"remarks" json:"remarks"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Feedback records customer satisfaction for a replied complaint.
type Feedback struct {
	FeedbackID  int64          `db:"feedback_id" json:"feedback_id"`
	ComplaintID int64          `db:"complaint_id" json:"complaint_id"`
	CustomerID  int64          `db:"customer_id" json:"customer_id"`
	Rating      int            `db:"rating" json:"rating"`
	Remarks     sql.NullString `db:"remarks" json:"remarks"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// ComplaintSummary is the list-view projection of a complaint. Priority is
// suppressed for closed complaints.
type ComplaintSummary struct {
	ComplaintID     int64     `json:"complaint_id"`
	ComplaintNumber string    `json:"complaint_number"`
	Type            string    `json:"type"`
	Subtype         string    `json:"subtype"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority,omitempty"`
	Department      string    `json:"department"`
	CreatedAt       time.Time `json:"created_at"`
}

// DisplayPriority returns the priority shown in list views: blank once the
// complaint is closed.
func DisplayPriority(status ComplaintStatus, priority Priority) string {
	if status == StatusClosed {
		return ""
	}
	return string(priority)
}
