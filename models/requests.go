package models

import "time"

// CreateComplaintRequest is the customer submission payload.
type CreateComplaintRequest struct {
	Type        string  `json:"type"`
	Subtype     string  `json:"subtype"`
	Description string  `json:"description"`
	ShedID      int64   `json:"shed_id"`
	FNR         *string `json:"fnr,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// CreateComplaintResponse confirms a submission.
type CreateComplaintResponse struct {
	ComplaintID     int64  `json:"complaint_id"`
	ComplaintNumber string `json:"complaint_number"`
	Status          string `json:"status"`
	Department      string `json:"department"`
	Message         string `json:"message"`
}

// ForwardRequest hands a complaint to another department.
type ForwardRequest struct {
	ToDepartment string  `json:"to_department"`
	ToUser       *string `json:"to_user,omitempty"`
	Remarks      string  `json:"remarks"`
}

// CloseRequest sends a complaint for commercial approval.
type CloseRequest struct {
	ActionTaken string `json:"action_taken"`
	Remarks     string `json:"remarks"`
}

// RevertRequest returns a complaint to the customer with a reason.
type RevertRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// ReplyRequest records a department reply to the customer.
type ReplyRequest struct {
	Reply string `json:"reply"`
}

// AdditionalInfoRequest supplies customer info on a reverted complaint.
type AdditionalInfoRequest struct {
	Text string `json:"text"`
}

// FeedbackRequest records satisfaction for a replied complaint.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Remarks string `json:"remarks"`
}

// TransitionResponse reports the outcome of a lifecycle action.
type TransitionResponse struct {
	ComplaintID     int64  `json:"complaint_id"`
	ComplaintNumber string `json:"complaint_number"`
	OldStatus       string `json:"old_status"`
	NewStatus       string `json:"new_status"`
	Message         string `json:"message"`
}

// CategoryRequest creates or replaces a category triple.
type CategoryRequest struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	SubType  string `json:"subtype"`
}

// RegisterRequest creates a customer account.
type RegisterRequest struct {
	LoginID     string `json:"login_id"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Password    string `json:"password"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token   string `json:"token"`
	LoginID string `json:"login_id"`
	Role    string `json:"role"`
}

// CreateUserRequest creates a staff account (admin only).
type CreateUserRequest struct {
	LoginID    string `json:"login_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// UpdateUserRequest updates a staff account (admin only).
type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Mobile     *string `json:"mobile,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// BroadcastRequest fans a notification out to a segment.
type BroadcastRequest struct {
	Segment    string `json:"segment"`
	Department string `json:"department,omitempty"`
	LoginID    string `json:"login_id,omitempty"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
}

// BroadcastResponse reports fan-out results.
type BroadcastResponse struct {
	Requested int    `json:"requested"`
	Sent      int    `json:"sent"`
	Message   string `json:"message"`
}

// EmailTemplateRequest creates or updates a template.
type EmailTemplateRequest struct {
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	IsDefault bool   `json:"is_default"`
}

// BulkEmailRequest renders a template for a recipient segment.
type BulkEmailRequest struct {
	TemplateID int64  `json:"template_id"`
	Segment    string `json:"segment"`
	Department string `json:"department,omitempty"`
	LoginID    string `json:"login_id,omitempty"`
}

// TimelineEntry is one step of a complaint's transaction history.
type TimelineEntry struct {
	TransactionID  int64     `json:"transaction_id"`
	Action         string    `json:"action"`
	FromStatus     *string   `json:"from_status,omitempty"`
	ToStatus       string    `json:"to_status"`
	FromDepartment *string   `json:"from_department,omitempty"`
	ToDepartment   *string   `json:"to_department,omitempty"`
	ActorLoginID   string    `json:"actor_login_id"`
	Remarks        *string   `json:"remarks,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ErrorResponse is the error body returned by every handler.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
