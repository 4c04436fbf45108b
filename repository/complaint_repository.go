package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"railcare/apperrors"
	"railcare/models"
)

// ComplaintRepository handles database operations for complaints and their
// transaction history.
type ComplaintRepository struct {
	db *sql.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// GenerateComplaintNumber generates a unique public complaint reference.
// Format: GRV-YYYYMMDD-{short uuid}
func (r *ComplaintRepository) GenerateComplaintNumber() string {
	datePrefix := time.Now().UTC().Format("20060102")
	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("GRV-%s-%s", datePrefix, uniqueID)
}

const complaintColumns = `
	complaint_id, complaint_number, customer_id, type, subtype, category,
	description, fnr, shed_id, priority, status, department, assigned_user,
	rejection_reason, created_at, updated_at`

func scanComplaint(row interface{ Scan(...interface{}) error }) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(
		&c.ComplaintID,
		&c.ComplaintNumber,
		&c.CustomerID,
		&c.Type,
		&c.Subtype,
		&c.Category,
		&c.Description,
		&c.FNR,
		&c.ShedID,
		&c.Priority,
		&c.Status,
		&c.Department,
		&c.AssignedUser,
		&c.RejectionReason,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new complaint row and fills in the generated id.
func (r *ComplaintRepository) Create(complaint *models.Complaint) error {
	query := `
		INSERT INTO complaints (
			complaint_number, customer_id, type, subtype, category,
			description, fnr, shed_id, priority, status, department, assigned_user
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(
		query,
		complaint.ComplaintNumber,
		complaint.CustomerID,
		complaint.Type,
		complaint.Subtype,
		complaint.Category,
		complaint.Description,
		complaint.FNR,
		complaint.ShedID,
		complaint.Priority,
		complaint.Status,
		complaint.Department,
		complaint.AssignedUser,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	complaintID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get complaint ID: %w", err)
	}

	complaint.ComplaintID = complaintID
	return nil
}

// GetByID retrieves a complaint by its internal id.
func (r *ComplaintRepository) GetByID(complaintID int64) (*models.Complaint, error) {
	query := `SELECT` + complaintColumns + `
		FROM complaints
		WHERE complaint_id = ?`

	complaint, err := scanComplaint(r.db.QueryRow(query, complaintID))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("complaint", fmt.Sprintf("%d", complaintID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return complaint, nil
}

// GetByNumber retrieves a complaint by its public reference number.
func (r *ComplaintRepository) GetByNumber(complaintNumber string) (*models.Complaint, error) {
	query := `SELECT` + complaintColumns + `
		FROM complaints
		WHERE complaint_number = ?`

	complaint, err := scanComplaint(r.db.QueryRow(query, complaintNumber))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("complaint", complaintNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return complaint, nil
}

// ListByCustomer retrieves all complaints of one customer, newest first.
func (r *ComplaintRepository) ListByCustomer(customerID int64) ([]models.Complaint, error) {
	query := `SELECT` + complaintColumns + `
		FROM complaints
		WHERE customer_id = ?
		ORDER BY created_at DESC`

	return r.queryComplaints(query, customerID)
}

// ListByDepartment retrieves all complaints currently owned by a department,
// newest first.
func (r *ComplaintRepository) ListByDepartment(department string) ([]models.Complaint, error) {
	query := `SELECT` + complaintColumns + `
		FROM complaints
		WHERE department = ?
		ORDER BY created_at DESC`

	return r.queryComplaints(query, department)
}

// ListAll retrieves every complaint, newest first. Staff triage view.
func (r *ComplaintRepository) ListAll() ([]models.Complaint, error) {
	query := `SELECT` + complaintColumns + `
		FROM complaints
		ORDER BY created_at DESC`

	return r.queryComplaints(query)
}

func (r *ComplaintRepository) queryComplaints(query string, args ...interface{}) ([]models.Complaint, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaints: %w", err)
	}
	return complaints, nil
}

// UpdateTransition applies a lifecycle transition as one single-row update.
// Department, assigned user and rejection reason travel with the status so
// a transition never leaves partial state behind.
func (r *ComplaintRepository) UpdateTransition(
	complaintID int64,
	newStatus models.ComplaintStatus,
	department string,
	assignedUser sql.NullString,
	rejectionReason sql.NullString,
) error {
	query := `
		UPDATE complaints
		SET status = ?,
			department = ?,
			assigned_user = ?,
			rejection_reason = ?,
			updated_at = NOW()
		WHERE complaint_id = ?
	`

	_, err := r.db.Exec(query, newStatus, department, assignedUser, rejectionReason, complaintID)
	if err != nil {
		return fmt.Errorf("failed to update complaint status: %w", err)
	}
	return nil
}

// AppendTransaction appends an immutable history record.
func (r *ComplaintRepository) AppendTransaction(tx *models.ComplaintTransaction) error {
	query := `
		INSERT INTO complaint_transactions (
			complaint_id, action, from_status, to_status,
			from_department, to_department, actor_login_id, remarks
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(
		query,
		tx.ComplaintID,
		tx.Action,
		tx.FromStatus,
		tx.ToStatus,
		tx.FromDepartment,
		tx.ToDepartment,
		tx.ActorLoginID,
		tx.Remarks,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	txID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transaction ID: %w", err)
	}

	tx.TransactionID = txID
	return nil
}

// GetTransactions retrieves the transaction history of a complaint, newest
// first.
func (r *ComplaintRepository) GetTransactions(complaintID int64) ([]models.ComplaintTransaction, error) {
	query := `
		SELECT
			transaction_id, complaint_id, action, from_status, to_status,
			from_department, to_department, actor_login_id, remarks, created_at
		FROM complaint_transactions
		WHERE complaint_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var history []models.ComplaintTransaction
	for rows.Next() {
		var tx models.ComplaintTransaction
		err := rows.Scan(
			&tx.TransactionID,
			&tx.ComplaintID,
			&tx.Action,
			&tx.FromStatus,
			&tx.ToStatus,
			&tx.FromDepartment,
			&tx.ToDepartment,
			&tx.ActorLoginID,
			&tx.Remarks,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		history = append(history, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return history, nil
}

// CreateFeedback records customer satisfaction for a complaint.
func (r *ComplaintRepository) CreateFeedback(fb *models.Feedback) error {
	query := `
		INSERT INTO complaint_feedback (complaint_id, customer_id, rating, remarks)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, fb.ComplaintID, fb.CustomerID, fb.Rating, fb.Remarks)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get feedback ID: %w", err)
	}

	fb.FeedbackID = id
	return nil
}
