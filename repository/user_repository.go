package repository

import (
	"database/sql"
	"fmt"

	"railcare/apperrors"
	"railcare/models"
)

// UserRepository handles database operations for portal accounts and
// customer profiles.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `login_id, name, email, mobile, password_hash, role, department, status, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.LoginID,
		&u.Name,
		&u.Email,
		&u.Mobile,
		&u.PasswordHash,
		&u.Role,
		&u.Department,
		&u.Status,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a login id is taken.
func (r *UserRepository) Exists(loginID string) (bool, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE login_id = ?`, loginID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new account row.
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (login_id, name, email, mobile, password_hash, role, department, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(
		query,
		user.LoginID,
		user.Name,
		user.Email,
		user.Mobile,
		user.PasswordHash,
		user.Role,
		user.Department,
		user.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByLoginID retrieves one account.
func (r *UserRepository) GetByLoginID(loginID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_id = ?`

	user, err := scanUser(r.db.QueryRow(query, loginID))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("user", loginID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Update applies partial changes to an account.
func (r *UserRepository) Update(user *models.User) error {
	query := `
		UPDATE users
		SET name = ?, email = ?, mobile = ?, role = ?, department = ?, status = ?
		WHERE login_id = ?
	`

	result, err := r.db.Exec(
		query,
		user.Name,
		user.Email,
		user.Mobile,
		user.Role,
		user.Department,
		user.Status,
		user.LoginID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("user", user.LoginID)
	}
	return nil
}

// ListByRole retrieves active accounts of one role.
func (r *UserRepository) ListByRole(role models.Role) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ? AND status = 'active' ORDER BY login_id`
	return r.queryUsers(query, role)
}

// ListStaff retrieves all staff accounts (admin, controller, viewer).
func (r *UserRepository) ListStaff() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role IN ('admin', 'controller', 'viewer') ORDER BY login_id`
	return r.queryUsers(query)
}

// ListActiveByDepartment retrieves active staff of one department.
func (r *UserRepository) ListActiveByDepartment(department string) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE department = ? AND status = 'active' AND role IN ('admin', 'controller', 'viewer')
		ORDER BY login_id
	`
	return r.queryUsers(query, department)
}

// ListAllActive retrieves every active account.
func (r *UserRepository) ListAllActive() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = 'active' ORDER BY login_id`
	return r.queryUsers(query)
}

func (r *UserRepository) queryUsers(query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// CreateCustomer inserts the customer profile linked to a customer account.
func (r *UserRepository) CreateCustomer(customer *models.Customer) error {
	query := `
		INSERT INTO customers (login_id, name, company_name, email, mobile)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(
		query,
		customer.LoginID,
		customer.Name,
		customer.CompanyName,
		customer.Email,
		customer.Mobile,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get customer ID: %w", err)
	}

	customer.CustomerID = id
	return nil
}

// GetCustomerByID retrieves a customer profile by its numeric id.
func (r *UserRepository) GetCustomerByID(customerID int64) (*models.Customer, error) {
	query := `
		SELECT customer_id, login_id, name, company_name, email, mobile, created_at
		FROM customers
		WHERE customer_id = ?
	`

	var c models.Customer
	err := r.db.QueryRow(query, customerID).Scan(
		&c.CustomerID,
		&c.LoginID,
		&c.Name,
		&c.CompanyName,
		&c.Email,
		&c.Mobile,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("customer", fmt.Sprintf("%d", customerID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

// GetCustomerByLoginID retrieves the customer profile of an account.
func (r *UserRepository) GetCustomerByLoginID(loginID string) (*models.Customer, error) {
	query := `
		SELECT customer_id, login_id, name, company_name, email, mobile, created_at
		FROM customers
		WHERE login_id = ?
	`

	var c models.Customer
	err := r.db.QueryRow(query, loginID).Scan(
		&c.CustomerID,
		&c.LoginID,
		&c.Name,
		&c.CompanyName,
		&c.Email,
		&c.Mobile,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("customer", loginID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}
