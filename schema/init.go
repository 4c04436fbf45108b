// Package schema: safe database initialization — create only missing tables, never drop or overwrite.

package schema

import (
	"database/sql"

	"go.uber.org/zap"

	"railcare/utils"
)

const (
	tableUsers                 = "users"
	tableCustomers             = "customers"
	tableComplaints            = "complaints"
	tableComplaintTransactions = "complaint_transactions"
	tableComplaintFeedback     = "complaint_feedback"
	tableCategoryEntries       = "category_entries"
	tableNotifications         = "notifications"
	tableEmailTemplates        = "email_templates"
)

// InitializeDatabase ensures core tables exist. Checks INFORMATION_SCHEMA.TABLES;
// creates only missing tables in dependency order. Does not drop or recreate
// tables; does not remove data. Seeds a default admin account the first time
// the users table is created.
func InitializeDatabase(db *sql.DB, log *zap.SugaredLogger) {
	usersCreated := false

	if exists, err := tableExists(db, tableUsers); err != nil {
		log.Fatalf("failed to check if table %s exists: %v", tableUsers, err)
	} else if exists {
		log.Debugf("%s table exists", tableUsers)
	} else {
		createTable(db, log, tableUsers, createUsersTable)
		usersCreated = true
	}

	if exists, err := tableExists(db, tableCustomers); err != nil {
		log.Fatalf("failed to check if table %s exists: %v", tableCustomers, err)
	} else if !exists {
		createTable(db, log, tableCustomers, createCustomersTable)
	}

	if exists, err := tableExists(db, tableComplaints); err != nil {
		log.Fatalf("failed to check if table %s exists: %v", tableComplaints, err)
	} else if !exists {
		createTable(db, log, tableComplaints, createComplaintsTable)
	}

	if exists, err := tableExists(db, tableComplaintTransactions); err != nil {
		log.Fatalf("failed to check if table %s exists: %v", tableComplaintTransactions, err)
	} else if !exists {
		createTable(db, log, tableComplaintTransactions, createComplaintTransactionsTable)
	}

	if exists, err := tableExists(db, tableComplaintFeedback); err != nil {
		log.Fatalf("failed to check if table %s exists: %v", tableComplaintFeedback, err)
	} else if !exists {
		createTable(db, log, tableComplaintFeedback, createComplaintFeedbackTable)
	}

	if exists, err := tableExists(db, tableCategoryEntries); err != nil {
		log.Fatalf("failed to check if table %s exists: %v", tableCategoryEntries, err)
	} else if !exists {
		createTable(db, log, tableCategoryEntries, createCategoryEntriesTable)
	}

	if exists, err := tableExists(db, tableNotifications); err != nil {
		log.Fatalf("failed to check if table %s exists: %v", tableNotifications, err)
	} else if !exists {
		createTable(db, log, tableNotifications, createNotificationsTable)
	}

	if exists, err := tableExists(db, tableEmailTemplates); err != nil {
		log.Fatalf("failed to check if table %s exists: %v", tableEmailTemplates, err)
	} else if !exists {
		createTable(db, log, tableEmailTemplates, createEmailTemplatesTable)
	}

	if usersCreated {
		seedDefaultAdmin(db, log)
	}
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
	`
	if err := db.QueryRow(query, table).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func createTable(db *sql.DB, log *zap.SugaredLogger, name, ddl string) {
	if _, err := db.Exec(ddl); err != nil {
		log.Fatalf("failed to create table %s: %v", name, err)
	}
	log.Infof("created %s table", name)
}

// seedDefaultAdmin creates the bootstrap admin account. The password must be
// changed after first login.
func seedDefaultAdmin(db *sql.DB, log *zap.SugaredLogger) {
	hash, err := utils.HashPassword("admin@123")
	if err != nil {
		log.Fatalf("failed to hash default admin password: %v", err)
	}

	query := `
		INSERT INTO users (login_id, name, email, mobile, password_hash, role, department, status)
		VALUES ('admin', 'Administrator', 'admin@railcare.local', '', ?, 'admin', 'COMMERCIAL', 'active')
	`
	if _, err := db.Exec(query, hash); err != nil {
		log.Fatalf("failed to seed default admin: %v", err)
	}
	log.Info("seeded default admin account (login_id: admin)")
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    login_id VARCHAR(50) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    mobile VARCHAR(15) NOT NULL DEFAULT '',
    password_hash VARCHAR(255) NOT NULL,
    role ENUM('admin', 'controller', 'viewer', 'customer') NOT NULL,
    department VARCHAR(50) NOT NULL DEFAULT '',
    status ENUM('active', 'disabled') NOT NULL DEFAULT 'active',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_users_role (role),
    INDEX idx_users_department (department)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createCustomersTable = `
CREATE TABLE IF NOT EXISTS customers (
    customer_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    login_id VARCHAR(50) UNIQUE NOT NULL,
    name VARCHAR(255) NOT NULL,
    company_name VARCHAR(255) NOT NULL DEFAULT '',
    email VARCHAR(255) NOT NULL,
    mobile VARCHAR(15) NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_customers_login (login_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createComplaintsTable = `
CREATE TABLE IF NOT EXISTS complaints (
    complaint_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_number VARCHAR(50) UNIQUE NOT NULL,
    customer_id BIGINT NOT NULL,
    type VARCHAR(100) NOT NULL,
    subtype VARCHAR(100) NOT NULL,
    category VARCHAR(100) NOT NULL DEFAULT '',
    description TEXT NOT NULL,
    fnr VARCHAR(50) NULL,
    shed_id BIGINT NOT NULL,
    priority ENUM('normal', 'medium', 'high', 'critical') NOT NULL DEFAULT 'normal',
    status ENUM('pending', 'forwarded', 'replied', 'reverted', 'awaiting_approval', 'closed') NOT NULL DEFAULT 'pending',
    department VARCHAR(50) NOT NULL,
    assigned_user VARCHAR(50) NULL,
    rejection_reason TEXT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL,
    INDEX idx_complaints_customer (customer_id),
    INDEX idx_complaints_status (status),
    INDEX idx_complaints_department (department),
    INDEX idx_complaints_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createComplaintTransactionsTable = `
CREATE TABLE IF NOT EXISTS complaint_transactions (
    transaction_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_id BIGINT NOT NULL,
    action VARCHAR(50) NOT NULL,
    from_status VARCHAR(50) NOT NULL,
    to_status VARCHAR(50) NOT NULL,
    from_department VARCHAR(50) NOT NULL DEFAULT '',
    to_department VARCHAR(50) NOT NULL DEFAULT '',
    actor_login_id VARCHAR(50) NOT NULL,
    remarks TEXT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_transactions_complaint (complaint_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createComplaintFeedbackTable = `
CREATE TABLE IF NOT EXISTS complaint_feedback (
    feedback_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_id BIGINT NOT NULL,
    customer_id BIGINT NOT NULL,
    rating INT NOT NULL,
    remarks TEXT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_feedback_complaint (complaint_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createCategoryEntriesTable = `
CREATE TABLE IF NOT EXISTS category_entries (
    category_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    category VARCHAR(100) NOT NULL,
    type VARCHAR(100) NOT NULL,
    subtype VARCHAR(100) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE KEY uq_category_triple (category, type, subtype)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
    notification_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    login_id VARCHAR(50) NOT NULL,
    type VARCHAR(50) NOT NULL,
    title VARCHAR(255) NOT NULL,
    message TEXT NOT NULL,
    priority VARCHAR(20) NOT NULL DEFAULT 'normal',
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_notifications_recipient (login_id, is_read),
    INDEX idx_notifications_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createEmailTemplatesTable = `
CREATE TABLE IF NOT EXISTS email_templates (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(255) NOT NULL,
    subject VARCHAR(255) NOT NULL,
    content TEXT NOT NULL,
    category VARCHAR(100) NOT NULL,
    is_default BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL,
    INDEX idx_templates_category (category)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
