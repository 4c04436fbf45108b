package repository

import (
	"database/sql"
	"fmt"

	"railcare/apperrors"
	"railcare/models"
)

// EmailTemplateRepository handles database operations for email templates.
type EmailTemplateRepository struct {
	db *sql.DB
}

// NewEmailTemplateRepository creates a new email template repository
func NewEmailTemplateRepository(db *sql.DB) *EmailTemplateRepository {
	return &EmailTemplateRepository{db: db}
}

const templateColumns = `id, name, subject, content, category, is_default, created_at, updated_at`

// Create inserts a template. When is_default is set, the previous default
// of the same category is cleared first so at most one default exists per
// category.
func (r *EmailTemplateRepository) Create(t *models.EmailTemplate) error {
	if t.IsDefault {
		if err := r.clearDefault(t.Category); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO email_templates (name, subject, content, category, is_default)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, t.Name, t.Subject, t.Content, t.Category, t.IsDefault)
	if err != nil {
		return fmt.Errorf("failed to create email template: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get template ID: %w", err)
	}

	t.ID = id
	return nil
}

// Update replaces a template's fields, keeping the one-default-per-category
// rule.
func (r *EmailTemplateRepository) Update(t *models.EmailTemplate) error {
	if t.IsDefault {
		if err := r.clearDefault(t.Category); err != nil {
			return err
		}
	}

	query := `
		UPDATE email_templates
		SET name = ?, subject = ?, content = ?, category = ?, is_default = ?, updated_at = NOW()
		WHERE id = ?
	`

	result, err := r.db.Exec(query, t.Name, t.Subject, t.Content, t.Category, t.IsDefault, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update email template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("email_template", fmt.Sprintf("%d", t.ID))
	}
	return nil
}

func (r *EmailTemplateRepository) clearDefault(category string) error {
	_, err := r.db.Exec(`UPDATE email_templates SET is_default = FALSE WHERE category = ? AND is_default = TRUE`, category)
	if err != nil {
		return fmt.Errorf("failed to clear default template: %w", err)
	}
	return nil
}

// Delete removes a template.
func (r *EmailTemplateRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM email_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete email template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("email_template", fmt.Sprintf("%d", id))
	}
	return nil
}

// GetByID retrieves one template.
func (r *EmailTemplateRepository) GetByID(id int64) (*models.EmailTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM email_templates WHERE id = ?`

	var t models.EmailTemplate
	err := r.db.QueryRow(query, id).Scan(
		&t.ID, &t.Name, &t.Subject, &t.Content, &t.Category, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("email_template", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email template: %w", err)
	}
	return &t, nil
}

// ListAll retrieves every template.
func (r *EmailTemplateRepository) ListAll() ([]models.EmailTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM email_templates ORDER BY category, name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query email templates: %w", err)
	}
	defer rows.Close()

	var templates []models.EmailTemplate
	for rows.Next() {
		var t models.EmailTemplate
		err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Content, &t.Category, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email template: %w", err)
		}
		templates = append(templates, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating email templates: %w", err)
	}
	return templates, nil
}
