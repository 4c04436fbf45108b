package repository

import (
	"database/sql"
	"fmt"

	"railcare/apperrors"
	"railcare/models"
)

// CategoryRepository handles database operations for the Category → Type →
// Subtype hierarchy.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// TripleExists reports whether the exact (category, type, subtype) triple is
// already present.
func (r *CategoryRepository) TripleExists(category, typ, subtype string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM category_entries WHERE category = ? AND type = ? AND subtype = ?`
	if err := r.db.QueryRow(query, category, typ, subtype).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check category triple: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new category entry and fills in the generated id.
func (r *CategoryRepository) Create(entry *models.CategoryEntry) error {
	query := `INSERT INTO category_entries (category, type, subtype) VALUES (?, ?, ?)`

	result, err := r.db.Exec(query, entry.Category, entry.Type, entry.SubType)
	if err != nil {
		return fmt.Errorf("failed to create category entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get category ID: %w", err)
	}

	entry.CategoryID = id
	return nil
}

// GetByID retrieves one category entry.
func (r *CategoryRepository) GetByID(id int64) (*models.CategoryEntry, error) {
	query := `SELECT category_id, category, type, subtype, created_at FROM category_entries WHERE category_id = ?`

	var entry models.CategoryEntry
	err := r.db.QueryRow(query, id).Scan(
		&entry.CategoryID,
		&entry.Category,
		&entry.Type,
		&entry.SubType,
		&entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("category", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category entry: %w", err)
	}
	return &entry, nil
}

// Update replaces the triple of an existing entry. Returns NotFoundError if
// the id does not exist.
func (r *CategoryRepository) Update(id int64, category, typ, subtype string) error {
	query := `UPDATE category_entries SET category = ?, type = ?, subtype = ? WHERE category_id = ?`

	result, err := r.db.Exec(query, category, typ, subtype, id)
	if err != nil {
		return fmt.Errorf("failed to update category entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("category", fmt.Sprintf("%d", id))
	}
	return nil
}

// Delete hard-deletes an entry. Complaints keep their denormalized
// type/subtype strings, so deletion never breaks existing rows.
func (r *CategoryRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM category_entries WHERE category_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("category", fmt.Sprintf("%d", id))
	}
	return nil
}

// ListAll retrieves every entry ordered for stable hierarchy building.
func (r *CategoryRepository) ListAll() ([]models.CategoryEntry, error) {
	query := `SELECT category_id, category, type, subtype, created_at FROM category_entries ORDER BY category, type, subtype`
	return r.queryEntries(query)
}

// Search substring-matches the term across all three hierarchy fields.
func (r *CategoryRepository) Search(term string) ([]models.CategoryEntry, error) {
	query := `
		SELECT category_id, category, type, subtype, created_at
		FROM category_entries
		WHERE category LIKE ? OR type LIKE ? OR subtype LIKE ?
		ORDER BY category, type, subtype
	`
	like := "%" + term + "%"
	return r.queryEntries(query, like, like, like)
}

func (r *CategoryRepository) queryEntries(query string, args ...interface{}) ([]models.CategoryEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category entries: %w", err)
	}
	defer rows.Close()

	var entries []models.CategoryEntry
	for rows.Next() {
		var entry models.CategoryEntry
		err := rows.Scan(&entry.CategoryID, &entry.Category, &entry.Type, &entry.SubType, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category entries: %w", err)
	}
	return entries, nil
}

// FindByTypeSubtype resolves the category a (type, subtype) pair belongs to.
// Returns empty string when no entry matches; submission then stores the
// pair uncategorized.
func (r *CategoryRepository) FindByTypeSubtype(typ, subtype string) (string, error) {
	var category string
	query := `SELECT category FROM category_entries WHERE type = ? AND subtype = ? LIMIT 1`
	err := r.db.QueryRow(query, typ, subtype).Scan(&category)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve category: %w", err)
	}
	return category, nil
}
