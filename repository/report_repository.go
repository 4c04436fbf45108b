package repository

import (
	"database/sql"
	"fmt"

	"railcare/models"
)

// ReportRepository runs the read-only aggregate projections behind
// dashboards. Every call recomputes from scratch; standard read-committed
// semantics are sufficient.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CountTotal returns the total number of complaints.
func (r *ReportRepository) CountTotal() (int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM complaints`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count complaints: %w", err)
	}
	return total, nil
}

// CountByStatus returns complaint counts grouped by status.
func (r *ReportRepository) CountByStatus() ([]models.StatusCount, error) {
	return r.groupedCount(`SELECT status, COUNT(*) FROM complaints GROUP BY status ORDER BY status`)
}

// CountByDepartment returns complaint counts grouped by current department.
func (r *ReportRepository) CountByDepartment() ([]models.StatusCount, error) {
	return r.groupedCount(`SELECT department, COUNT(*) FROM complaints GROUP BY department ORDER BY department`)
}

// CountByType returns complaint counts grouped by type.
func (r *ReportRepository) CountByType() ([]models.StatusCount, error) {
	return r.groupedCount(`SELECT type, COUNT(*) FROM complaints GROUP BY type ORDER BY type`)
}

// CountCreatedSince returns the number of complaints created in the last
// given number of days.
func (r *ReportRepository) CountCreatedSince(days int) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM complaints WHERE created_at >= DATE_SUB(NOW(), INTERVAL ? DAY)`
	if err := r.db.QueryRow(query, days).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recent complaints: %w", err)
	}
	return count, nil
}

// AvgResolutionHours returns the average hours between created_at and
// updated_at over closed and replied complaints. Zero when none exist.
func (r *ReportRepository) AvgResolutionHours() (float64, error) {
	var avg sql.NullFloat64
	query := `
		SELECT AVG(TIMESTAMPDIFF(HOUR, created_at, updated_at))
		FROM complaints
		WHERE status IN ('closed', 'replied') AND updated_at IS NOT NULL
	`
	if err := r.db.QueryRow(query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to compute average resolution time: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// RatingDistribution returns feedback counts grouped by rating.
func (r *ReportRepository) RatingDistribution() ([]models.StatusCount, error) {
	return r.groupedCount(`SELECT rating, COUNT(*) FROM complaint_feedback GROUP BY rating ORDER BY rating`)
}

func (r *ReportRepository) groupedCount(query string) ([]models.StatusCount, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to run grouped count: %w", err)
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan grouped count: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grouped counts: %w", err)
	}
	return counts, nil
}
