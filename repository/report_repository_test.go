package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(t *testing.T) (*ReportRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewReportRepository(db), mock
}

func TestCountByStatus(t *testing.T) {
	repo, mock := newReportFixture(t)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM complaints GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("closed", 12).
			AddRow("pending", 4))

	counts, err := repo.CountByStatus()

	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "closed", counts[0].Key)
	assert.Equal(t, int64(12), counts[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvgResolutionHours_ZeroWhenNoResolvedComplaints(t *testing.T) {
	repo, mock := newReportFixture(t)

	mock.ExpectQuery(`SELECT AVG\(TIMESTAMPDIFF\(HOUR, created_at, updated_at\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

	avg, err := repo.AvgResolutionHours()

	require.NoError(t, err)
	assert.Equal(t, float64(0), avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvgResolutionHours(t *testing.T) {
	repo, mock := newReportFixture(t)

	mock.ExpectQuery(`SELECT AVG\(TIMESTAMPDIFF\(HOUR, created_at, updated_at\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(36.5))

	avg, err := repo.AvgResolutionHours()

	require.NoError(t, err)
	assert.InDelta(t, 36.5, avg, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountCreatedSince_PassesWindow(t *testing.T) {
	repo, mock := newReportFixture(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM complaints WHERE created_at >=`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountCreatedSince(7)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingDistribution(t *testing.T) {
	repo, mock := newReportFixture(t)

	mock.ExpectQuery(`SELECT rating, COUNT\(\*\) FROM complaint_feedback GROUP BY rating`).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).
			AddRow("4", 6).
			AddRow("5", 9))

	counts, err := repo.RatingDistribution()

	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "5", counts[1].Key)
	assert.Equal(t, int64(9), counts[1].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
