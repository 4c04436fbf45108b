package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railcare/apperrors"
	"railcare/repository"
)

func newCategoryFixture(t *testing.T) (*CategoryService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewCategoryService(repository.NewCategoryRepository(db)), mock
}

func TestCategoryAdd_RejectsDuplicateTriple(t *testing.T) {
	svc, mock := newCategoryFixture(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM category_entries`).
		WithArgs("Operations", "Wagon Supply", "Delayed Placement").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Add("Operations", "Wagon Supply", "Delayed Placement")

	assert.True(t, apperrors.IsDuplicate(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAdd_RequiresAllThreeLevels(t *testing.T) {
	svc, mock := newCategoryFixture(t)

	_, err := svc.Add("Operations", "", "Delayed Placement")

	assert.True(t, apperrors.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAdd_TrimsAndInserts(t *testing.T) {
	svc, mock := newCategoryFixture(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM category_entries`).
		WithArgs("Operations", "Wagon Supply", "Delayed Placement").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO category_entries`).
		WithArgs("Operations", "Wagon Supply", "Delayed Placement").
		WillReturnResult(sqlmock.NewResult(5, 1))

	entry, err := svc.Add("  Operations ", "Wagon Supply", " Delayed Placement ")

	require.NoError(t, err)
	assert.Equal(t, int64(5), entry.CategoryID)
	assert.Equal(t, "Operations", entry.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHierarchicalData_NestsTriples(t *testing.T) {
	svc, mock := newCategoryFixture(t)

	rows := sqlmock.NewRows([]string{"category_id", "category", "type", "subtype", "created_at"}).
		AddRow(1, "Operations", "Wagon Supply", "Delayed Placement", time.Now()).
		AddRow(2, "Operations", "Wagon Supply", "Short Supply", time.Now()).
		AddRow(3, "Operations", "Transit", "Wagon Diversion", time.Now()).
		AddRow(4, "Commercial", "Billing", "Overcharged Freight", time.Now())
	mock.ExpectQuery(`SELECT category_id, category, type, subtype, created_at FROM category_entries`).
		WillReturnRows(rows)

	hierarchy, err := svc.HierarchicalData()

	require.NoError(t, err)
	assert.Len(t, hierarchy, 2)
	assert.ElementsMatch(t, []string{"Delayed Placement", "Short Supply"}, hierarchy["Operations"]["Wagon Supply"])
	assert.Equal(t, []string{"Wagon Diversion"}, hierarchy["Operations"]["Transit"])
	assert.Equal(t, []string{"Overcharged Freight"}, hierarchy["Commercial"]["Billing"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDelete_NotFound(t *testing.T) {
	svc, mock := newCategoryFixture(t)

	mock.ExpectExec(`DELETE FROM category_entries`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(99)

	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
