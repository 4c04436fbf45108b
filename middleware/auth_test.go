package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railcare/logger/loggertest"
	"railcare/models"
	"railcare/repository"
	"railcare/service"
	"railcare/utils"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) (*AuthMiddleware, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userService := service.NewUserService(repository.NewUserRepository(db), loggertest.New(t).Sugar())
	return NewAuthMiddleware(userService, testSecret), mock
}

func staffToken(t *testing.T) string {
	token, err := utils.GenerateJWT(&models.User{
		LoginID:    "ctrl1",
		Role:       models.RoleController,
		Department: sql.NullString{String: models.DeptCommercial, Valid: true},
	}, []byte(testSecret), 1)
	require.NoError(t, err)
	return token
}

func expectActiveController(mock sqlmock.Sqlmock) {
	cols := []string{"login_id", "name", "email", "mobile", "password_hash", "role", "department", "status", "created_at"}
	mock.ExpectQuery(`SELECT(.+)FROM users WHERE login_id = \?`).
		WithArgs("ctrl1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("ctrl1", "C", "c@example.com", nil, "x", "controller", "COMMERCIAL", "active", time.Now()))
}

func TestRequireAuth_SetsActor(t *testing.T) {
	m, mock := newAuthFixture(t)
	expectActiveController(mock)

	var seen *models.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ActorFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/complaints", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	rec := httptest.NewRecorder()
	m.RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "ctrl1", seen.LoginID)
	assert.Equal(t, models.DeptCommercial, seen.Department)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	m.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	m, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	m.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_BadToken(t *testing.T) {
	m, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	m.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_ForbidsController(t *testing.T) {
	m, mock := newAuthFixture(t)
	expectActiveController(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	rec := httptest.NewRecorder()
	m.RequireAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireStaff_AllowsController(t *testing.T) {
	m, mock := newAuthFixture(t)
	expectActiveController(mock)

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/departments", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	rec := httptest.NewRecorder()
	m.RequireStaff(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
