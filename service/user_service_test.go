package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railcare/apperrors"
	"railcare/logger/loggertest"
	"railcare/models"
	"railcare/repository"
	"railcare/utils"
)

func newUserFixture(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserService(repository.NewUserRepository(db), loggertest.New(t).Sugar()), mock
}

var userCols = []string{"login_id", "name", "email", "mobile", "password_hash", "role", "department", "status", "created_at"}

func TestAuthenticate_UnknownUserGetsGenericError(t *testing.T) {
	svc, mock := newUserFixture(t)

	mock.ExpectQuery(`SELECT(.+)FROM users WHERE login_id = \?`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, _, err := svc.Authenticate("ghost", "whatever")

	require.True(t, apperrors.IsAuthorization(err))
	// Unknown login and wrong password produce the same message.
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, mock := newUserFixture(t)

	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT(.+)FROM users WHERE login_id = \?`).
		WithArgs("ctrl1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("ctrl1", "C", "c@example.com", nil, hash, "controller", "OPERATING", "active", time.Now()))

	_, _, err = svc.Authenticate("ctrl1", "wrong-password")

	require.True(t, apperrors.IsAuthorization(err))
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_DisabledAccountRejected(t *testing.T) {
	svc, mock := newUserFixture(t)

	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT(.+)FROM users WHERE login_id = \?`).
		WithArgs("ctrl1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("ctrl1", "C", "c@example.com", nil, hash, "controller", "OPERATING", "disabled", time.Now()))

	_, _, err = svc.Authenticate("ctrl1", "correct-password")

	require.True(t, apperrors.IsAuthorization(err))
	assert.Contains(t, err.Error(), "disabled")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_CustomerCarriesCustomerID(t *testing.T) {
	svc, mock := newUserFixture(t)

	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT(.+)FROM users WHERE login_id = \?`).
		WithArgs("cust1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("cust1", "C. Freight", "c@example.com", nil, hash, "customer", nil, "active", time.Now()))
	mock.ExpectQuery(`SELECT(.+)FROM customers\s+WHERE login_id = \?`).
		WithArgs("cust1").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "login_id", "name", "company_name", "email", "mobile", "created_at"}).
			AddRow(9, "cust1", "C. Freight", nil, "c@example.com", nil, time.Now()))

	user, actor, err := svc.Authenticate("cust1", "correct-password")

	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, int64(9), actor.CustomerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCustomer_DuplicateLoginRejected(t *testing.T) {
	svc, mock := newUserFixture(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE login_id = \?`).
		WithArgs("cust1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.RegisterCustomer(&models.RegisterRequest{
		LoginID:  "cust1",
		Name:     "C. Freight",
		Email:    "c@example.com",
		Password: "long-enough-password",
	})

	assert.True(t, apperrors.IsDuplicate(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCustomer_ShortPasswordRejected(t *testing.T) {
	svc, mock := newUserFixture(t)

	_, err := svc.RegisterCustomer(&models.RegisterRequest{
		LoginID:  "cust1",
		Name:     "C",
		Email:    "c@example.com",
		Password: "short",
	})

	assert.True(t, apperrors.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStaff_RejectsCustomerRole(t *testing.T) {
	svc, mock := newUserFixture(t)

	_, err := svc.CreateStaff(&models.CreateUserRequest{
		LoginID:    "x",
		Role:       "customer",
		Department: models.DeptCommercial,
		Password:   "long-enough-password",
	})

	assert.True(t, apperrors.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStaff_RejectsUnknownDepartment(t *testing.T) {
	svc, mock := newUserFixture(t)

	_, err := svc.CreateStaff(&models.CreateUserRequest{
		LoginID:    "x",
		Role:       "controller",
		Department: "CATERING",
		Password:   "long-enough-password",
	})

	assert.True(t, apperrors.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
