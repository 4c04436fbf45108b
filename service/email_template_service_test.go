package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railcare/apperrors"
	"railcare/logger/loggertest"
	"railcare/models"
	"railcare/repository"
)

func newTemplateFixture(t *testing.T) (*EmailTemplateService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	notifier := NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		30,
		loggertest.New(t).Sugar(),
	)
	svc := NewEmailTemplateService(
		repository.NewEmailTemplateRepository(db),
		repository.NewUserRepository(db),
		notifier,
		"https://portal.railcare.example",
		loggertest.New(t).Sugar(),
	)
	return svc, mock
}

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	svc, _ := newTemplateFixture(t)

	template := &models.EmailTemplate{
		Subject: "Welcome {name}",
		Content: "Hello {name} ({login_id}, {role}, {department}). Visit {portal_url}. Mail goes to {email}. Unknown {token} stays.",
	}
	user := &models.User{
		LoginID:    "ctrl1",
		Name:       "A. Sharma",
		Email:      "sharma@example.com",
		Role:       models.RoleController,
		Department: sql.NullString{String: models.DeptOperating, Valid: true},
	}

	subject, body := svc.Render(template, user)

	assert.Equal(t, "Welcome A. Sharma", subject)
	assert.Equal(t,
		"Hello A. Sharma (ctrl1, controller, OPERATING). Visit https://portal.railcare.example. Mail goes to sharma@example.com. Unknown {token} stays.",
		body)
}

func TestRender_BlankDepartmentForCustomers(t *testing.T) {
	svc, _ := newTemplateFixture(t)

	template := &models.EmailTemplate{Subject: "s", Content: "dept: {department}."}
	user := &models.User{LoginID: "cust1", Name: "C", Role: models.RoleCustomer}

	_, body := svc.Render(template, user)

	assert.Equal(t, "dept: .", body)
}

func TestTemplateCreate_ValidatesFields(t *testing.T) {
	svc, mock := newTemplateFixture(t)

	_, err := svc.Create(&models.EmailTemplateRequest{Name: "", Subject: "s", Content: "c"})

	assert.True(t, apperrors.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateCreate_DefaultClearsPreviousDefault(t *testing.T) {
	svc, mock := newTemplateFixture(t)

	mock.ExpectExec(`UPDATE email_templates SET is_default = FALSE WHERE category = \? AND is_default = TRUE`).
		WithArgs("welcome").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO email_templates`).
		WithArgs("Greeting", "Hi {name}", "Welcome aboard", "welcome", true).
		WillReturnResult(sqlmock.NewResult(7, 1))

	created, err := svc.Create(&models.EmailTemplateRequest{
		Name:      "Greeting",
		Subject:   "Hi {name}",
		Content:   "Welcome aboard",
		Category:  "welcome",
		IsDefault: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.True(t, created.IsDefault)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendBulk_RendersPerRecipient(t *testing.T) {
	svc, mock := newTemplateFixture(t)

	templateRows := sqlmock.NewRows([]string{
		"id", "name", "subject", "content", "category", "is_default", "created_at", "updated_at",
	}).AddRow(3, "welcome", "Hello {name}", "Use {portal_url}", "account", true, time.Now(), nil)
	mock.ExpectQuery(`SELECT(.+)FROM email_templates WHERE id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(templateRows)

	userCols := []string{"login_id", "name", "email", "mobile", "password_hash", "role", "department", "status", "created_at"}
	mock.ExpectQuery(`SELECT(.+)FROM users WHERE login_id = \?`).
		WithArgs("cust1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("cust1", "C. Freight", "c@example.com", nil, "x", "customer", nil, "active", time.Now()))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("cust1", "broadcast", "Hello C. Freight", "Use https://portal.railcare.example", "normal").
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp, err := svc.SendBulk(&models.BulkEmailRequest{
		TemplateID: 3,
		Segment:    "user",
		LoginID:    "cust1",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Requested)
	assert.Equal(t, 1, resp.Sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}
