package service

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railcare/apperrors"
	"railcare/logger/loggertest"
	"railcare/models"
	"railcare/repository"
)

func newNotificationFixture(t *testing.T, retentionDays int) (*NotificationService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		retentionDays,
		loggertest.New(t).Sugar(),
	)
	return svc, mock
}

func TestBulkNotifications_ContinuePastFailures(t *testing.T) {
	svc, mock := newNotificationFixture(t, 30)

	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("user1", "lifecycle", "title", "message", "normal").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("user2", "lifecycle", "title", "message", "normal").
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("user3", "lifecycle", "title", "message", "normal").
		WillReturnResult(sqlmock.NewResult(2, 1))

	sent := svc.CreateBulkNotifications(
		[]string{"user1", "user2", "user3"},
		models.NotificationLifecycle, "title", "message",
		models.NotificationPriorityNormal,
	)

	assert.Equal(t, 2, sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBroadcast_UserSegment(t *testing.T) {
	svc, mock := newNotificationFixture(t, 30)

	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("cust1", "broadcast", "Maintenance window", "Portal down Sunday 02:00-04:00", "high").
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp, err := svc.Broadcast(&models.BroadcastRequest{
		Segment:  "user",
		LoginID:  "cust1",
		Title:    "Maintenance window",
		Message:  "Portal down Sunday 02:00-04:00",
		Priority: "high",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Requested)
	assert.Equal(t, 1, resp.Sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBroadcast_RequiresTitleAndMessage(t *testing.T) {
	svc, mock := newNotificationFixture(t, 30)

	_, err := svc.Broadcast(&models.BroadcastRequest{Segment: "all"})

	assert.True(t, apperrors.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSegment_DepartmentRequiresName(t *testing.T) {
	svc, mock := newNotificationFixture(t, 30)

	_, err := svc.ResolveSegment(models.SegmentDepartment, "", "")

	assert.True(t, apperrors.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSegment_UnknownSegment(t *testing.T) {
	svc, _ := newNotificationFixture(t, 30)

	_, err := svc.ResolveSegment(models.NotificationSegment("aliens"), "", "")

	assert.True(t, apperrors.IsValidation(err))
}

func TestMarkAsRead_ScopedToRecipient(t *testing.T) {
	svc, mock := newNotificationFixture(t, 30)

	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE notification_id = \? AND login_id = \?`).
		WithArgs(int64(42), "cust1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.MarkAsRead(42, "cust1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsRead_OtherRecipientNotFound(t *testing.T) {
	svc, mock := newNotificationFixture(t, 30)

	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE notification_id = \? AND login_id = \?`).
		WithArgs(int64(42), "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.MarkAsRead(42, "intruder")

	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllAsRead_Idempotent(t *testing.T) {
	svc, mock := newNotificationFixture(t, 30)

	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE login_id = \? AND is_read = FALSE`).
		WithArgs("cust1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE login_id = \? AND is_read = FALSE`).
		WithArgs("cust1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, svc.MarkAllAsRead("cust1"))
	require.NoError(t, svc.MarkAllAsRead("cust1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanupOldNotifications_UsesRetentionWindow(t *testing.T) {
	svc, mock := newNotificationFixture(t, 45)

	mock.ExpectExec(`DELETE FROM notifications WHERE created_at <`).
		WithArgs(45).
		WillReturnResult(sqlmock.NewResult(0, 12))

	deleted, err := svc.CleanupOldNotifications()

	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanupOldNotifications_DefaultsRetention(t *testing.T) {
	svc, mock := newNotificationFixture(t, 0)

	mock.ExpectExec(`DELETE FROM notifications WHERE created_at <`).
		WithArgs(30).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := svc.CleanupOldNotifications()

	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
