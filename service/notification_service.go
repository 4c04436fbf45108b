package service

import (
	"go.uber.org/zap"

	"railcare/apperrors"
	"railcare/metrics"
	"railcare/models"
	"railcare/repository"
)

// NotificationService fans out system notifications to user segments and
// manages read state and retention.
type NotificationService struct {
	repo          *repository.NotificationRepository
	userRepo      *repository.UserRepository
	retentionDays int
	log           *zap.SugaredLogger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	repo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	retentionDays int,
	log *zap.SugaredLogger,
) *NotificationService {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &NotificationService{
		repo:          repo,
		userRepo:      userRepo,
		retentionDays: retentionDays,
		log:           log,
	}
}

// CreateSystemNotification inserts one notification. Returns whether the
// insert succeeded.
func (s *NotificationService) CreateSystemNotification(
	loginID string,
	typ models.NotificationType,
	title, message string,
	priority models.NotificationPriority,
) bool {
	n := &models.Notification{
		LoginID:  loginID,
		Type:     typ,
		Title:    title,
		Message:  message,
		Priority: priority,
	}
	if err := s.repo.Create(n); err != nil {
		metrics.NotificationsFanout.WithLabelValues("failed").Inc()
		s.log.Warnw("notification insert failed", "login_id", loginID, "error", err)
		return false
	}
	metrics.NotificationsFanout.WithLabelValues("created").Inc()
	return true
}

// CreateBulkNotifications inserts one row per recipient and returns the
// number actually created. A failing id never aborts the batch; the fan-out
// continues and reports successes only.
func (s *NotificationService) CreateBulkNotifications(
	loginIDs []string,
	typ models.NotificationType,
	title, message string,
	priority models.NotificationPriority,
) int {
	successCount := 0
	for _, loginID := range loginIDs {
		if s.CreateSystemNotification(loginID, typ, title, message, priority) {
			successCount++
		}
	}
	return successCount
}

// ResolveSegment maps a broadcast segment to concrete recipient login ids.
func (s *NotificationService) ResolveSegment(segment models.NotificationSegment, department, loginID string) ([]string, error) {
	var users []models.User
	var err error

	switch segment {
	case models.SegmentAll:
		users, err = s.userRepo.ListAllActive()
	case models.SegmentCustomers:
		users, err = s.userRepo.ListByRole(models.RoleCustomer)
	case models.SegmentControllers:
		users, err = s.userRepo.ListByRole(models.RoleController)
	case models.SegmentDepartment:
		if department == "" {
			return nil, apperrors.NewValidation("department", "department is required for a department segment")
		}
		users, err = s.userRepo.ListActiveByDepartment(department)
	case models.SegmentUser:
		if loginID == "" {
			return nil, apperrors.NewValidation("login_id", "login_id is required for a user segment")
		}
		return []string{loginID}, nil
	default:
		return nil, apperrors.NewValidation("segment", "unknown segment "+string(segment))
	}
	if err != nil {
		return nil, err
	}

	loginIDs := make([]string, 0, len(users))
	for _, u := range users {
		loginIDs = append(loginIDs, u.LoginID)
	}
	return loginIDs, nil
}

// Broadcast resolves a segment and fans the notification out, returning
// requested and sent counts.
func (s *NotificationService) Broadcast(req *models.BroadcastRequest) (*models.BroadcastResponse, error) {
	if req.Title == "" || req.Message == "" {
		return nil, apperrors.NewValidation("message", "title and message are required")
	}

	loginIDs, err := s.ResolveSegment(models.NotificationSegment(req.Segment), req.Department, req.LoginID)
	if err != nil {
		return nil, err
	}

	priority := models.NotificationPriority(req.Priority)
	switch priority {
	case models.NotificationPriorityLow, models.NotificationPriorityNormal, models.NotificationPriorityHigh:
	default:
		priority = models.NotificationPriorityNormal
	}

	typ := models.NotificationType(req.Type)
	if typ == "" {
		typ = models.NotificationBroadcast
	}

	sent := s.CreateBulkNotifications(loginIDs, typ, req.Title, req.Message, priority)
	s.log.Infow("broadcast sent", "segment", req.Segment, "requested", len(loginIDs), "sent", sent)

	return &models.BroadcastResponse{
		Requested: len(loginIDs),
		Sent:      sent,
		Message:   "Notification sent",
	}, nil
}

// List returns a recipient's notifications, newest first.
func (s *NotificationService) List(loginID string) ([]models.Notification, error) {
	return s.repo.ListByRecipient(loginID)
}

// MarkAsRead marks one of the recipient's notifications read. Idempotent.
// Notifications owned by another recipient are reported as not found.
func (s *NotificationService) MarkAsRead(notificationID int64, loginID string) error {
	return s.repo.MarkAsRead(notificationID, loginID)
}

// MarkAllAsRead marks all of a recipient's notifications read. Idempotent.
func (s *NotificationService) MarkAllAsRead(loginID string) error {
	return s.repo.MarkAllAsRead(loginID)
}

// CleanupOldNotifications deletes notifications past the retention window,
// read or not. Returns the number deleted.
func (s *NotificationService) CleanupOldNotifications() (int64, error) {
	deleted, err := s.repo.DeleteOlderThan(s.retentionDays)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.log.Infow("old notifications cleaned up", "deleted", deleted, "retention_days", s.retentionDays)
	}
	return deleted, nil
}
