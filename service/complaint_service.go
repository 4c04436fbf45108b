package service

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"railcare/apperrors"
	"railcare/metrics"
	"railcare/models"
	"railcare/repository"
)

// MinDescriptionLength is the minimum complaint description length enforced
// at submission.
const MinDescriptionLength = 20

// ComplaintService handles complaint submission and read paths. Lifecycle
// transitions after submission live in LifecycleService.
type ComplaintService struct {
	repo         *repository.ComplaintRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	notifier     *NotificationService
	log          *zap.SugaredLogger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	repo *repository.ComplaintRepository,
	categoryRepo *repository.CategoryRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
	log *zap.SugaredLogger,
) *ComplaintService {
	return &ComplaintService{
		repo:         repo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		log:          log,
	}
}

// Create validates a customer submission and persists the complaint in
// status pending. The category is derived from the type/subtype pair; the
// derived strings stay denormalized on the row.
func (s *ComplaintService) Create(req *models.CreateComplaintRequest, actor *models.Actor) (*models.CreateComplaintResponse, error) {
	if !Can(actor, models.ActionSubmit) {
		return nil, apperrors.NewAuthorization(string(models.ActionSubmit), "only customers may submit complaints")
	}
	if strings.TrimSpace(req.Type) == "" {
		return nil, apperrors.NewValidation("type", "complaint type is required")
	}
	if strings.TrimSpace(req.Subtype) == "" {
		return nil, apperrors.NewValidation("subtype", "complaint subtype is required")
	}
	if len(strings.TrimSpace(req.Description)) < MinDescriptionLength {
		return nil, apperrors.NewValidation("description",
			"description must be at least 20 characters")
	}
	if req.ShedID == 0 {
		return nil, apperrors.NewValidation("shed_id", "shed is required")
	}

	category, err := s.categoryRepo.FindByTypeSubtype(req.Type, req.Subtype)
	if err != nil {
		return nil, err
	}

	priority := models.PriorityNormal
	if req.Priority != nil {
		priority = models.ParsePriority(*req.Priority)
	}

	complaint := &models.Complaint{
		ComplaintNumber: s.repo.GenerateComplaintNumber(),
		CustomerID:      actor.CustomerID,
		Type:            req.Type,
		Subtype:         req.Subtype,
		Category:        category,
		Description:     req.Description,
		ShedID:          req.ShedID,
		Priority:        priority,
		Status:          models.StatusPending,
		Department:      models.DeptCommercial,
	}
	if req.FNR != nil && *req.FNR != "" {
		complaint.FNR = sql.NullString{String: *req.FNR, Valid: true}
	}

	if err := s.repo.Create(complaint); err != nil {
		return nil, err
	}

	tx := &models.ComplaintTransaction{
		ComplaintID:  complaint.ComplaintID,
		Action:       models.ActionSubmit,
		ToStatus:     models.StatusPending,
		ToDepartment: sql.NullString{String: complaint.Department, Valid: true},
		ActorLoginID: actor.LoginID,
		Remarks:      sql.NullString{String: "Complaint submitted", Valid: true},
	}
	if err := s.repo.AppendTransaction(tx); err != nil {
		return nil, err
	}

	metrics.ComplaintsCreated.Inc()
	s.log.Infow("complaint submitted",
		"complaint_number", complaint.ComplaintNumber,
		"type", complaint.Type,
		"subtype", complaint.Subtype,
		"category", category,
	)

	s.notifyDepartment(complaint.Department, complaint.ComplaintNumber,
		"New complaint received",
		fmt.Sprintf("Complaint %s (%s) awaits review", complaint.ComplaintNumber, complaint.Type))

	return &models.CreateComplaintResponse{
		ComplaintID:     complaint.ComplaintID,
		ComplaintNumber: complaint.ComplaintNumber,
		Status:          string(complaint.Status),
		Department:      complaint.Department,
		Message:         "Complaint registered successfully",
	}, nil
}

// notifyDepartment fans a notification out to the active staff of the
// custodian department. Failures are logged, never surfaced: a submission
// must not fail because a notification could not be written.
func (s *ComplaintService) notifyDepartment(department, complaintNumber, title, message string) {
	if s.notifier == nil {
		return
	}

	users, err := s.userRepo.ListActiveByDepartment(department)
	if err != nil {
		s.log.Warnw("failed to resolve department members for notification",
			"department", department, "complaint_number", complaintNumber, "error", err)
		return
	}

	loginIDs := make([]string, 0, len(users))
	for _, u := range users {
		loginIDs = append(loginIDs, u.LoginID)
	}

	sent := s.notifier.CreateBulkNotifications(loginIDs, models.NotificationLifecycle,
		title, message, models.NotificationPriorityNormal)
	s.log.Debugw("department notified", "department", department, "sent", sent)
}

// ListForActor returns the complaint summaries visible to the actor:
// customers see their own, staff see their department's (admins see all).
// Priority display is suppressed for closed complaints.
func (s *ComplaintService) ListForActor(actor *models.Actor) ([]models.ComplaintSummary, error) {
	var complaints []models.Complaint
	var err error

	switch {
	case actor.Role == models.RoleCustomer:
		complaints, err = s.repo.ListByCustomer(actor.CustomerID)
	case actor.Role == models.RoleAdmin:
		complaints, err = s.repo.ListAll()
	default:
		complaints, err = s.repo.ListByDepartment(actor.Department)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ComplaintSummary, 0, len(complaints))
	for _, c := range complaints {
		summaries = append(summaries, models.ComplaintSummary{
			ComplaintID:     c.ComplaintID,
			ComplaintNumber: c.ComplaintNumber,
			Type:            c.Type,
			Subtype:         c.Subtype,
			Status:          string(c.Status),
			Priority:        models.DisplayPriority(c.Status, c.Priority),
			Department:      c.Department,
			CreatedAt:       c.CreatedAt,
		})
	}
	return summaries, nil
}

// GetForActor returns one complaint, enforcing visibility: customers only
// see their own complaints.
func (s *ComplaintService) GetForActor(complaintID int64, actor *models.Actor) (*models.Complaint, error) {
	complaint, err := s.repo.GetByID(complaintID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleCustomer && complaint.CustomerID != actor.CustomerID {
		return nil, apperrors.NewNotFound("complaint", complaint.ComplaintNumber)
	}
	return complaint, nil
}

// Timeline returns the transaction history of a complaint with the same
// visibility rule as GetForActor.
func (s *ComplaintService) Timeline(complaintID int64, actor *models.Actor) ([]models.TimelineEntry, error) {
	if _, err := s.GetForActor(complaintID, actor); err != nil {
		return nil, err
	}

	history, err := s.repo.GetTransactions(complaintID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.TimelineEntry, 0, len(history))
	for _, tx := range history {
		entry := models.TimelineEntry{
			TransactionID: tx.TransactionID,
			Action:        string(tx.Action),
			ToStatus:      string(tx.ToStatus),
			ActorLoginID:  tx.ActorLoginID,
			CreatedAt:     tx.CreatedAt,
		}
		if tx.FromStatus.Valid {
			entry.FromStatus = &tx.FromStatus.String
		}
		if tx.FromDepartment.Valid {
			entry.FromDepartment = &tx.FromDepartment.String
		}
		if tx.ToDepartment.Valid {
			entry.ToDepartment = &tx.ToDepartment.String
		}
		if tx.Remarks.Valid {
			entry.Remarks = &tx.Remarks.String
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
