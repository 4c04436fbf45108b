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

// LifecycleService enforces the complaint state machine. Every transition
// validates actor and payload before any write, applies a single-row
// update, appends a transaction record, and fans out a notification to the
// new owner.
//
// Concurrent transitions on the same complaint race at last-write-wins;
// isolation comes from the database's row guarantees only.
type LifecycleService struct {
	complaintRepo *repository.ComplaintRepository
	userRepo      *repository.UserRepository
	notifier      *NotificationService
	log           *zap.SugaredLogger
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(
	complaintRepo *repository.ComplaintRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
	log *zap.SugaredLogger,
) *LifecycleService {
	return &LifecycleService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		log:           log,
	}
}

// allowedFrom lists the source states each action accepts.
var allowedFrom = map[models.LifecycleAction][]models.ComplaintStatus{
	models.ActionForward:        {models.StatusPending, models.StatusForwarded},
	models.ActionClose:          {models.StatusPending, models.StatusForwarded},
	models.ActionReply:          {models.StatusForwarded},
	models.ActionRevert:         {models.StatusPending, models.StatusForwarded, models.StatusAwaitingApproval},
	models.ActionApprove:        {models.StatusAwaitingApproval},
	models.ActionAdditionalInfo: {models.StatusReverted},
	models.ActionFeedback:       {models.StatusReplied},
}

func transitionAllowed(action models.LifecycleAction, from models.ComplaintStatus) bool {
	for _, s := range allowedFrom[action] {
		if s == from {
			return true
		}
	}
	return false
}

// guard loads the complaint and rejects the transition before any mutation
// when the actor lacks the capability or the current state does not accept
// the action.
func (s *LifecycleService) guard(
	complaintID int64,
	actor *models.Actor,
	action models.LifecycleAction,
) (*models.Complaint, error) {
	if !Can(actor, action) {
		metrics.LifecycleRejections.WithLabelValues(string(action), "authorization").Inc()
		return nil, apperrors.NewAuthorization(string(action),
			fmt.Sprintf("role %s in department %q may not %s", actor.Role, actor.Department, action))
	}

	complaint, err := s.complaintRepo.GetByID(complaintID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(action, complaint.Status) {
		metrics.LifecycleRejections.WithLabelValues(string(action), "state").Inc()
		return nil, apperrors.NewValidation("status",
			fmt.Sprintf("cannot %s a complaint in status %s", action, complaint.Status))
	}

	return complaint, nil
}

// apply performs the single-row update and appends the history record.
func (s *LifecycleService) apply(
	complaint *models.Complaint,
	action models.LifecycleAction,
	newStatus models.ComplaintStatus,
	newDepartment string,
	assignedUser sql.NullString,
	rejectionReason sql.NullString,
	actor *models.Actor,
	remarks string,
) error {
	oldStatus := complaint.Status
	oldDepartment := complaint.Department

	err := s.complaintRepo.UpdateTransition(complaint.ComplaintID, newStatus, newDepartment, assignedUser, rejectionReason)
	if err != nil {
		return err
	}

	tx := &models.ComplaintTransaction{
		ComplaintID:    complaint.ComplaintID,
		Action:         action,
		FromStatus:     sql.NullString{String: string(oldStatus), Valid: true},
		ToStatus:       newStatus,
		FromDepartment: sql.NullString{String: oldDepartment, Valid: oldDepartment != ""},
		ToDepartment:   sql.NullString{String: newDepartment, Valid: newDepartment != ""},
		ActorLoginID:   actor.LoginID,
		Remarks:        sql.NullString{String: remarks, Valid: remarks != ""},
	}
	if err := s.complaintRepo.AppendTransaction(tx); err != nil {
		return err
	}

	metrics.LifecycleTransitions.WithLabelValues(string(action)).Inc()
	s.log.Infow("complaint transition",
		"complaint_number", complaint.ComplaintNumber,
		"action", action,
		"from", oldStatus,
		"to", newStatus,
		"actor", actor.LoginID,
	)

	complaint.Status = newStatus
	complaint.Department = newDepartment
	return nil
}

// Forward hands the complaint to another department, optionally to a named
// staff user.
func (s *LifecycleService) Forward(
	complaintID int64,
	actor *models.Actor,
	toDepartment string,
	toUser *string,
	remarks string,
) (*models.TransitionResponse, error) {
	if strings.TrimSpace(remarks) == "" {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionForward), "validation").Inc()
		return nil, apperrors.NewValidation("remarks", "remarks are required to forward a complaint")
	}
	if !models.IsKnownDepartment(toDepartment) {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionForward), "validation").Inc()
		return nil, apperrors.NewValidation("to_department",
			fmt.Sprintf("unknown department %q", toDepartment))
	}

	complaint, err := s.guard(complaintID, actor, models.ActionForward)
	if err != nil {
		return nil, err
	}
	oldStatus := complaint.Status

	assignedUser := sql.NullString{}
	if toUser != nil && *toUser != "" {
		assignedUser = sql.NullString{String: *toUser, Valid: true}
	}

	err = s.apply(complaint, models.ActionForward, models.StatusForwarded,
		toDepartment, assignedUser, sql.NullString{}, actor, remarks)
	if err != nil {
		return nil, err
	}

	s.notifyDepartment(toDepartment, complaint.ComplaintNumber,
		fmt.Sprintf("Complaint %s forwarded to %s", complaint.ComplaintNumber, toDepartment),
		fmt.Sprintf("Complaint %s has been forwarded to your department by %s. Remarks: %s",
			complaint.ComplaintNumber, actor.LoginID, remarks))

	return transitionResponse(complaint, oldStatus, "Complaint forwarded"), nil
}

// Close sends the complaint for commercial approval. The status becomes
// awaiting_approval, never closed directly; Approve performs the final
// step.
func (s *LifecycleService) Close(
	complaintID int64,
	actor *models.Actor,
	actionTaken, remarks string,
) (*models.TransitionResponse, error) {
	if strings.TrimSpace(actionTaken) == "" {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionClose), "validation").Inc()
		return nil, apperrors.NewValidation("action_taken", "action taken is required to close a complaint")
	}
	if strings.TrimSpace(remarks) == "" {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionClose), "validation").Inc()
		return nil, apperrors.NewValidation("remarks", "remarks are required to close a complaint")
	}

	complaint, err := s.guard(complaintID, actor, models.ActionClose)
	if err != nil {
		return nil, err
	}
	oldStatus := complaint.Status

	err = s.apply(complaint, models.ActionClose, models.StatusAwaitingApproval,
		complaint.Department, complaint.AssignedUser, sql.NullString{}, actor,
		fmt.Sprintf("Action taken: %s. %s", actionTaken, remarks))
	if err != nil {
		return nil, err
	}

	s.notifyDepartment(models.DeptCommercial, complaint.ComplaintNumber,
		fmt.Sprintf("Complaint %s awaiting approval", complaint.ComplaintNumber),
		fmt.Sprintf("Complaint %s was sent for approval by %s. Action taken: %s",
			complaint.ComplaintNumber, actor.LoginID, actionTaken))

	return transitionResponse(complaint, oldStatus, "Complaint sent for approval"), nil
}

// Approve is the commercial sign-off that moves an awaiting_approval
// complaint to closed.
func (s *LifecycleService) Approve(
	complaintID int64,
	actor *models.Actor,
) (*models.TransitionResponse, error) {
	complaint, err := s.guard(complaintID, actor, models.ActionApprove)
	if err != nil {
		return nil, err
	}
	oldStatus := complaint.Status

	err = s.apply(complaint, models.ActionApprove, models.StatusClosed,
		complaint.Department, complaint.AssignedUser, sql.NullString{}, actor, "Closure approved")
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(complaint,
		fmt.Sprintf("Complaint %s closed", complaint.ComplaintNumber),
		fmt.Sprintf("Your complaint %s has been resolved and closed.", complaint.ComplaintNumber))

	return transitionResponse(complaint, oldStatus, "Complaint closed"), nil
}

// Revert returns the complaint to the customer with a rejection reason.
// Only commercial department staff may revert.
func (s *LifecycleService) Revert(
	complaintID int64,
	actor *models.Actor,
	rejectionReason string,
) (*models.TransitionResponse, error) {
	if strings.TrimSpace(rejectionReason) == "" {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionRevert), "validation").Inc()
		return nil, apperrors.NewValidation("rejection_reason", "rejection reason is required to revert a complaint")
	}

	complaint, err := s.guard(complaintID, actor, models.ActionRevert)
	if err != nil {
		return nil, err
	}
	oldStatus := complaint.Status

	reason := sql.NullString{String: rejectionReason, Valid: true}
	err = s.apply(complaint, models.ActionRevert, models.StatusReverted,
		complaint.Department, complaint.AssignedUser, reason, actor, rejectionReason)
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(complaint,
		fmt.Sprintf("Complaint %s needs your attention", complaint.ComplaintNumber),
		fmt.Sprintf("Your complaint %s was reverted: %s. Please provide additional information.",
			complaint.ComplaintNumber, rejectionReason))

	return transitionResponse(complaint, oldStatus, "Complaint reverted to customer"), nil
}

// Reply records a department reply to the customer and moves the complaint
// to replied, where it waits for feedback or further action.
func (s *LifecycleService) Reply(
	complaintID int64,
	actor *models.Actor,
	replyText string,
) (*models.TransitionResponse, error) {
	if strings.TrimSpace(replyText) == "" {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionReply), "validation").Inc()
		return nil, apperrors.NewValidation("reply", "reply text is required")
	}

	complaint, err := s.guard(complaintID, actor, models.ActionReply)
	if err != nil {
		return nil, err
	}
	oldStatus := complaint.Status

	err = s.apply(complaint, models.ActionReply, models.StatusReplied,
		complaint.Department, complaint.AssignedUser, sql.NullString{}, actor, replyText)
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(complaint,
		fmt.Sprintf("Reply on complaint %s", complaint.ComplaintNumber),
		fmt.Sprintf("Your complaint %s has received a reply: %s", complaint.ComplaintNumber, replyText))

	return transitionResponse(complaint, oldStatus, "Reply recorded"), nil
}

// ProvideAdditionalInfo lets the complaint owner answer a revert; the
// complaint returns to pending for re-triage.
func (s *LifecycleService) ProvideAdditionalInfo(
	complaintID int64,
	actor *models.Actor,
	text string,
) (*models.TransitionResponse, error) {
	if strings.TrimSpace(text) == "" {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionAdditionalInfo), "validation").Inc()
		return nil, apperrors.NewValidation("text", "additional information text is required")
	}

	complaint, err := s.guard(complaintID, actor, models.ActionAdditionalInfo)
	if err != nil {
		return nil, err
	}
	if complaint.CustomerID != actor.CustomerID {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionAdditionalInfo), "authorization").Inc()
		return nil, apperrors.NewAuthorization(string(models.ActionAdditionalInfo),
			"only the complaint owner may provide additional information")
	}
	oldStatus := complaint.Status

	err = s.apply(complaint, models.ActionAdditionalInfo, models.StatusPending,
		complaint.Department, complaint.AssignedUser, sql.NullString{}, actor, text)
	if err != nil {
		return nil, err
	}

	s.notifyDepartment(complaint.Department, complaint.ComplaintNumber,
		fmt.Sprintf("Complaint %s updated by customer", complaint.ComplaintNumber),
		fmt.Sprintf("The customer has provided additional information on complaint %s.", complaint.ComplaintNumber))

	return transitionResponse(complaint, oldStatus, "Additional information recorded"), nil
}

// SubmitFeedback records a satisfaction rating on a replied complaint. The
// status does not change.
func (s *LifecycleService) SubmitFeedback(
	complaintID int64,
	actor *models.Actor,
	rating int,
	remarks string,
) error {
	if rating < 1 || rating > 5 {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionFeedback), "validation").Inc()
		return apperrors.NewValidation("rating", "rating must be between 1 and 5")
	}

	complaint, err := s.guard(complaintID, actor, models.ActionFeedback)
	if err != nil {
		return err
	}
	if complaint.CustomerID != actor.CustomerID {
		metrics.LifecycleRejections.WithLabelValues(string(models.ActionFeedback), "authorization").Inc()
		return apperrors.NewAuthorization(string(models.ActionFeedback),
			"only the complaint owner may submit feedback")
	}

	fb := &models.Feedback{
		ComplaintID: complaintID,
		CustomerID:  actor.CustomerID,
		Rating:      rating,
		Remarks:     sql.NullString{String: remarks, Valid: remarks != ""},
	}
	if err := s.complaintRepo.CreateFeedback(fb); err != nil {
		return err
	}

	tx := &models.ComplaintTransaction{
		ComplaintID:  complaintID,
		Action:       models.ActionFeedback,
		FromStatus:   sql.NullString{String: string(complaint.Status), Valid: true},
		ToStatus:     complaint.Status,
		ActorLoginID: actor.LoginID,
		Remarks:      sql.NullString{String: fmt.Sprintf("Rating %d. %s", rating, remarks), Valid: true},
	}
	if err := s.complaintRepo.AppendTransaction(tx); err != nil {
		return err
	}

	s.log.Infow("feedback recorded",
		"complaint_number", complaint.ComplaintNumber,
		"rating", rating,
	)
	return nil
}

// notifyDepartment fans out to the active staff of a department.
// Notification failures never fail the transition that triggered them.
func (s *LifecycleService) notifyDepartment(department, complaintNumber, title, message string) {
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

// notifyCustomer notifies the complaint owner.
func (s *LifecycleService) notifyCustomer(complaint *models.Complaint, title, message string) {
	if s.notifier == nil {
		return
	}

	customer, err := s.userRepo.GetCustomerByID(complaint.CustomerID)
	if err != nil {
		s.log.Warnw("failed to resolve customer for notification",
			"customer_id", complaint.CustomerID, "error", err)
		return
	}

	ok := s.notifier.CreateSystemNotification(customer.LoginID, models.NotificationLifecycle,
		title, message, models.NotificationPriorityNormal)
	if !ok {
		s.log.Warnw("customer notification failed", "login_id", customer.LoginID)
	}
}

func transitionResponse(c *models.Complaint, oldStatus models.ComplaintStatus, msg string) *models.TransitionResponse {
	return &models.TransitionResponse{
		ComplaintID:     c.ComplaintID,
		ComplaintNumber: c.ComplaintNumber,
		OldStatus:       string(oldStatus),
		NewStatus:       string(c.Status),
		Message:         msg,
	}
}
