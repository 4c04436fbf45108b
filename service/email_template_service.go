package service

import (
	"strings"

	"go.uber.org/zap"

	"railcare/apperrors"
	"railcare/models"
	"railcare/repository"
)

// EmailTemplateService manages reusable message templates and renders their
// {placeholder} tokens against user attributes. Actual mail delivery is a
// separate concern; bulk email here materializes rendered notifications.
type EmailTemplateService struct {
	repo      *repository.EmailTemplateRepository
	userRepo  *repository.UserRepository
	notifier  *NotificationService
	portalURL string
	log       *zap.SugaredLogger
}

// NewEmailTemplateService creates a new email template service
func NewEmailTemplateService(
	repo *repository.EmailTemplateRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
	portalURL string,
	log *zap.SugaredLogger,
) *EmailTemplateService {
	return &EmailTemplateService{
		repo:      repo,
		userRepo:  userRepo,
		notifier:  notifier,
		portalURL: portalURL,
		log:       log,
	}
}

// Create validates and stores a template.
func (s *EmailTemplateService) Create(req *models.EmailTemplateRequest) (*models.EmailTemplate, error) {
	if err := validateTemplateRequest(req); err != nil {
		return nil, err
	}

	t := &models.EmailTemplate{
		Name:      req.Name,
		Subject:   req.Subject,
		Content:   req.Content,
		Category:  req.Category,
		IsDefault: req.IsDefault,
	}
	if err := s.repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces a template's fields.
func (s *EmailTemplateService) Update(id int64, req *models.EmailTemplateRequest) error {
	if err := validateTemplateRequest(req); err != nil {
		return err
	}

	t := &models.EmailTemplate{
		ID:        id,
		Name:      req.Name,
		Subject:   req.Subject,
		Content:   req.Content,
		Category:  req.Category,
		IsDefault: req.IsDefault,
	}
	return s.repo.Update(t)
}

// Delete removes a template.
func (s *EmailTemplateService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// List returns every template.
func (s *EmailTemplateService) List() ([]models.EmailTemplate, error) {
	return s.repo.ListAll()
}

func validateTemplateRequest(req *models.EmailTemplateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidation("name", "template name is required")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return apperrors.NewValidation("subject", "template subject is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidation("content", "template content is required")
	}
	return nil
}

// Render substitutes the supported placeholders with the user's attributes.
// Tokens are replaced verbatim; unknown tokens are left untouched.
func (s *EmailTemplateService) Render(t *models.EmailTemplate, user *models.User) (subject, body string) {
	department := ""
	if user.Department.Valid {
		department = user.Department.String
	}

	replacer := strings.NewReplacer(
		"{name}", user.Name,
		"{login_id}", user.LoginID,
		"{email}", user.Email,
		"{department}", department,
		"{role}", string(user.Role),
		"{portal_url}", s.portalURL,
	)
	return replacer.Replace(t.Subject), replacer.Replace(t.Content)
}

// SendBulk renders the template for every user in the segment and delivers
// the result as portal notifications. Returns requested and sent counts;
// individual failures never abort the batch.
func (s *EmailTemplateService) SendBulk(req *models.BulkEmailRequest) (*models.BroadcastResponse, error) {
	t, err := s.repo.GetByID(req.TemplateID)
	if err != nil {
		return nil, err
	}

	loginIDs, err := s.notifier.ResolveSegment(models.NotificationSegment(req.Segment), req.Department, req.LoginID)
	if err != nil {
		return nil, err
	}

	sent := 0
	for _, loginID := range loginIDs {
		user, err := s.userRepo.GetByLoginID(loginID)
		if err != nil {
			s.log.Warnw("bulk email recipient lookup failed", "login_id", loginID, "error", err)
			continue
		}

		subject, body := s.Render(t, user)
		if s.notifier.CreateSystemNotification(loginID, models.NotificationBroadcast,
			subject, body, models.NotificationPriorityNormal) {
			sent++
		}
	}

	s.log.Infow("bulk email dispatched", "template_id", t.ID, "requested", len(loginIDs), "sent", sent)
	return &models.BroadcastResponse{
		Requested: len(loginIDs),
		Sent:      sent,
		Message:   "Bulk email dispatched",
	}, nil
}
