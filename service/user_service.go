package service

import (
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"railcare/apperrors"
	"railcare/models"
	"railcare/repository"
	"railcare/utils"
)

// UserService handles account registration, authentication and admin user
// management.
type UserService struct {
	repo *repository.UserRepository
	log  *zap.SugaredLogger
}

// NewUserService creates a new user service
func NewUserService(repo *repository.UserRepository, log *zap.SugaredLogger) *UserService {
	return &UserService{repo: repo, log: log}
}

// RegisterCustomer creates a customer account plus its customer profile.
func (s *UserService) RegisterCustomer(req *models.RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.LoginID) == "" {
		return nil, apperrors.NewValidation("login_id", "login id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidation("name", "name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperrors.NewValidation("email", "email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.NewValidation("password", "password must be at least 8 characters")
	}

	taken, err := s.repo.Exists(req.LoginID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewDuplicate("user", "login id "+req.LoginID+" is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		LoginID:      req.LoginID,
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       sql.NullString{String: req.Mobile, Valid: req.Mobile != ""},
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		Status:       models.UserActive,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		LoginID:     req.LoginID,
		Name:        req.Name,
		CompanyName: sql.NullString{String: req.CompanyName, Valid: req.CompanyName != ""},
		Email:       req.Email,
		Mobile:      sql.NullString{String: req.Mobile, Valid: req.Mobile != ""},
	}
	if err := s.repo.CreateCustomer(customer); err != nil {
		return nil, err
	}

	s.log.Infow("customer registered", "login_id", user.LoginID)
	return user, nil
}

// Authenticate verifies credentials and returns the actor for a token.
func (s *UserService) Authenticate(loginID, password string) (*models.User, *models.Actor, error) {
	user, err := s.repo.GetByLoginID(loginID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil, apperrors.NewAuthorization("login", "invalid credentials")
		}
		return nil, nil, err
	}
	if user.Status != models.UserActive {
		return nil, nil, apperrors.NewAuthorization("login", "account is disabled")
	}
	if err := utils.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, nil, apperrors.NewAuthorization("login", "invalid credentials")
	}

	actor := &models.Actor{
		LoginID: user.LoginID,
		Role:    user.Role,
	}
	if user.Department.Valid {
		actor.Department = user.Department.String
	}
	if user.Role == models.RoleCustomer {
		customer, err := s.repo.GetCustomerByLoginID(user.LoginID)
		if err != nil {
			return nil, nil, err
		}
		actor.CustomerID = customer.CustomerID
	}
	return user, actor, nil
}

// ResolveActor rebuilds the full actor (including customer id) from token
// claims on each request.
func (s *UserService) ResolveActor(tokenActor *models.Actor) (*models.Actor, error) {
	user, err := s.repo.GetByLoginID(tokenActor.LoginID)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserActive {
		return nil, apperrors.NewAuthorization("auth", "account is disabled")
	}

	actor := &models.Actor{LoginID: user.LoginID, Role: user.Role}
	if user.Department.Valid {
		actor.Department = user.Department.String
	}
	if user.Role == models.RoleCustomer {
		customer, err := s.repo.GetCustomerByLoginID(user.LoginID)
		if err != nil {
			return nil, err
		}
		actor.CustomerID = customer.CustomerID
	}
	return actor, nil
}

// CreateStaff creates a staff account (admin only, enforced at the route).
func (s *UserService) CreateStaff(req *models.CreateUserRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.IsStaff() {
		return nil, apperrors.NewValidation("role", "role must be admin, controller or viewer")
	}
	if !models.IsKnownDepartment(req.Department) {
		return nil, apperrors.NewValidation("department", "unknown department "+req.Department)
	}
	if strings.TrimSpace(req.LoginID) == "" {
		return nil, apperrors.NewValidation("login_id", "login id is required")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.NewValidation("password", "password must be at least 8 characters")
	}

	taken, err := s.repo.Exists(req.LoginID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewDuplicate("user", "login id "+req.LoginID+" is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		LoginID:      req.LoginID,
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       sql.NullString{String: req.Mobile, Valid: req.Mobile != ""},
		PasswordHash: hash,
		Role:         role,
		Department:   sql.NullString{String: req.Department, Valid: true},
		Status:       models.UserActive,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	s.log.Infow("staff account created", "login_id", user.LoginID, "role", user.Role, "department", req.Department)
	return user, nil
}

// UpdateStaff applies a partial update to a staff account.
func (s *UserService) UpdateStaff(loginID string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.GetByLoginID(loginID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Mobile != nil {
		user.Mobile = sql.NullString{String: *req.Mobile, Valid: *req.Mobile != ""}
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.IsStaff() {
			return nil, apperrors.NewValidation("role", "role must be admin, controller or viewer")
		}
		user.Role = role
	}
	if req.Department != nil {
		if !models.IsKnownDepartment(*req.Department) {
			return nil, apperrors.NewValidation("department", "unknown department "+*req.Department)
		}
		user.Department = sql.NullString{String: *req.Department, Valid: true}
	}
	if req.Status != nil {
		switch models.UserStatus(*req.Status) {
		case models.UserActive, models.UserDisabled:
			user.Status = models.UserStatus(*req.Status)
		default:
			return nil, apperrors.NewValidation("status", "status must be active or disabled")
		}
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListStaff returns all staff accounts.
func (s *UserService) ListStaff() ([]models.User, error) {
	return s.repo.ListStaff()
}

// DepartmentUsers builds the department → active staff login ids map used
// by forward-form dropdowns.
func (s *UserService) DepartmentUsers() (map[string][]string, error) {
	result := make(map[string][]string, len(models.Departments))
	for _, dept := range models.Departments {
		users, err := s.repo.ListActiveByDepartment(dept)
		if err != nil {
			return nil, err
		}
		loginIDs := make([]string, 0, len(users))
		for _, u := range users {
			loginIDs = append(loginIDs, u.LoginID)
		}
		result[dept] = loginIDs
	}
	return result, nil
}
