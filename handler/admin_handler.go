package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"railcare/models"
	"railcare/service"
)

// AdminHandler handles staff-management and reporting endpoints.
type AdminHandler struct {
	userService   *service.UserService
	reportService *service.ReportService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService *service.UserService, reportService *service.ReportService) *AdminHandler {
	return &AdminHandler{userService: userService, reportService: reportService}
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListStaff()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/v1/admin/users
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	user, err := h.userService.CreateStaff(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /api/v1/admin/users/{login_id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	loginID := mux.Vars(r)["login_id"]

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	user, err := h.userService.UpdateStaff(loginID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// DepartmentUsers handles GET /api/v1/admin/departments
// Serves the department → users map consumed by forward-form dropdowns.
func (h *AdminHandler) DepartmentUsers(w http.ResponseWriter, r *http.Request) {
	deptUsers, err := h.userService.DepartmentUsers()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, deptUsers)
}

// ReportSummary handles GET /api/v1/admin/reports/summary
func (h *AdminHandler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.Summary()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}
