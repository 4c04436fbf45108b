package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"railcare/models"
	"railcare/service"
)

// EmailTemplateHandler handles HTTP requests for email templates and bulk
// email dispatch.
type EmailTemplateHandler struct {
	service *service.EmailTemplateService
}

// NewEmailTemplateHandler creates a new email template handler
func NewEmailTemplateHandler(svc *service.EmailTemplateService) *EmailTemplateHandler {
	return &EmailTemplateHandler{service: svc}
}

// List handles GET /api/v1/admin/email-templates
func (h *EmailTemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, templates)
}

// Create handles POST /api/v1/admin/email-templates
func (h *EmailTemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EmailTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	template, err := h.service.Create(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, template)
}

// Update handles PUT /api/v1/admin/email-templates/{id}
func (h *EmailTemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid template ID")
		return
	}

	var req models.EmailTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	if err := h.service.Update(id, &req); err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Template updated"})
}

// Delete handles DELETE /api/v1/admin/email-templates/{id}
func (h *EmailTemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid template ID")
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Template deleted"})
}

// BulkEmail handles POST /api/v1/admin/bulk-email
func (h *EmailTemplateHandler) BulkEmail(w http.ResponseWriter, r *http.Request) {
	var req models.BulkEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	response, err := h.service.SendBulk(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}
