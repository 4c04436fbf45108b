package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xeipuuv/gojsonschema"

	"railcare/middleware"
	"railcare/models"
	"railcare/service"
)

// createComplaintSchema validates the submission payload before it reaches
// the service. The 20-character minimum on description is a form-level rule:
// a shorter description never creates a complaint row.
var createComplaintSchema = gojsonschema.NewGoLoader(map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"type":        map[string]interface{}{"type": "string", "minLength": 1},
		"subtype":     map[string]interface{}{"type": "string", "minLength": 1},
		"description": map[string]interface{}{"type": "string", "minLength": 20},
		"shed_id":     map[string]interface{}{"type": "integer", "minimum": 1},
		"fnr":         map[string]interface{}{"type": "string"},
		"priority":    map[string]interface{}{"type": "string", "enum": []string{"normal", "medium", "high", "critical"}},
	},
	"required": []string{"type", "subtype", "description", "shed_id"},
})

// ComplaintHandler handles HTTP requests for complaints and their lifecycle
// actions.
type ComplaintHandler struct {
	service   *service.ComplaintService
	lifecycle *service.LifecycleService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(svc *service.ComplaintService, lifecycle *service.LifecycleService) *ComplaintHandler {
	return &ComplaintHandler{service: svc, lifecycle: lifecycle}
}

// Create handles POST /api/v1/complaints
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to read request body")
		return
	}

	result, err := gojsonschema.Validate(createComplaintSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}
	if !result.Valid() {
		msg := "invalid submission"
		if errs := result.Errors(); len(errs) > 0 {
			if errs[0].Field() == "description" {
				msg = "description must be at least 20 characters"
			} else {
				msg = errs[0].Field() + ": " + errs[0].Description()
			}
		}
		respondWithError(w, http.StatusBadRequest, "Validation error", msg)
		return
	}

	var req models.CreateComplaintRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	response, err := h.service.Create(&req, actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, response)
}

// List handles GET /api/v1/complaints
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return
	}

	summaries, err := h.service.ListForActor(actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summaries)
}

// Get handles GET /api/v1/complaints/{id}
func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	complaint, err := h.service.GetForActor(complaintID, actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaint)
}

// History handles GET /api/v1/complaints/{id}/history
func (h *ComplaintHandler) History(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	timeline, err := h.service.Timeline(complaintID, actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, timeline)
}

// Forward handles POST /api/v1/complaints/{id}/forward
func (h *ComplaintHandler) Forward(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req models.ForwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	response, err := h.lifecycle.Forward(complaintID, actor, req.ToDepartment, req.ToUser, req.Remarks)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}

// Close handles POST /api/v1/complaints/{id}/close
func (h *ComplaintHandler) Close(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req models.CloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	response, err := h.lifecycle.Close(complaintID, actor, req.ActionTaken, req.Remarks)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}

// Approve handles POST /api/v1/complaints/{id}/approve
func (h *ComplaintHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	response, err := h.lifecycle.Approve(complaintID, actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}

// Revert handles POST /api/v1/complaints/{id}/revert
func (h *ComplaintHandler) Revert(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req models.RevertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	response, err := h.lifecycle.Revert(complaintID, actor, req.RejectionReason)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}

// Reply handles POST /api/v1/complaints/{id}/reply
func (h *ComplaintHandler) Reply(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req models.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	response, err := h.lifecycle.Reply(complaintID, actor, req.Reply)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}

// AdditionalInfo handles POST /api/v1/complaints/{id}/additional-info
func (h *ComplaintHandler) AdditionalInfo(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req models.AdditionalInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	response, err := h.lifecycle.ProvideAdditionalInfo(complaintID, actor, req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, response)
}

// Feedback handles POST /api/v1/complaints/{id}/feedback
func (h *ComplaintHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	actor, complaintID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	if err := h.lifecycle.SubmitFeedback(complaintID, actor, req.Rating, req.Remarks); err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Feedback recorded"})
}

func (h *ComplaintHandler) actorAndID(w http.ResponseWriter, r *http.Request) (*models.Actor, int64, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Actor not found in context")
		return nil, 0, false
	}

	complaintID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return nil, 0, false
	}
	return actor, complaintID, true
}
