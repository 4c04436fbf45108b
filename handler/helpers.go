package handler

import (
	"encoding/json"
	"net/http"

	"railcare/apperrors"
	"railcare/models"
)

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	respondWithJSON(w, statusCode, models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	})
}

// respondServiceError maps the typed error taxonomy to HTTP statuses.
// Anything outside the taxonomy is a 500 with the message string only.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		respondWithError(w, http.StatusBadRequest, "Validation error", err.Error())
	case apperrors.IsAuthorization(err):
		respondWithError(w, http.StatusForbidden, "Forbidden", err.Error())
	case apperrors.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, "Not found", err.Error())
	case apperrors.IsDuplicate(err):
		respondWithError(w, http.StatusConflict, "Duplicate", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
