package handler

import (
	"encoding/json"
	"net/http"

	"railcare/models"
	"railcare/service"
	"railcare/utils"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userService   *service.UserService
	jwtSecret     []byte
	tokenTTLHours int
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *service.UserService, jwtSecret string, tokenTTLHours int) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		jwtSecret:     []byte(jwtSecret),
		tokenTTLHours: tokenTTLHours,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	user, err := h.userService.RegisterCustomer(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"login_id": user.LoginID,
		"message":  "Registration successful",
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	user, _, err := h.userService.Authenticate(req.LoginID, req.Password)
	if err != nil {
		// Credential failures surface as 401, not 403.
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid login id or password")
		return
	}

	token, err := utils.GenerateJWT(user, h.jwtSecret, h.tokenTTLHours)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusOK, models.LoginResponse{
		Token:   token,
		LoginID: user.LoginID,
		Role:    string(user.Role),
	})
}
