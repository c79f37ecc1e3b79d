package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"gamecafe/backend/services/coordinator/internal/auth"
)

// AuthHandler exposes kiosk login.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler builds the handler.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Username, req.Password, req.StationID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, LoginResponse{
			Success: false,
			Message: "Invalid username or password",
		})
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success:        true,
		UserID:         user.ID,
		Username:       user.Username,
		AccountBalance: user.AccountBalance,
		SessionToken:   token,
		Message:        "Login successful",
	})
}
