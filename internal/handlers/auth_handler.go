package handlers

import (
	"net/http"

	"ledger-backend/internal/models"
	"ledger-backend/internal/services"
	"ledger-backend/internal/session"
	"ledger-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Login handles the username lookup
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	authResp, err := h.Service.Login(r.Context(), req.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, authResp)
}

// Me echoes the session carried by the token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{
		"username": sess.Username,
		"name":     sess.Name,
		"role":     sess.Role.String(),
	})
}
