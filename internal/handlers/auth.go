package handlers

import (
	"log"
	"net/http"

	"eventbroker/internal/middleware"
	"eventbroker/internal/models"
	"eventbroker/internal/services"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	auth     *services.AuthService
	sessions *middleware.AuthMiddleware
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, sessions *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.sessions.SaveSessionToken(w, r, resp.SessionToken); err != nil {
		log.Printf("failed to save session cookie: %v", err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    resp.User,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.sessions.SaveSessionToken(w, r, resp.SessionToken); err != nil {
		log.Printf("failed to save session cookie: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    resp.User,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessions.ClearSessionToken(w, r)
	if err != nil {
		log.Printf("failed to clear session cookie: %v", err)
	}
	if token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			log.Printf("failed to delete session: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
