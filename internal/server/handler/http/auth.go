// Package http provides HTTP handlers for user registration, login,
// and identity resolution.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/taskboard/internal/middleware"
	"github.com/atinyakov/taskboard/internal/models"
	"github.com/atinyakov/taskboard/internal/shared"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user. Returns shared.ErrEmailExists when
	// the email is already taken.
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	// Login verifies the credentials and returns a session token plus
	// the user record, or shared.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes a {"message": ...} JSON body with the given status code.
func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

// Register handles user registration requests.
// It expects a JSON body with non-empty "name", "email" and "password"
// fields. A duplicate email is rejected with 400; on success the user is
// stored and 201 is returned. Registration does not issue a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Name == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	_, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrEmailExists) {
			writeMessage(w, http.StatusBadRequest, "email already registered")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusCreated, "user registered successfully")
}

// Login handles login requests.
// On success it responds with the session token and the user record.
// An unknown email and a wrong password both yield the same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user attached to the request context by
// the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
