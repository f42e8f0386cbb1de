package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Credentials is the request body for register and login
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandlers exposes the auth service over HTTP
type AuthHandlers struct {
	Service *Service
}

// NewAuthHandlers creates HTTP handlers backed by the given service
func NewAuthHandlers(service *Service) *AuthHandlers {
	return &AuthHandlers{Service: service}
}

// RegisterHandler handles POST /auth/register
func (h *AuthHandlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID, err := h.Service.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "Username and password required")
		case errors.Is(err, ErrUserExists):
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			log.Printf("register failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created",
		"userId":  userID,
	})
}

// LoginHandler handles POST /auth/login
func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := h.Service.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "Username and password required")
		case errors.Is(err, ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "Invalid credentials")
		default:
			log.Printf("login failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// VerifyHandler handles GET /auth/verify
func (h *AuthHandlers) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := BearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	claims, err := h.Service.Verify(token)
	if err != nil {
		writeError(w, http.StatusForbidden, "Invalid token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Token is valid",
		"user":    claims,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
