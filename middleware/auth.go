package middleware

import (
	"encoding/json"
	"net/http"

	"taskboard/internal/auth"
)

// Middleware holds dependencies shared by the HTTP middleware chain
type Middleware struct {
	Auth *auth.Service
}

// NewMiddleware creates a new middleware set
func NewMiddleware(authService *auth.Service) *Middleware {
	return &Middleware{Auth: authService}
}

// AuthMiddleware gates a handler behind bearer-token verification. Verified
// claims are attached to the request context for the downstream handler.
func (m *Middleware) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := m.Auth.Verify(token)
		if err != nil {
			writeAuthError(w, http.StatusForbidden, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
	})
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
