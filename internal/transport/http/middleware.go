package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"portal-learning/internal/domain"
)

// authedHandler receives the authenticated caller alongside the request.
type authedHandler func(w http.ResponseWriter, r *http.Request, user domain.User)

func (a *API) requireUser(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.auth.Authenticate(r.Context(), sessionToken(r))
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r, user)
	}
}

func (a *API) requireAdmin(next authedHandler) http.HandlerFunc {
	return a.requireUser(func(w http.ResponseWriter, r *http.Request, user domain.User) {
		if user.Role != domain.RoleAdmin {
			writeError(w, domain.ErrForbidden)
			return
		}
		next(w, r, user)
	})
}

// sessionToken pulls the opaque session token from the Authorization header,
// falling back to the session cookie (browsers) and the token query parameter
// (websocket dials, which cannot set headers).
func sessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}
	return r.URL.Query().Get("token")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

type errorPayload struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidChoice):
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorPayload{Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorPayload{Message: err.Error()})
	case errors.Is(err, domain.ErrScenarioNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrNoScenarios),
		errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorPayload{Message: err.Error()})
	case errors.Is(err, domain.ErrSessionExpired):
		writeJSON(w, http.StatusGone, errorPayload{Message: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorPayload{Message: "internal error"})
	}
}
