// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/quadfall/quadfall/internal/auth"
	"github.com/quadfall/quadfall/internal/middleware"
	"github.com/quadfall/quadfall/internal/models"
	"github.com/quadfall/quadfall/internal/users"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		s.respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := s.Users.Register(r.Context(), req.Username, req.Password)
	if errors.Is(err, users.ErrUsernameTaken) {
		s.respondError(w, http.StatusConflict, "Username already taken")
		return
	}
	if err != nil {
		s.respondInternal(w, err)
		return
	}

	if err := s.beginSession(w, r, user); err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, models.Identity{ID: user.ID, Username: user.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := s.Users.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		s.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		s.respondInternal(w, err)
		return
	}

	if err := s.beginSession(w, r, user); err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.Identity{ID: user.ID, Username: user.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.End(r.Context(), middleware.SessionToken(r)); err != nil {
		s.respondInternal(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})
	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleMe never rejects: an anonymous caller gets {"user": null} so the
// client can render the logged-out state without special-casing a 401.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ident, err := s.Sessions.Authenticate(r.Context(), middleware.SessionToken(r))
	if err != nil {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}
	s.respondJSON(w, http.StatusOK, ident)
}

func (s *Server) beginSession(w http.ResponseWriter, r *http.Request, user models.User) error {
	token, err := s.Sessions.Begin(r.Context(), models.Identity{ID: user.ID, Username: user.Username})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
