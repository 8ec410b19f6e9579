// internal/handlers/settings.go
package handlers

import (
	"net/http"

	"github.com/quadfall/quadfall/internal/middleware"
	"github.com/quadfall/quadfall/internal/models"
)

func (s *Server) handleGetControls(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	current, err := s.Settings.Controls(r.Context(), ident.ID)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, current)
}

func (s *Server) handlePutControls(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	current, err := s.Settings.Controls(r.Context(), ident.ID)
	if err != nil {
		s.respondInternal(w, err)
		return
	}

	var req models.UserSettings
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	// A body without "controls" leaves the stored value alone.
	if req.Controls != nil {
		current.Controls = req.Controls
	}

	if err := s.Settings.SetControls(r.Context(), ident.ID, current); err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, current)
}

func (s *Server) handleGetGameSettings(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	current, err := s.Settings.GameSettings(r.Context(), ident.ID)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, current)
}

// handlePutGameSettings patches: decoding the body onto the current values
// means fields missing from the request keep what was stored.
func (s *Server) handlePutGameSettings(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	current, err := s.Settings.GameSettings(r.Context(), ident.ID)
	if err != nil {
		s.respondInternal(w, err)
		return
	}

	if err := decodeJSON(r, &current); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.Settings.SetGameSettings(r.Context(), ident.ID, current); err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, current)
}
