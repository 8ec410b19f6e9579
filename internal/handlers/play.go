// internal/handlers/play.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quadfall/quadfall/internal/middleware"
	"github.com/quadfall/quadfall/internal/models"
	"github.com/quadfall/quadfall/internal/plays"
)

func (s *Server) handleListPlays(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	list, err := s.Plays.ListRecent(r.Context(), ident.ID, plays.SummaryLimit)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	if list == nil {
		list = []models.Play{}
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreatePlay(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	play := models.Play{
		GameMode:    "a",
		GravityMode: "normal",
		BoardHeight: 20,
		StartLevel:  1,
	}
	if err := decodeJSON(r, &play); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	play.UserID = ident.ID

	stored, err := s.Plays.Insert(r.Context(), play)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, stored.Summary())
}

func (s *Server) handleGetPlay(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}

	play, err := s.Plays.GetOwned(r.Context(), id, ident.ID)
	if errors.Is(err, plays.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, play)
}
