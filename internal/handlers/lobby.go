// internal/handlers/lobby.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quadfall/quadfall/internal/lobby"
	"github.com/quadfall/quadfall/internal/middleware"
	"github.com/quadfall/quadfall/internal/models"
)

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.Lobby.ListOpen(r.Context())
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	if games == nil {
		games = []models.LobbyGame{}
	}
	s.respondJSON(w, http.StatusOK, games)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	// Absent fields keep their defaults; unknown fields are ignored.
	config := models.DefaultGameConfig()
	if err := decodeJSON(r, &config); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	game, err := s.Lobby.Create(r.Context(), ident, config)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, game)
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}

	game, err := s.Lobby.Join(r.Context(), id, ident)
	switch {
	case errors.Is(err, lobby.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, lobby.ErrAlreadyClaimed):
		s.respondError(w, http.StatusBadRequest, "Game already has a guest")
	case errors.Is(err, lobby.ErrSelfJoin):
		s.respondError(w, http.StatusBadRequest, "Cannot join your own game")
	case err != nil:
		s.respondInternal(w, err)
	default:
		s.respondJSON(w, http.StatusOK, game)
	}
}
