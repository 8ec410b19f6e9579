// internal/handlers/chat.go
package handlers

import (
	"net/http"

	"github.com/quadfall/quadfall/internal/chat"
	"github.com/quadfall/quadfall/internal/middleware"
	"github.com/quadfall/quadfall/internal/models"
)

func (s *Server) handleListChat(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.Chat.Recent(r.Context(), chat.DefaultWindow)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	s.respondJSON(w, http.StatusOK, msgs)
}

func (s *Server) handlePostChat(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	msg, err := s.Chat.Post(r.Context(), ident, req.Message)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, msg)
}
