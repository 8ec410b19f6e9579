// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

// respondInternal logs the real error and answers with a generic message so
// storage details never reach the client.
func (s *Server) respondInternal(w http.ResponseWriter, err error) {
	if s.Logger != nil {
		s.Logger.WithError(err).Error("request failed")
	}
	s.respondError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON fills v from the request body. An empty body is not an error;
// v keeps its preset values, which is how absent config fields get their
// defaults.
func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
