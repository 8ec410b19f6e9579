// internal/handlers/server.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/quadfall/quadfall/internal/auth"
	"github.com/quadfall/quadfall/internal/chat"
	"github.com/quadfall/quadfall/internal/lobby"
	"github.com/quadfall/quadfall/internal/middleware"
	"github.com/quadfall/quadfall/internal/plays"
	"github.com/quadfall/quadfall/internal/settings"
	"github.com/quadfall/quadfall/internal/users"
)

// Server bundles every dependency the HTTP layer needs. It owns no business
// state of its own; all of that lives behind the services and stores.
type Server struct {
	Logger        *logrus.Logger
	Sessions      *auth.Sessions
	Users         *users.Service
	Lobby         *lobby.Service
	Chat          *chat.Channel
	Plays         plays.Store
	Settings      settings.Store
	AllowedOrigin string
}

// Routes builds the full handler chain: CORS (answers preflights), request
// logging, then the router. Session-scoped routes sit behind RequireSession
// so no handler body runs unauthenticated.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	authed := r.NewRoute().Subrouter()
	authed.Use(middleware.RequireSession(s.Sessions))

	authed.HandleFunc("/settings", s.handleGetControls).Methods(http.MethodGet)
	authed.HandleFunc("/settings", s.handlePutControls).Methods(http.MethodPut)
	authed.HandleFunc("/game-settings", s.handleGetGameSettings).Methods(http.MethodGet)
	authed.HandleFunc("/game-settings", s.handlePutGameSettings).Methods(http.MethodPut)

	authed.HandleFunc("/plays", s.handleListPlays).Methods(http.MethodGet)
	authed.HandleFunc("/plays", s.handleCreatePlay).Methods(http.MethodPost)
	authed.HandleFunc("/plays/{id:[0-9]+}", s.handleGetPlay).Methods(http.MethodGet)

	authed.HandleFunc("/lobby/games", s.handleListGames).Methods(http.MethodGet)
	authed.HandleFunc("/lobby/games", s.handleCreateGame).Methods(http.MethodPost)
	authed.HandleFunc("/lobby/games/{id:[0-9]+}/join", s.handleJoinGame).Methods(http.MethodPost)
	authed.HandleFunc("/lobby/chat", s.handleListChat).Methods(http.MethodGet)
	authed.HandleFunc("/lobby/chat", s.handlePostChat).Methods(http.MethodPost)

	var h http.Handler = r
	if s.Logger != nil {
		h = middleware.Log(s.Logger)(h)
	}
	return middleware.CORS(s.AllowedOrigin)(h)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, http.StatusNotFound, "Not found")
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
