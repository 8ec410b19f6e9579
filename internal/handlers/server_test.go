// internal/handlers/server_test.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadfall/quadfall/internal/auth"
	"github.com/quadfall/quadfall/internal/chat"
	"github.com/quadfall/quadfall/internal/lobby"
	"github.com/quadfall/quadfall/internal/plays"
	"github.com/quadfall/quadfall/internal/settings"
	"github.com/quadfall/quadfall/internal/users"
)

const testOrigin = "http://localhost:5179"

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	signer, err := auth.NewSigner(time.Hour)
	require.NoError(t, err)

	srv := &Server{
		Sessions:      auth.NewSessions(signer, auth.NewMemoryStore()),
		Users:         users.NewService(users.NewMemoryStore()),
		Lobby:         lobby.NewService(lobby.NewMemoryStore()),
		Chat:          chat.NewChannel(chat.NewMemoryStore()),
		Plays:         plays.NewMemoryStore(),
		Settings:      settings.NewMemoryStore(),
		AllowedOrigin: testOrigin,
	}
	return &testServer{t: t, handler: srv.Routes()}
}

func (ts *testServer) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	ts.t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

// register creates an account over HTTP and returns its session cookie.
func (ts *testServer) register(username string) *http.Cookie {
	ts.t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":"secret"}`, username)
	w := ts.do(http.MethodPost, "/auth/register", body, nil)
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	ts.t.Fatalf("no session cookie in register response")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/auth/register", `{"username":"  ","password":"pw"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/auth/register", `{"username":"alice","password":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.register("alice")

	w := ts.do(http.MethodPost, "/auth/register", `{"username":"alice","password":"other"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Equal(t, "Username already taken", resp["error"])
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	ts.register("alice")

	// Anonymous /auth/me reports no user rather than failing.
	w := ts.do(http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var anon map[string]interface{}
	decodeBody(t, w, &anon)
	assert.Nil(t, anon["user"])

	w = ts.do(http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/auth/login", `{"username":"alice","password":"secret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	w = ts.do(http.MethodGet, "/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]interface{}
	decodeBody(t, w, &me)
	assert.Equal(t, "alice", me["username"])
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register("alice")

	w := ts.do(http.MethodPost, "/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/lobby/games", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnauthenticatedRejection(t *testing.T) {
	ts := newTestServer(t)

	endpoints := []struct {
		method, path string
	}{
		{http.MethodGet, "/lobby/games"},
		{http.MethodPost, "/lobby/games"},
		{http.MethodPost, "/lobby/games/1/join"},
		{http.MethodGet, "/lobby/chat"},
		{http.MethodPost, "/lobby/chat"},
		{http.MethodGet, "/settings"},
		{http.MethodPut, "/settings"},
		{http.MethodGet, "/game-settings"},
		{http.MethodPut, "/game-settings"},
		{http.MethodGet, "/plays"},
		{http.MethodPost, "/plays"},
		{http.MethodGet, "/plays/1"},
	}
	for _, ep := range endpoints {
		w := ts.do(ep.method, ep.path, "", nil)
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", ep.method, ep.path)
	}

	// The rejected chat post must have left no trace.
	ts.do(http.MethodPost, "/lobby/chat", `{"message":"ghost"}`, nil)
	cookie := ts.register("alice")
	w := ts.do(http.MethodGet, "/lobby/chat", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register("alice")

	w := ts.do(http.MethodDelete, "/lobby/games", "", cookie)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Equal(t, "Method not allowed", resp["error"])
}

func TestCORSPreflightAndHeaders(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodOptions, "/lobby/games", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	h := w.Header()
	assert.Equal(t, testOrigin, h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", h.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET, POST, PUT, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Contains(t, h.Get("Access-Control-Allow-Headers"), "X-CSRFToken")
	assert.Equal(t, "86400", h.Get("Access-Control-Max-Age"))

	// Non-preflight responses carry the origin headers too.
	w = ts.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestLobbyCreateListJoinFlow(t *testing.T) {
	ts := newTestServer(t)
	host := ts.register("host")
	guest := ts.register("guest")
	third := ts.register("third")

	w := ts.do(http.MethodPost, "/lobby/games", `{"boardHeight":24,"gameMode":"b"}`, host)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	decodeBody(t, w, &created)
	assert.Equal(t, "host", created["host"])
	assert.Equal(t, float64(24), created["boardHeight"])
	assert.Equal(t, "b", created["gameMode"])
	// Omitted fields defaulted.
	assert.Equal(t, float64(1), created["startLevel"])
	assert.Equal(t, "normal", created["gravityMode"])
	assert.NotEmpty(t, created["createdAt"])
	gameID := int64(created["id"].(float64))

	w = ts.do(http.MethodGet, "/lobby/games", "", guest)
	require.Equal(t, http.StatusOK, w.Code)
	var open []map[string]interface{}
	decodeBody(t, w, &open)
	require.Len(t, open, 1)
	assert.Equal(t, "host", open[0]["host"])

	// Host cannot take their own open slot.
	w = ts.do(http.MethodPost, fmt.Sprintf("/lobby/games/%d/join", gameID), "", host)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var selfErr map[string]string
	decodeBody(t, w, &selfErr)
	assert.Equal(t, "Cannot join your own game", selfErr["error"])

	w = ts.do(http.MethodPost, fmt.Sprintf("/lobby/games/%d/join", gameID), "", guest)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Claimed games answer the same way to everyone, host included.
	for _, c := range []*http.Cookie{guest, third, host} {
		w = ts.do(http.MethodPost, fmt.Sprintf("/lobby/games/%d/join", gameID), "", c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		decodeBody(t, w, &resp)
		assert.Equal(t, "Game already has a guest", resp["error"])
	}

	// The claimed game left the open list.
	w = ts.do(http.MethodGet, "/lobby/games", "", guest)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = ts.do(http.MethodPost, "/lobby/games/9999/join", "", guest)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatPostAndRead(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register("alice")
	bob := ts.register("bob")

	w := ts.do(http.MethodPost, "/lobby/chat", `{"message":"hi there"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	var posted map[string]interface{}
	decodeBody(t, w, &posted)
	assert.Equal(t, "alice", posted["username"])
	assert.Equal(t, "hi there", posted["message"])

	w = ts.do(http.MethodPost, "/lobby/chat", `{"message":"hey"}`, bob)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodGet, "/lobby/chat", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	var msgs []map[string]interface{}
	decodeBody(t, w, &msgs)
	require.Len(t, msgs, 2)
	assert.Equal(t, "alice", msgs[0]["username"])
	assert.Equal(t, "bob", msgs[1]["username"])
}

func TestGameSettingsPatch(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register("alice")

	w := ts.do(http.MethodGet, "/game-settings", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var defaults map[string]interface{}
	decodeBody(t, w, &defaults)
	assert.Equal(t, float64(20), defaults["boardHeight"])
	assert.Equal(t, float64(1), defaults["playerCount"])

	w = ts.do(http.MethodPut, "/game-settings", `{"startLevel":5,"manualShake":true}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/game-settings", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	decodeBody(t, w, &got)
	assert.Equal(t, float64(5), got["startLevel"])
	assert.Equal(t, true, got["manualShake"])
	// Untouched fields survive the patch.
	assert.Equal(t, float64(20), got["boardHeight"])
	assert.Equal(t, "a", got["gameMode"])
}

func TestUserSettingsControls(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register("alice")

	w := ts.do(http.MethodGet, "/settings", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"controls":{}}`, w.Body.String())

	w = ts.do(http.MethodPut, "/settings", `{"controls":{"left":"KeyA","right":"KeyD"}}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/settings", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"controls":{"left":"KeyA","right":"KeyD"}}`, w.Body.String())

	// A body without "controls" leaves the stored value alone.
	w = ts.do(http.MethodPut, "/settings", `{}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"controls":{"left":"KeyA","right":"KeyD"}}`, w.Body.String())
}

func TestPlaysFlow(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register("alice")
	bob := ts.register("bob")

	body := `{"score":12345,"level":9,"lines":90,"gameMode":"b","replay":{"seed":7,"inputs":[1,2,3]}}`
	w := ts.do(http.MethodPost, "/plays", body, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	decodeBody(t, w, &created)
	assert.Equal(t, float64(12345), created["score"])
	// Summaries never carry the replay blob.
	assert.NotContains(t, created, "replay")
	playID := int64(created["id"].(float64))

	w = ts.do(http.MethodGet, "/plays", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	decodeBody(t, w, &list)
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "replay")

	w = ts.do(http.MethodGet, fmt.Sprintf("/plays/%d", playID), "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	var detail map[string]interface{}
	decodeBody(t, w, &detail)
	require.Contains(t, detail, "replay")
	replay := detail["replay"].(map[string]interface{})
	assert.Equal(t, float64(7), replay["seed"])

	// Another user's play is indistinguishable from a missing one.
	w = ts.do(http.MethodGet, fmt.Sprintf("/plays/%d", playID), "", bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodGet, "/plays", "", bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
