package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"driverprofilebot/pkg/security"
	"driverprofilebot/pkg/state"

	"github.com/looplab/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type idleFactory struct{}

func (idleFactory) NewSurveyMachine() *fsm.FSM {
	return fsm.NewFSM("idle", fsm.Events{}, fsm.Callbacks{})
}

func newTestServer() (*Server, *security.Guard) {
	guard := security.NewGuard(security.DefaultLimits(), zap.NewNop())
	sessions := state.NewStore(idleFactory{}, zap.NewNop())
	return NewServer(guard, sessions, zap.NewNop()), guard
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer()

	w := doRequest(s, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestUserStatsNotTracked(t *testing.T) {
	s, _ := newTestServer()

	w := doRequest(s, http.MethodGet, "/security/users/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserStatsAfterActivity(t *testing.T) {
	s, guard := newTestServer()
	guard.Allow(security.Event{UserID: 42, Text: "привіт"})

	w := doRequest(s, http.MethodGet, "/security/users/42")
	require.Equal(t, http.StatusOK, w.Code)

	var stats security.UserStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(42), stats.UserID)
	assert.Equal(t, 1, stats.MessageCount)
}

func TestWhitelistRoundTrip(t *testing.T) {
	s, guard := newTestServer()
	guard.Allow(security.Event{UserID: 42, Text: "привіт"})

	w := doRequest(s, http.MethodPut, "/security/whitelist/42")
	require.Equal(t, http.StatusOK, w.Code)

	stats, ok := guard.Stats(42)
	require.True(t, ok)
	assert.True(t, stats.Whitelisted)

	w = doRequest(s, http.MethodDelete, "/security/whitelist/42")
	require.Equal(t, http.StatusOK, w.Code)

	stats, _ = guard.Stats(42)
	assert.False(t, stats.Whitelisted)
}

func TestBlacklistBlocksUser(t *testing.T) {
	s, guard := newTestServer()

	w := doRequest(s, http.MethodPut, "/security/blacklist/42")
	require.Equal(t, http.StatusOK, w.Code)

	verdict := guard.Allow(security.Event{UserID: 42, Text: "привіт"})
	assert.False(t, verdict.Allowed)
}

func TestInvalidUserID(t *testing.T) {
	s, _ := newTestServer()

	for _, path := range []string{
		"/security/users/abc",
		"/security/users/-5",
	} {
		w := doRequest(s, http.MethodGet, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
