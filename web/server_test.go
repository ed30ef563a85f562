package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectfour-local/config"
	"connectfour-local/engine"
	"connectfour-local/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	names := engine.GameConfig{Player1Name: "Ada", Player2Name: "Bob"}
	return NewServer(config.DefaultConfig.Web, names, zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, s *Server) SessionResponse {
	t.Helper()
	w := doRequest(t, s, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func postMove(t *testing.T, s *Server, id string, column int) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]int{"column": column})
	require.NoError(t, err)
	return doRequest(t, s, http.MethodPost, "/api/sessions/"+id+"/moves", string(body))
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestServer(t)
	created := createSession(t, s)

	_, err := uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, [2]string{"Ada", "Bob"}, created.Players)
	assert.Equal(t, types.InProgress, created.State.Phase.Kind)
	assert.Equal(t, types.Player1, created.State.CurrentPlayer)
	assert.Empty(t, created.Message)

	w := doRequest(t, s, http.MethodGet, "/api/sessions/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Contains(t, w.Body.String(), `"kind":"in_progress"`)

	w = doRequest(t, s, http.MethodGet, "/api/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveAndOutcome(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s).ID

	w := postMove(t, s, id, 3)
	require.Equal(t, http.StatusOK, w.Code)
	var resp MoveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.Position{Row: 5, Column: 3}, resp.Outcome.Position)
	assert.Equal(t, types.Player1, resp.Outcome.Player)
	assert.Equal(t, types.Player2, resp.State.CurrentPlayer)
	assert.Equal(t, types.Player1, resp.State.Board[5][3])
}

func TestMoveRejectsBadColumns(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s).ID

	for _, body := range []string{`{"column": 7}`, `{"column": -1}`, `{"column": "x"}`, `{}`, `not json`} {
		w := doRequest(t, s, http.MethodPost, "/api/sessions/"+id+"/moves", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := postMove(t, s, "missing", 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveConflicts(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s).ID

	for i := 0; i < 6; i++ {
		require.Equal(t, http.StatusOK, postMove(t, s, id, 2).Code)
	}
	w := postMove(t, s, id, 2)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), engine.ReasonColumnFull)

	doRequest(t, s, http.MethodPost, "/api/sessions/"+id+"/reset", "")
	for _, col := range []int{0, 6, 1, 6, 2, 6, 3} {
		require.Equal(t, http.StatusOK, postMove(t, s, id, col).Code)
	}
	w = postMove(t, s, id, 4)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), engine.ReasonGameOver)

	w = doRequest(t, s, http.MethodGet, "/api/sessions/"+id, "")
	var got SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, types.Phase{Kind: types.Won, Winner: types.Player1}, got.State.Phase)
	assert.Equal(t, "🏆  Player 1 wins!  🏆", got.Message)
	assert.Len(t, got.State.WinningLine, 4)
}

func TestPreview(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s).ID

	var resp PreviewResponse
	w := doRequest(t, s, http.MethodGet, "/api/sessions/"+id+"/preview/4", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, PreviewResponse{Column: 4, Row: 5, OK: true}, resp)

	for i := 0; i < 6; i++ {
		postMove(t, s, id, 4)
	}
	w = doRequest(t, s, http.MethodGet, "/api/sessions/"+id+"/preview/4", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)

	for _, col := range []string{"7", "-1", "d"} {
		w = doRequest(t, s, http.MethodGet, "/api/sessions/"+id+"/preview/"+col, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, col)
	}
}

func TestResetAndDelete(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s).ID
	postMove(t, s, id, 0)

	w := doRequest(t, s, http.MethodPost, "/api/sessions/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0, got.State.MoveNumber)
	assert.Equal(t, types.NoPlayer, got.State.Board[5][0])

	assert.Equal(t, http.StatusNoContent, doRequest(t, s, http.MethodDelete, "/api/sessions/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, s, http.MethodGet, "/api/sessions/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, s, http.MethodDelete, "/api/sessions/"+id, "").Code)
}

func TestStaticPage(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<table id=\"board\">")

	w = doRequest(t, s, http.MethodGet, "/static/app.js", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new WebSocket")
}

func TestPruneIdle(t *testing.T) {
	s := newTestServer(t)
	stale := s.store.Create(s.newEngine)
	fresh := s.store.Create(s.newEngine)

	now := time.Now()
	stale.mu.Lock()
	stale.lastSeen = now.Add(-2 * maxIdle)
	stale.mu.Unlock()

	s.prune(now)
	_, ok := s.store.Get(stale.ID)
	assert.False(t, ok)
	_, ok = s.store.Get(fresh.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, s.store.Len())
}

type wsMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func dial(t *testing.T, ts *httptest.Server, id string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + id
	return websocket.DefaultDialer.Dial(url, header)
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketNotifications(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	id := createSession(t, s).ID
	conn, _, err := dial(t, ts, id, nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	require.Equal(t, ActionState, msg.Action)
	assert.Equal(t, 1, s.hub.Clients(id))

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "preview", "column": 3}))
	msg = readMessage(t, conn)
	require.Equal(t, ActionPreview, msg.Action)
	var preview PreviewResponse
	require.NoError(t, json.Unmarshal(msg.Data, &preview))
	assert.Equal(t, PreviewResponse{Column: 3, Row: 5, OK: true}, preview)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "move", "column": 3}))
	msg = readMessage(t, conn)
	require.Equal(t, ActionPiecePlaced, msg.Action)
	var placed types.Placement
	require.NoError(t, json.Unmarshal(msg.Data, &placed))
	assert.Equal(t, types.Placement{Position: types.Position{Row: 5, Column: 3}, Player: types.Player1}, placed)
	assert.Equal(t, ActionTurnChanged, readMessage(t, conn).Action)

	// Moves made over REST are pushed to the page too.
	require.Equal(t, http.StatusOK, postMove(t, s, id, 0).Code)
	assert.Equal(t, ActionPiecePlaced, readMessage(t, conn).Action)
	assert.Equal(t, ActionTurnChanged, readMessage(t, conn).Action)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "move", "column": 9}))
	assert.Equal(t, ActionError, readMessage(t, conn).Action)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "reset"}))
	msg = readMessage(t, conn)
	require.Equal(t, ActionReset, msg.Action)
	var state types.BoardState
	require.NoError(t, json.Unmarshal(msg.Data, &state))
	assert.Equal(t, 0, state.MoveNumber)
}

func TestWebSocketGameEnd(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	id := createSession(t, s).ID
	for _, col := range []int{0, 6, 1, 6, 2, 6} {
		require.Equal(t, http.StatusOK, postMove(t, s, id, col).Code)
	}

	conn, _, err := dial(t, ts, id, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, ActionState, readMessage(t, conn).Action)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "move", "column": 3}))
	assert.Equal(t, ActionPiecePlaced, readMessage(t, conn).Action)
	msg := readMessage(t, conn)
	require.Equal(t, ActionGameWon, msg.Action)
	assert.Contains(t, string(msg.Data), `"winner":1`)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "move", "column": 4}))
	msg = readMessage(t, conn)
	require.Equal(t, ActionInvalidMove, msg.Action)
	assert.Contains(t, string(msg.Data), engine.ReasonGameOver)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	id := createSession(t, s).ID
	_, resp, err := dial(t, ts, id, http.Header{"Origin": []string{"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, resp, err = dial(t, ts, "missing", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteClosesWebSocket(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	id := createSession(t, s).ID
	conn, _, err := dial(t, ts, id, nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)

	doRequest(t, s, http.MethodDelete, "/api/sessions/"+id, "")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, s.hub.Clients(id))
}
