package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/connect4-go/internal/config"
	"github.com/lgbarn/connect4-go/internal/output"
	"github.com/lgbarn/connect4-go/internal/search"
	"github.com/lgbarn/connect4-go/internal/server"
	"github.com/lgbarn/connect4-go/internal/storage"
	"github.com/lgbarn/connect4-go/internal/testutil"
)

func testConfig() *config.Config {
	cfg := config.NewConfigBuilder().
		WithDepth(3).
		WithLog(io.Discard).
		WithVerbosity(0).
		Build()
	cfg.Server.MaxDepth = 3
	return cfg
}

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	return newTestServerWithConfig(t, testConfig(), store)
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config, store *storage.Store) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(server.New(cfg, store, "test-version").Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := get(t, ts, "/api/health")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, resp.Header.Get("Content-Type"), "application/json")

	var health server.HealthResponse
	decodeBody(t, resp, &health)
	testutil.AssertEqual(t, health, server.HealthResponse{Status: "ok", Version: "test-version"})
}

func TestPosition(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := post(t, ts, "/api/position", `{"moves":"`+testutil.VerticalWin+`"}`)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

	var pos output.PositionJSON
	decodeBody(t, resp, &pos)
	testutil.AssertEqual(t, pos.Moves, testutil.VerticalWin)
	testutil.AssertEqual(t, pos.Status, "won")
	testutil.AssertEqual(t, pos.Winner, "first")
	testutil.AssertEqual(t, pos.ToMove, "")
	testutil.AssertEqual(t, len(pos.ValidMoves), 0)
}

func TestPosition_Errors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"bad notation", `{"moves":"39"}`, "invalid move notation"},
		{"full column", `{"moves":"0000000"}`, "invalid move"},
		{"bad payload", `{"moves":`, "invalid payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, "/api/position", tt.body)
			testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)

			var e server.ErrorResponse
			decodeBody(t, resp, &e)
			testutil.AssertContains(t, e.Error, tt.wantMsg)
		})
	}
}

func TestBestMove(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name       string
		body       string
		wantColumn int
		wantScore  int
	}{
		{"win in one at default depth", `{"moves":"010101"}`, 0, 9999},
		{"depth capped", `{"moves":"1122","depth":50}`, 3, 9997},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, "/api/bestmove", tt.body)
			testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

			var a output.AnalysisJSON
			decodeBody(t, resp, &a)
			testutil.AssertEqual(t, a.Column, tt.wantColumn)
			testutil.AssertEqual(t, a.Score, tt.wantScore)
			testutil.AssertEqual(t, a.Depth, 3)
			testutil.AssertTrue(t, a.Nodes > 0, "nodes should be counted")
		})
	}
}

func TestBestMove_Errors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"negative depth", `{"moves":"33","depth":-2}`, http.StatusBadRequest},
		{"game over", `{"moves":"` + testutil.VerticalWin + `"}`, http.StatusConflict},
		{"full board", `{"moves":"` + testutil.DrawnGame + `"}`, http.StatusConflict},
		{"bad notation", `{"moves":"x"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, "/api/bestmove", tt.body)
			testutil.AssertEqual(t, resp.StatusCode, tt.wantStatus)
		})
	}
}

func TestStore_Disabled(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := get(t, ts, "/api/store")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusNotFound)
}

func TestStore(t *testing.T) {
	store, err := storage.Open(context.Background(), ":memory:")
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { store.Close() })
	ts := newTestServer(t, store)

	resp := post(t, ts, "/api/store", `{"kind":"position","moves":"33"}`)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusCreated)
	var saved storage.Record
	decodeBody(t, resp, &saved)
	testutil.AssertEqual(t, saved.Kind, storage.Position)
	testutil.AssertEqual(t, saved.Moves, "33")

	resp = post(t, ts, "/api/store", `{"moves":"`+testutil.HorizontalWin+`"}`)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusCreated)

	var positions []storage.Record
	resp = get(t, ts, "/api/store?kind=position")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	decodeBody(t, resp, &positions)
	testutil.AssertEqual(t, len(positions), 1)
	testutil.AssertEqual(t, positions[0].ID, saved.ID)

	var games []storage.Record
	resp = get(t, ts, "/api/store")
	decodeBody(t, resp, &games)
	testutil.AssertEqual(t, len(games), 1)
	testutil.AssertEqual(t, games[0].Moves, testutil.HorizontalWin)

	var got storage.Record
	resp = get(t, ts, "/api/store/1")
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	decodeBody(t, resp, &got)
	testutil.AssertEqual(t, got.Moves, "33")
}

func TestStore_Errors(t *testing.T) {
	store, err := storage.Open(context.Background(), ":memory:")
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { store.Close() })
	ts := newTestServer(t, store)

	testutil.AssertEqual(t, get(t, ts, "/api/store/99").StatusCode, http.StatusNotFound)
	testutil.AssertEqual(t, get(t, ts, "/api/store/abc").StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, get(t, ts, "/api/store?kind=bogus").StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, post(t, ts, "/api/store", `{"kind":"game","moves":"9"}`).StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, post(t, ts, "/api/store", `{"kind":"bogus","moves":"3"}`).StatusCode, http.StatusBadRequest)
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req server.WSRequest) server.WSResponse {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write %+v: %v", req, err)
	}
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var resp server.WSResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read reply to %+v: %v", req, err)
	}
	return resp
}

func TestWebSocket_Game(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dialWS(t, ts)

	// The computer opens in the center.
	resp := roundTrip(t, conn, server.WSRequest{Type: "new", AIFirst: true, Depth: 1})
	testutil.AssertEqual(t, resp.Type, "state")
	testutil.AssertEqual(t, resp.Human, "second")
	if resp.Reply == nil || *resp.Reply != 3 {
		t.Fatalf("opening reply = %v; want column 3", resp.Reply)
	}
	testutil.AssertEqual(t, resp.Position.Moves, "3")

	resp = roundTrip(t, conn, server.WSRequest{Type: "move", Column: 3})
	testutil.AssertEqual(t, resp.Type, "state")
	testutil.AssertEqual(t, resp.Position.Plies, 3)
	testutil.AssertTrue(t, strings.HasPrefix(resp.Position.Moves, "33"), "moves %q", resp.Position.Moves)
	testutil.AssertTrue(t, resp.Reply != nil, "computer should reply")

	resp = roundTrip(t, conn, server.WSRequest{Type: "undo"})
	testutil.AssertEqual(t, resp.Type, "state")
	testutil.AssertEqual(t, resp.Position.Moves, "3")
	testutil.AssertTrue(t, resp.Reply == nil, "undo has no reply")

	// Only the computer's opening is left.
	resp = roundTrip(t, conn, server.WSRequest{Type: "undo"})
	testutil.AssertEqual(t, resp.Type, "error")
	testutil.AssertContains(t, resp.Error, "empty move history")
}

func TestWebSocket_FeatureThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		wantReply int
	}{
		{"default", search.DefaultFeatureThreshold, 2},
		{"always count runs", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Search.FeatureThreshold = tt.threshold
			conn := dialWS(t, newTestServerWithConfig(t, cfg, nil))

			resp := roundTrip(t, conn, server.WSRequest{Type: "new", Depth: 1})
			testutil.AssertEqual(t, resp.Type, "state")

			resp = roundTrip(t, conn, server.WSRequest{Type: "move", Column: 2})
			testutil.AssertEqual(t, resp.Type, "state")
			if resp.Reply == nil || *resp.Reply != tt.wantReply {
				t.Fatalf("reply = %v; want column %d", resp.Reply, tt.wantReply)
			}
		})
	}
}

func TestWebSocket_Errors(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dialWS(t, ts)

	resp := roundTrip(t, conn, server.WSRequest{Type: "move", Column: 3})
	testutil.AssertEqual(t, resp.Type, "error")
	testutil.AssertContains(t, resp.Error, "no game in progress")

	resp = roundTrip(t, conn, server.WSRequest{Type: "new", Depth: 2})
	testutil.AssertEqual(t, resp.Type, "state")
	testutil.AssertEqual(t, resp.Human, "first")
	testutil.AssertEqual(t, resp.Position.Plies, 0)

	resp = roundTrip(t, conn, server.WSRequest{Type: "move", Column: 9})
	testutil.AssertEqual(t, resp.Type, "error")
	testutil.AssertContains(t, resp.Error, "invalid move")

	resp = roundTrip(t, conn, server.WSRequest{Type: "resign"})
	testutil.AssertEqual(t, resp.Type, "error")
	testutil.AssertContains(t, resp.Error, "unknown message type")

	// The connection survives errors.
	resp = roundTrip(t, conn, server.WSRequest{Type: "move", Column: 3})
	testutil.AssertEqual(t, resp.Type, "state")
	testutil.AssertEqual(t, resp.Position.Plies, 2)
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.LogFile = &buf
	cfg.Verbosity = 1

	ts := httptest.NewServer(server.New(cfg, nil, "v").Handler())
	resp, err := http.Get(ts.URL + "/api/health")
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

	// Close waits for the handler, so the log line is complete.
	ts.Close()
	testutil.AssertContains(t, buf.String(), "request")
	testutil.AssertContains(t, buf.String(), "/api/health")
}

func TestRun_Shutdown(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.New(cfg, nil, "v").Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
