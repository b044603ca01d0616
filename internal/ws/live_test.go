package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/themobileprof/rantrack-be/internal/api/middleware"
	"github.com/themobileprof/rantrack-be/internal/classifier"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/journal"
)

const testSecret = "test-secret"

type mockVocabulary struct{}

func (mockVocabulary) Snapshot(ctx context.Context, userID string) map[string]string {
	return map[string]string{"zonked": "fatigue"}
}

type mockDB struct {
	mu    sync.Mutex
	saved []*db.Entry
}

func (m *mockDB) SaveEntry(ctx context.Context, entry *db.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = "entry-1"
	m.saved = append(m.saved, entry)
	return nil
}

func (m *mockDB) GetLatestEntry(ctx context.Context, userID string) (*db.Entry, error) {
	return nil, db.ErrNotFound
}

func (m *mockDB) savedEntries() []*db.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*db.Entry(nil), m.saved...)
}

type received struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func newTestServer(t *testing.T, database *mockDB) *httptest.Server {
	return newTestServerWithLimit(t, database, framesPerMinute)
}

func newTestServerWithLimit(t *testing.T, database *mockDB, perMinute int) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := journal.NewEngine(classifier.NewClassifier(), mockVocabulary{}, database, nil)
	handler := NewLiveHandler(engine, testSecret)
	handler.framesPerMinute = perMinute

	r := gin.New()
	r.GET("/ws/live", handler.HandleLive)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/live?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("dial: %v (status %d)", err, status)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func validToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateToken(testSecret, "u1", "jane@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func readMessage(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	var msg received
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestHandleLive_RejectsBadToken(t *testing.T) {
	srv := newTestServer(t, &mockDB{})

	for _, token := range []string{"", "not-a-token"} {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/live?token=" + token
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			t.Fatalf("token %q: dial succeeded", token)
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("token %q: response = %v, want 401", token, resp)
		}
	}
}

func TestHandleLive_DraftFrame(t *testing.T) {
	database := &mockDB{}
	srv := newTestServer(t, database)
	conn := dial(t, srv, validToken(t))

	if err := conn.WriteJSON(IncomingFrame{Text: "feeling zonked"}); err != nil {
		t.Fatal(err)
	}

	msg := readMessage(t, conn)
	if msg.Type != "extraction" {
		t.Fatalf("type = %q, want extraction", msg.Type)
	}
	var analysis journal.Analysis
	if err := json.Unmarshal(msg.Data, &analysis); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if _, ok := analysis.Find("fatigue"); !ok {
		t.Errorf("symptoms = %+v, want fatigue from user vocabulary", analysis.Symptoms)
	}
	if len(database.savedEntries()) != 0 {
		t.Error("draft frame was saved")
	}
}

func TestHandleLive_FinalFrame(t *testing.T) {
	database := &mockDB{}
	srv := newTestServer(t, database)
	conn := dial(t, srv, validToken(t))

	if err := conn.WriteJSON(IncomingFrame{Text: "I am tired", Final: true}); err != nil {
		t.Fatal(err)
	}

	wantTypes := []string{"extraction", "saved", "done"}
	for _, want := range wantTypes {
		msg := readMessage(t, conn)
		if msg.Type != want {
			t.Fatalf("type = %q, want %q (error %q)", msg.Type, want, msg.Error)
		}
		if want == "saved" && !strings.Contains(string(msg.Data), "entry-1") {
			t.Errorf("saved data = %s", msg.Data)
		}
	}

	saved := database.savedEntries()
	if len(saved) != 1 || saved[0].Source != db.SourceLive || saved[0].UserID != "u1" {
		t.Errorf("saved = %+v", saved)
	}
}

func TestHandleLive_ErrorsKeepConnectionOpen(t *testing.T) {
	srv := newTestServer(t, &mockDB{})
	conn := dial(t, srv, validToken(t))

	conn.WriteJSON(IncomingFrame{Text: "   ", Final: true})
	if msg := readMessage(t, conn); msg.Type != "error" {
		t.Fatalf("empty final frame: type = %q, want error", msg.Type)
	}

	conn.WriteJSON(IncomingFrame{Text: strings.Repeat("a", maxTextLength+1)})
	if msg := readMessage(t, conn); msg.Type != "error" {
		t.Fatalf("oversized frame: type = %q, want error", msg.Type)
	}

	conn.WriteJSON(IncomingFrame{Text: "tired"})
	if msg := readMessage(t, conn); msg.Type != "extraction" {
		t.Errorf("after errors: type = %q, want extraction", msg.Type)
	}
}

func TestHandleLive_RateLimit(t *testing.T) {
	srv := newTestServerWithLimit(t, &mockDB{}, 3)
	conn := dial(t, srv, validToken(t))

	for i := 0; i < 3; i++ {
		conn.WriteJSON(IncomingFrame{Text: "ok"})
		if msg := readMessage(t, conn); msg.Type != "extraction" {
			t.Fatalf("frame %d: type = %q", i, msg.Type)
		}
	}

	conn.WriteJSON(IncomingFrame{Text: "ok"})
	if msg := readMessage(t, conn); msg.Type != "error" {
		t.Errorf("frame over limit: type = %q, want error", msg.Type)
	}
}
