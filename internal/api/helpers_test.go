package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/themobileprof/rantrack-be/internal/api/middleware"
	"github.com/themobileprof/rantrack-be/internal/classifier"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/journal"
	"github.com/themobileprof/rantrack-be/internal/vocabulary"
)

const (
	testSecret = "test-secret"
	testUserID = "11111111-1111-1111-1111-111111111111"
)

var userColumns = []string{"id", "email", "password_hash", "display_name", "created_at", "updated_at"}

var entryColumns = []string{"id", "user_id", "text", "source", "result", "categories", "repeat_previous", "created_at"}

func newMockDB(t *testing.T) (*db.DB, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return &db.DB{DB: sqlDB}, mock
}

func newTestEngine(database *db.DB) *journal.Engine {
	return journal.NewEngine(classifier.NewClassifier(), vocabulary.NewManager(nil, nil, 0), database, nil)
}

// asUser stands in for JWTAuth
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

// doRequest sends body as JSON; a string body is sent verbatim
func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func checkExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func doRequestWithToken(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
