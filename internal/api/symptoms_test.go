package api

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/symptoms"
)

func newSymptomRouter(database *db.DB) *gin.Engine {
	h := NewSymptomHandler(database)
	r := gin.New()
	api := r.Group("/api", asUser(testUserID))
	api.GET("/symptoms/categories", h.GetCategories)
	api.GET("/symptoms/stats", h.GetSymptomStats)
	return r
}

func TestGetCategories(t *testing.T) {
	database, _ := newMockDB(t)

	w := doRequest(newSymptomRouter(database), http.MethodGet, "/api/symptoms/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Categories []symptoms.CategoryInfo `json:"categories"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Categories) != len(symptoms.Categories()) || resp.Categories[0].ID != "fatigue" {
		t.Errorf("categories = %+v", resp.Categories)
	}
}

func TestGetSymptomStats(t *testing.T) {
	for _, days := range []string{"0", "366", "week"} {
		database, _ := newMockDB(t)
		w := doRequest(newSymptomRouter(database), http.MethodGet, "/api/symptoms/stats?days="+days, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("days=%s: status = %d, want 400", days, w.Code)
		}
	}

	database, mock := newMockDB(t)
	mock.ExpectQuery(`jsonb_array_elements`).WithArgs(testUserID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"category", "severity", "count"}).
			AddRow("headache", "", 4).
			AddRow("fatigue", "severe", 3).
			AddRow("fatigue", "mild", 2))

	w := doRequest(newSymptomRouter(database), http.MethodGet, "/api/symptoms/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Days          int             `json:"days"`
		TotalSymptoms int             `json:"total_symptoms"`
		BySeverity    map[string]int  `json:"by_severity"`
		Categories    []CategoryStats `json:"categories"`
	}
	decodeBody(t, w, &resp)

	if resp.Days != 30 || resp.TotalSymptoms != 9 {
		t.Errorf("days = %d, total = %d", resp.Days, resp.TotalSymptoms)
	}
	if resp.BySeverity["unrated"] != 4 || resp.BySeverity["severe"] != 3 || resp.BySeverity["mild"] != 2 {
		t.Errorf("by_severity = %v", resp.BySeverity)
	}
	if len(resp.Categories) != 2 {
		t.Fatalf("categories = %+v", resp.Categories)
	}
	if first := resp.Categories[0]; first.Category != "fatigue" || first.Total != 5 || first.DisplayName != "Fatigue" {
		t.Errorf("first category = %+v, want fatigue with 5", first)
	}
	checkExpectations(t, mock)
}
