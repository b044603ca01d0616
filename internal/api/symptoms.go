package api

import (
	"log"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/rantrack-be/internal/api/middleware"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/symptoms"
)

// SymptomHandler handles symptom catalogue and statistics endpoints
type SymptomHandler struct {
	db *db.DB
}

// NewSymptomHandler creates a new symptom handler
func NewSymptomHandler(database *db.DB) *SymptomHandler {
	return &SymptomHandler{
		db: database,
	}
}

// GetCategories lists the built-in symptom categories
// GET /api/symptoms/categories
func (h *SymptomHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": symptoms.Categories()})
}

// CategoryStats counts one category's appearances by severity
type CategoryStats struct {
	Category    string         `json:"category"`
	DisplayName string         `json:"displayName"`
	Total       int            `json:"total"`
	BySeverity  map[string]int `json:"bySeverity"`
}

// GetSymptomStats summarizes symptoms over the last N days
// GET /api/symptoms/stats?days=30
func (h *SymptomHandler) GetSymptomStats(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}
		days = n
	}

	since := time.Now().AddDate(0, 0, -days)
	counts, err := h.db.GetSymptomCounts(c.Request.Context(), middleware.GetUserID(c), since)
	if err != nil {
		log.Printf("[ERROR] symptom stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve symptoms"})
		return
	}

	byCategory := make(map[string]*CategoryStats)
	order := []string{}
	bySeverity := make(map[string]int)
	total := 0

	for _, count := range counts {
		stats, ok := byCategory[count.Category]
		if !ok {
			stats = &CategoryStats{
				Category:    count.Category,
				DisplayName: symptoms.DisplayName(count.Category),
				BySeverity:  make(map[string]int),
			}
			byCategory[count.Category] = stats
			order = append(order, count.Category)
		}

		severity := count.Severity
		if severity == "" {
			severity = "unrated"
		}
		stats.Total += count.Count
		stats.BySeverity[severity] += count.Count
		bySeverity[severity] += count.Count
		total += count.Count
	}

	categories := make([]CategoryStats, 0, len(order))
	for _, category := range order {
		categories = append(categories, *byCategory[category])
	}
	slices.SortStableFunc(categories, func(a, b CategoryStats) int {
		return b.Total - a.Total
	})

	c.JSON(http.StatusOK, gin.H{
		"days":           days,
		"total_symptoms": total,
		"by_severity":    bySeverity,
		"categories":     categories,
	})
}
