package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/rantrack-be/internal/api/middleware"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/journal"
	"github.com/themobileprof/rantrack-be/internal/symptoms"
)

// MaxTextLength bounds a single rant
const MaxTextLength = 10000

// EntryHandler handles extraction and journal entry endpoints
type EntryHandler struct {
	db     *db.DB
	engine *journal.Engine
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(database *db.DB, engine *journal.Engine) *EntryHandler {
	return &EntryHandler{
		db:     database,
		engine: engine,
	}
}

// TextRequest carries a rant
type TextRequest struct {
	Text string `json:"text" binding:"required,max=10000"`
}

// CheckinRequest carries tapped symptom categories
type CheckinRequest struct {
	Categories []string          `json:"categories" binding:"required,min=1,max=60"`
	Severities map[string]string `json:"severities"`
}

// EntryResponse is an entry as returned to clients
type EntryResponse struct {
	ID             string                    `json:"id"`
	Text           string                    `json:"text"`
	Source         string                    `json:"source"`
	Result         symptoms.ExtractionResult `json:"result"`
	Summary        []string                  `json:"summary"`
	RepeatPrevious bool                      `json:"repeatPrevious"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

func toEntryResponse(e *db.Entry) EntryResponse {
	summary := make([]string, 0, len(e.Result.Symptoms))
	for _, s := range e.Result.Symptoms {
		summary = append(summary, symptoms.FormatSymptom(s))
	}
	return EntryResponse{
		ID:             e.ID,
		Text:           e.Text,
		Source:         e.Source,
		Result:         e.Result,
		Summary:        summary,
		RepeatPrevious: e.RepeatPrevious,
		CreatedAt:      e.CreatedAt,
	}
}

// Extract runs extraction without saving anything
func (h *EntryHandler) Extract(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis := h.engine.Analyze(c.Request.Context(), middleware.GetUserID(c), req.Text)
	c.JSON(http.StatusOK, analysis)
}

// CreateEntry extracts and saves a rant
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	entry, _, err := h.engine.Record(c.Request.Context(), userID, req.Text, db.SourceRant)
	if err != nil {
		if errors.Is(err, journal.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[ERROR] create entry for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
		return
	}

	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// CreateCheckin saves a quick check-in
func (h *EntryHandler) CreateCheckin(c *gin.Context) {
	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	entry, err := h.engine.Checkin(c.Request.Context(), userID, req.Categories, req.Severities)
	if err != nil {
		if errors.Is(err, journal.ErrNoSymptoms) || errors.Is(err, journal.ErrInvalidSeverity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[ERROR] create check-in for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save check-in"})
		return
	}

	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// ListEntries returns the caller's recent entries
func (h *EntryHandler) ListEntries(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	entries, err := h.db.ListEntries(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		log.Printf("[ERROR] list entries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}

	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

// GetEntry returns one entry
func (h *EntryHandler) GetEntry(c *gin.Context) {
	entry, err := h.db.GetEntry(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("[ERROR] get entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
		return
	}

	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry removes one entry
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	err := h.db.DeleteEntry(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("[ERROR] delete entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.Status(http.StatusNoContent)
}
