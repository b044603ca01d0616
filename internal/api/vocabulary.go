package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/rantrack-be/internal/api/middleware"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/vocabulary"
)

// VocabularyHandler manages a user's custom symptom words
type VocabularyHandler struct {
	db    *db.DB
	vocab *vocabulary.Manager
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(database *db.DB, vocab *vocabulary.Manager) *VocabularyHandler {
	return &VocabularyHandler{
		db:    database,
		vocab: vocab,
	}
}

// LemmaRequest maps a word or phrase to a category ID
type LemmaRequest struct {
	Word     string `json:"word" binding:"required,max=64"`
	Category string `json:"category" binding:"required,max=64"`
}

// normalizeWord lowercases and collapses inner whitespace
func normalizeWord(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), " ")
}

// ListLemmas returns the caller's custom words
func (h *VocabularyHandler) ListLemmas(c *gin.Context) {
	lemmas, err := h.db.ListCustomLemmas(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		log.Printf("[ERROR] list custom lemmas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vocabulary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lemmas": lemmas})
}

// PutLemma adds or updates a custom word. Category IDs are opaque; any
// non-empty ID is accepted.
func (h *VocabularyHandler) PutLemma(c *gin.Context) {
	var req LemmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	word := normalizeWord(req.Word)
	category := strings.TrimSpace(req.Category)
	if word == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word and category must not be blank"})
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.db.UpsertCustomLemma(c.Request.Context(), userID, word, category); err != nil {
		log.Printf("[ERROR] save custom lemma: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save word"})
		return
	}
	h.vocab.Invalidate(userID)

	c.JSON(http.StatusOK, gin.H{"word": word, "category": category})
}

// DeleteLemma removes a custom word
func (h *VocabularyHandler) DeleteLemma(c *gin.Context) {
	userID := middleware.GetUserID(c)
	err := h.db.DeleteCustomLemma(c.Request.Context(), userID, normalizeWord(c.Param("word")))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Word not found"})
			return
		}
		log.Printf("[ERROR] delete custom lemma: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete word"})
		return
	}
	h.vocab.Invalidate(userID)

	c.Status(http.StatusNoContent)
}
