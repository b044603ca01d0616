package journal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/themobileprof/rantrack-be/internal/classifier"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/privacy"
	"github.com/themobileprof/rantrack-be/internal/symptoms"
)

var (
	ErrEmptyText       = errors.New("entry text is empty")
	ErrNoSymptoms      = errors.New("no known symptom categories in check-in")
	ErrInvalidSeverity = errors.New("severity must be mild, moderate or severe")
)

// Interfaces for dependencies
type ClassifierInterface interface {
	Classify(text string) classifier.ClassifierResult
}

type VocabularyInterface interface {
	Snapshot(ctx context.Context, userID string) map[string]string
}

type DBInterface interface {
	SaveEntry(ctx context.Context, entry *db.Entry) error
	GetLatestEntry(ctx context.Context, userID string) (*db.Entry, error)
}

// Analysis is an extraction result plus what the server derives from it
type Analysis struct {
	symptoms.ExtractionResult
	Intent  classifier.ClassifierResult `json:"intent"`
	Summary []string                    `json:"summary"`
}

// Engine handles journal logic independent of transport; the HTTP
// handlers and the live WebSocket both go through it.
type Engine struct {
	classifier ClassifierInterface
	vocabulary VocabularyInterface
	db         DBInterface
	tracker    *symptoms.Tracker
}

// NewEngine creates a new journal engine
func NewEngine(cls ClassifierInterface, vocab VocabularyInterface, database DBInterface, tracker *symptoms.Tracker) *Engine {
	if tracker == nil {
		tracker = symptoms.NewTracker()
	}
	return &Engine{
		classifier: cls,
		vocabulary: vocab,
		db:         database,
		tracker:    tracker,
	}
}

// logExcerpt is the form of an entry that may appear in logs. Entries with
// anything that looks like PII are withheld rather than redacted.
func logExcerpt(text string) string {
	if privacy.ContainsPII(text) {
		return "[withheld: possible PII]"
	}
	return privacy.SanitizeForLogging(text)
}

// Analyze extracts symptoms from text using the user's vocabulary
func (e *Engine) Analyze(ctx context.Context, userID, text string) Analysis {
	result := e.tracker.ExtractSymptoms(text, e.vocabulary.Snapshot(ctx, userID))
	intent := e.classifier.Classify(text)

	if intent.Intent == classifier.IntentSymptom && len(result.Symptoms) == 0 {
		log.Printf("[DEBUG] symptom report with no extracted symptoms: user=%s text=%q",
			userID, logExcerpt(text))
	}

	return Analysis{
		ExtractionResult: result,
		Intent:           intent,
		Summary:          summarize(result.Symptoms),
	}
}

// Record analyzes and saves an entry. A "same as yesterday" entry that
// names no symptoms of its own carries over the previous entry's symptoms.
func (e *Engine) Record(ctx context.Context, userID, text, source string) (*db.Entry, Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Analysis{}, ErrEmptyText
	}

	analysis := e.Analyze(ctx, userID, text)
	entry := &db.Entry{
		UserID:         userID,
		Text:           text,
		Source:         source,
		Result:         analysis.ExtractionResult,
		RepeatPrevious: analysis.RepeatPrevious,
	}

	if analysis.RepeatPrevious && len(analysis.Symptoms) == 0 {
		prev, err := e.db.GetLatestEntry(ctx, userID)
		switch {
		case err == nil:
			entry.Result.Symptoms = slices.Clone(prev.Result.Symptoms)
			if entry.Result.SpoonCount == nil {
				entry.Result.SpoonCount = prev.Result.SpoonCount
			}
			entry.Source = db.SourceRepeat
			analysis.ExtractionResult = entry.Result
			analysis.Summary = summarize(entry.Result.Symptoms)
		case errors.Is(err, db.ErrNotFound):
			log.Printf("Repeat requested with no previous entry: user=%s", userID)
		default:
			return nil, analysis, fmt.Errorf("failed to load previous entry: %w", err)
		}
	}

	if err := e.db.SaveEntry(ctx, entry); err != nil {
		return nil, analysis, err
	}

	log.Printf("Entry recorded: user=%s id=%s source=%s symptoms=%d", userID, entry.ID, entry.Source, len(entry.Result.Symptoms))
	return entry, analysis, nil
}

// Checkin saves a quick check-in built from tapped categories. severities
// maps category IDs to "mild", "moderate" or "severe".
func (e *Engine) Checkin(ctx context.Context, userID string, categories []string, severities map[string]string) (*db.Entry, error) {
	levels := make(map[string]symptoms.Severity, len(severities))
	for category, s := range severities {
		level := symptoms.Severity(strings.ToLower(strings.TrimSpace(s)))
		switch level {
		case symptoms.SeverityMild, symptoms.SeverityModerate, symptoms.SeveritySevere:
			levels[category] = level
		default:
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidSeverity, s, category)
		}
	}

	found := e.tracker.QuickCheckin(categories, levels)
	if len(found) == 0 {
		return nil, ErrNoSymptoms
	}

	names := make([]string, 0, len(found))
	for _, s := range found {
		names = append(names, symptoms.DisplayName(s.Category))
	}
	text := strings.Join(names, ", ")

	entry := &db.Entry{
		UserID: userID,
		Text:   text,
		Source: db.SourceCheckin,
		Result: symptoms.ExtractionResult{Text: text, Symptoms: found},
	}
	if err := e.db.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func summarize(found []symptoms.ExtractedSymptom) []string {
	lines := make([]string, 0, len(found))
	for _, s := range found {
		lines = append(lines, symptoms.FormatSymptom(s))
	}
	return lines
}
