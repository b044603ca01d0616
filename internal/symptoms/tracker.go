package symptoms

import (
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"github.com/themobileprof/rantrack-be/internal/classifier"
)

// Options toggles optional pipeline behavior
type Options struct {
	// PhraseNegation suppresses phrase matches that sit in a negated span
	// ("no brain fog today"). Lemma matches are always negation-checked.
	PhraseNegation bool
}

// Tracker extracts structured symptoms from free-form narratives.
// A Tracker holds no per-call state and is safe for concurrent use.
type Tracker struct {
	opts Options
}

// NewTracker creates a tracker with default options
func NewTracker() *Tracker {
	return &Tracker{}
}

// NewTrackerWithOptions creates a tracker with the given options
func NewTrackerWithOptions(opts Options) *Tracker {
	return &Tracker{opts: opts}
}

var defaultTracker = NewTracker()

// ExtractSymptoms runs the default tracker
func ExtractSymptoms(text string, customLemmas map[string]string) ExtractionResult {
	return defaultTracker.ExtractSymptoms(text, customLemmas)
}

// ExtractSymptoms runs the full pipeline over text. customLemmas maps words
// or space-containing phrases to categories and overrides built-ins; it may
// be nil. The call never panics; an internal failure yields no symptoms.
func (t *Tracker) ExtractSymptoms(text string, customLemmas map[string]string) (result ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] symptom extraction recovered from panic: %v\n%s", r, debug.Stack())
			result = ExtractionResult{Text: text, Symptoms: []ExtractedSymptom{}}
		}
	}()

	result = ExtractionResult{Text: text, Symptoms: []ExtractedSymptom{}}
	if strings.TrimSpace(text) == "" {
		return result
	}

	e := newExtraction(text, customLemmas, t.opts)
	e.matchLexical()
	e.linkTriggers(triggerMentions(e.text, e.tokens, e.lemmas))
	e.scoreAll()
	e.applyContextFilter()
	e.symptoms = ResolveConflicts(e.symptoms)
	e.reindex()
	e.attachTemporal()

	result.Symptoms = append(result.Symptoms, e.symptoms...)
	result.SpoonCount = spoonCount(e.text)
	result.RepeatPrevious = classifier.IsRepeatPrevious(text)
	return result
}

// QuickCheckin builds scored symptoms from tapped category IDs. Unknown and
// duplicate categories are skipped; severities may be nil.
func (t *Tracker) QuickCheckin(categories []string, severities map[string]Severity) []ExtractedSymptom {
	seen := make(map[string]bool, len(categories))
	out := make([]ExtractedSymptom, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if !IsKnownCategory(c) || seen[c] {
			continue
		}
		seen[c] = true

		s := ExtractedSymptom{
			Category:    c,
			MatchedText: DisplayName(c),
			Method:      MethodQuickCheckin,
			Severity:    AssignDefaultSeverity(c, "", severities[c]),
			token:       -1,
		}
		s.Confidence = scoreConfidence(s, "")
		out = append(out, s)
	}
	return ResolveConflicts(out)
}

// FormatSymptom renders a one-line summary such as
// "Headache (severe) - throbbing, location: temple - after walking, immediate"
func FormatSymptom(s ExtractedSymptom) string {
	var b strings.Builder
	b.WriteString(DisplayName(s.Category))
	if s.Severity != "" {
		fmt.Fprintf(&b, " (%s)", s.Severity)
	}

	var parts []string
	if pd := s.PainDetails; pd != nil {
		var detail []string
		if len(pd.Qualifiers) > 0 {
			detail = append(detail, strings.Join(pd.Qualifiers, ", "))
		}
		if pd.Location != "" {
			detail = append(detail, "location: "+pd.Location)
		}
		parts = append(parts, strings.Join(detail, ", "))
	}
	if tr := s.Trigger; tr != nil {
		trigger := tr.Activity
		if tr.Timeframe != "" {
			trigger = tr.Timeframe + " " + trigger
		}
		if tr.DelayPattern != "" {
			trigger += ", " + string(tr.DelayPattern)
		}
		parts = append(parts, trigger)
	}
	if d := s.Duration; d != nil {
		parts = append(parts, formatDuration(*d))
	}
	if s.TimeOfDay != "" {
		parts = append(parts, strings.ReplaceAll(s.TimeOfDay, "_", " "))
	}

	for _, p := range parts {
		if p != "" {
			b.WriteString(" - ")
			b.WriteString(p)
		}
	}
	return b.String()
}

func formatDuration(d SymptomDuration) string {
	var parts []string
	switch {
	case d.Value > 0 && d.Unit != "":
		parts = append(parts, fmt.Sprintf("%g %s", d.Value, d.Unit))
	case d.Qualifier != "":
		parts = append(parts, strings.ReplaceAll(string(d.Qualifier), "_", " "))
	}
	if d.Since != "" {
		parts = append(parts, "since "+d.Since)
	}
	if d.Ongoing {
		parts = append(parts, "ongoing")
	}
	if d.Progression != "" {
		parts = append(parts, strings.ReplaceAll(string(d.Progression), "_", " "))
	}
	return strings.Join(parts, ", ")
}
