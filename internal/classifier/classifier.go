package classifier

import (
	"regexp"
	"strings"
)

// Intent represents the classified intent of a journal entry
type Intent string

const (
	IntentRepeatPrevious Intent = "repeat_previous"
	IntentEnergyUpdate   Intent = "energy_update"
	IntentSymptom        Intent = "symptom_report"
	IntentGoodDay        Intent = "good_day"
	IntentUnclear        Intent = "unclear"
)

// ClassifierResult contains the classification result
type ClassifierResult struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// repeat-previous detection: explicit comparisons, "repeat(ed)", and
// "no change" language
var (
	explicitRepeatPatterns = compilePatterns([]string{
		`\b(?:same|just|exactly)\s+(?:as|like)\s+(?:yesterday|last time|before|the other day|last night)\b`,
		`\bsame\s+(?:symptoms|thing|stuff|story)\s+as\b`,
		`\bsame\s+as\s+(?:always|usual)\b`,
	})
	repeatWordPatterns = compilePatterns([]string{
		`\brepeat(?:ed)?\b`,
	})
	noChangePatterns = compilePatterns([]string{
		`\bno change\b`,
		`\bnothing(?:'s| has)?\s+changed\b`,
		`\bstill the same\b`,
		`\bsame old\b`,
		`\bunchanged\b`,
	})
	spaceNormalizer = regexp.MustCompile(`\s+`)
)

// IsRepeatPrevious reports whether text asks to reuse the previous entry
func IsRepeatPrevious(text string) bool {
	normalized := normalizeText(text)
	if normalized == "" {
		return false
	}
	return matchesPatterns(normalized, explicitRepeatPatterns) ||
		matchesPatterns(normalized, repeatWordPatterns) ||
		matchesPatterns(normalized, noChangePatterns)
}

// Classifier performs rule-based intent classification
type Classifier struct {
	symptomPatterns []*regexp.Regexp
	energyPatterns  []*regexp.Regexp
	goodDayPatterns []*regexp.Regexp
}

// NewClassifier creates a new intent classifier
func NewClassifier() *Classifier {
	return &Classifier{
		symptomPatterns: compilePatterns([]string{
			`\b(pain|hurt|hurts|hurting|ache|aches|aching|sore)\b`,
			`\b(tired|fatigue|exhausted|drained|wiped|knackered)\b`,
			`\b(crash|crashed|crashing|pem|relapse|flare|flaring)\b`,
			`\b(headache|migraine)\b`,
			`\b(nausea|nauseous|sick|vomit|vomiting|queasy)\b`,
			`\b(dizzy|dizziness|lightheaded|faint|fainted)\b`,
			`\b(brain fog|foggy|can't think|can't focus)\b`,
			`\b(insomnia|can't sleep|couldn't sleep|slept badly)\b`,
			`\b(anxious|anxiety|depressed|low mood)\b`,
			`\b(fever|chills|sweats|sore throat)\b`,
			`\bmy\s+\w+\s+(hurts|aches|is killing me)\b`,
		}),
		energyPatterns: compilePatterns([]string{
			`\bspoons?\b`,
			`\benergy\s+(?:level|is|at)\b`,
			`\bbattery\b`,
			`\b\d+\s*(?:/|out of)\s*10\s+energy\b`,
		}),
		goodDayPatterns: compilePatterns([]string{
			`\bgood day\b`,
			`\b(?:feeling|feel|felt)\s+(?:good|great|fine|ok|okay|well)\b`,
			`\bno symptoms\b`,
			`\bbetter day\b`,
			`\bnothing to report\b`,
		}),
	}
}

// Classify determines the intent of the input entry
func (c *Classifier) Classify(input string) ClassifierResult {
	normalized := normalizeText(input)

	// Empty input handling
	if normalized == "" {
		return ClassifierResult{
			Intent:     IntentUnclear,
			Confidence: 0.1,
		}
	}

	// A request to copy yesterday wins over whatever else is mentioned
	if IsRepeatPrevious(normalized) {
		return ClassifierResult{
			Intent:     IntentRepeatPrevious,
			Confidence: 0.9,
		}
	}

	symptomMatches := countMatches(normalized, c.symptomPatterns)
	if symptomMatches > 0 {
		confidence := 0.75 + float64(symptomMatches)*0.05
		if confidence > 0.95 {
			confidence = 0.95
		}
		return ClassifierResult{
			Intent:     IntentSymptom,
			Confidence: confidence,
		}
	}

	energyMatches := countMatches(normalized, c.energyPatterns)
	if energyMatches > 0 {
		confidence := 0.75 + float64(energyMatches)*0.05
		if confidence > 0.95 {
			confidence = 0.95
		}
		return ClassifierResult{
			Intent:     IntentEnergyUpdate,
			Confidence: confidence,
		}
	}

	if matchesPatterns(normalized, c.goodDayPatterns) {
		return ClassifierResult{
			Intent:     IntentGoodDay,
			Confidence: 0.85,
		}
	}

	// Default to unclear if no patterns match
	return ClassifierResult{
		Intent:     IntentUnclear,
		Confidence: 0.3,
	}
}

// normalizeText preprocesses input text for classification
func normalizeText(input string) string {
	text := strings.ToLower(input)
	text = strings.ReplaceAll(text, "’", "'")
	text = strings.TrimSpace(text)
	text = spaceNormalizer.ReplaceAllString(text, " ")

	// Remove trailing punctuation
	text = strings.TrimRight(text, "!?.,;:")

	return text
}

// matchesPatterns checks if any pattern matches
func matchesPatterns(text string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// countMatches counts how many patterns match
func countMatches(text string, patterns []*regexp.Regexp) int {
	count := 0
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			count++
		}
	}
	return count
}

// compilePatterns compiles a slice of regex patterns
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re := regexp.MustCompile(p)
		compiled = append(compiled, re)
	}
	return compiled
}
