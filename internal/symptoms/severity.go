package symptoms

import (
	"regexp"
	"strconv"
)

const (
	numericAttributionWindow = 50
	severityTokenWindow      = 5
)

// NumericSeverity is an explicit rating such as "7/10" or "30%"
type NumericSeverity struct {
	Value    float64  `json:"value"`
	Scale    float64  `json:"scale"`
	Ratio    float64  `json:"ratio"`
	Severity Severity `json:"severity"`
	// Category is empty when no keyword preceded the rating
	Category     string `json:"category,omitempty"`
	Keyword      string `json:"keyword,omitempty"`
	KeywordStart int    `json:"-"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	Text         string `json:"text"`
	Percent      bool   `json:"percent,omitempty"`
}

var (
	ratioRegex   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(\d+)\b`)
	outOfRegex   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s+out\s+of\s+(\d+)\b`)
	percentRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// numericKeywords attribute a rating to a category; a keyword with a
// requirement only counts when that word also appears in the window
var numericKeywords = []struct {
	category string
	keywords []string
	requires string
}{
	{"fatigue", []string{"fatigue", "tired", "exhausted", "exhaustion", "energy"}, ""},
	{"pain", []string{"pain", "hurt", "ache", "aching", "sore"}, ""},
	{"brain_fog", []string{"fog", "foggy"}, "brain"},
	{"headache", []string{"headache"}, ""},
	{"migraine", []string{"migraine"}, ""},
	{"nausea", []string{"nausea", "nauseous"}, ""},
}

// severityForRatio buckets a normalized rating
func severityForRatio(ratio float64) Severity {
	switch {
	case ratio <= 0.3:
		return SeverityMild
	case ratio <= 0.6:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// ExtractNumericSeverity finds explicit ratings in text. Offsets refer to
// Normalize(text).
func ExtractNumericSeverity(text string) []NumericSeverity {
	return numericSeverities(Normalize(text))
}

func numericSeverities(s string) []NumericSeverity {
	var out []NumericSeverity

	for _, re := range []*regexp.Regexp{ratioRegex, outOfRegex} {
		for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
			value, err1 := strconv.ParseFloat(s[m[2]:m[3]], 64)
			scale, err2 := strconv.ParseFloat(s[m[4]:m[5]], 64)
			if err1 != nil || err2 != nil || scale <= 0 || scale > 100 || value > scale {
				continue
			}
			ns := NumericSeverity{
				Value: value, Scale: scale, Ratio: value / scale,
				Start: m[0], End: m[1], Text: s[m[0]:m[1]],
			}
			ns.Severity = severityForRatio(ns.Ratio)
			ns.Category, ns.Keyword, ns.KeywordStart = attributeRating(s, m[0])
			out = append(out, ns)
		}
	}

	for _, m := range percentRegex.FindAllStringSubmatchIndex(s, -1) {
		value, err := strconv.ParseFloat(s[m[2]:m[3]], 64)
		if err != nil || value > 100 {
			continue
		}
		category, keyword, kwStart := attributeRating(s, m[0])
		if category == "" {
			continue
		}
		ns := NumericSeverity{
			Value: value, Scale: 100, Ratio: value / 100,
			Category: category, Keyword: keyword, KeywordStart: kwStart,
			Start: m[0], End: m[1], Text: s[m[0]:m[1]], Percent: true,
		}
		ns.Severity = severityForRatio(ns.Ratio)
		out = append(out, ns)
	}

	sortByStart(out)
	return out
}

// attributeRating finds the closest category keyword in the 50 bytes before
// a rating
func attributeRating(s string, start int) (category, keyword string, keywordStart int) {
	from := start - numericAttributionWindow
	if from < 0 {
		from = 0
	}
	window := s[from:start]
	best := -1
	for _, entry := range numericKeywords {
		if entry.requires != "" && lastIndexWordStart(window, entry.requires) < 0 {
			continue
		}
		for _, kw := range entry.keywords {
			if i := lastIndexWordStart(window, kw); i > best {
				best = i
				category = entry.category
				keyword = kw
			}
		}
	}
	if best < 0 {
		return "", "", -1
	}
	return category, keyword, from + best
}

func sortByStart(ns []NumericSeverity) {
	for i := 1; i < len(ns); i++ {
		for j := i; j > 0 && ns[j].Start < ns[j-1].Start; j-- {
			ns[j], ns[j-1] = ns[j-1], ns[j]
		}
	}
}

// FindSeverity looks for a severity word near charIndex in text
func FindSeverity(text string, charIndex int) Severity {
	tokens := Tokenize(text)
	return FindSeverityFromTokens(tokens, tokenAt(tokens, charIndex), severityTokenWindow)
}

// FindSeverityFromTokens looks up to window tokens either side of index for
// a single-word severity keyword, closest first, then falls back to
// multi-word severity phrases in the same window
func FindSeverityFromTokens(tokens []Token, index, window int) Severity {
	if index < 0 || index >= len(tokens) {
		return ""
	}
	lo, hi := sentenceWindow(tokens, index, window, window)

	for d := 0; d <= window; d++ {
		if i := index - d; i >= lo {
			if sev, ok := severityKeywords[tokens[i].Text]; ok {
				return sev
			}
		}
		if i := index + d; d > 0 && i <= hi {
			if sev, ok := severityKeywords[tokens[i].Text]; ok {
				return sev
			}
		}
	}

	joined := joinTokens(tokens, lo, hi)
	for _, p := range severityPhrases {
		if indexPhrase(joined, p.phrase, 0) >= 0 {
			return p.severity
		}
	}
	return ""
}

// DetectComparative reports whether the text compares today to another day
func DetectComparative(text string) Comparative {
	s := Normalize(text)
	for _, p := range comparativePhrases {
		if indexPhrase(s, p.phrase, 0) >= 0 {
			return p.comparative
		}
	}
	return ComparativeNone
}

// AssignDefaultSeverity resolves a final severity: detected, then the
// per-symptom default, then the comparative direction, then moderate
func AssignDefaultSeverity(category, text string, detected Severity) Severity {
	if detected != "" {
		return detected
	}
	if sev, ok := defaultSeverityBySymptom[category]; ok {
		return sev
	}
	switch DetectComparative(text) {
	case ComparativeWorse:
		return SeveritySevere
	case ComparativeBetter:
		return SeverityMild
	}
	return SeverityModerate
}
