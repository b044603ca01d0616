package symptoms

import "strings"

const (
	baseConfidence       = 0.5
	contextDensityWindow = 50
)

// contextKeywords mark narrative that is plainly about how the body feels
var contextKeywords = []string{
	"feel", "feeling", "felt", "symptom", "symptoms", "flare", "flaring",
	"today", "yesterday", "morning", "night", "really", "very", "so",
	"worse", "badly", "again", "still", "since", "after", "body",
}

// ScoreConfidence scores a symptom against the text it was extracted from
func ScoreConfidence(s ExtractedSymptom, text string) float64 {
	return scoreConfidence(s, Normalize(text))
}

func scoreConfidence(s ExtractedSymptom, normalized string) float64 {
	c := baseConfidence

	switch s.Method {
	case MethodPhrase:
		if strings.Contains(s.MatchedText, " ") {
			c += 0.25
		} else {
			c += 0.2
		}
	case MethodQuickCheckin:
		c += 0.15
	case MethodLemma:
		if _, ambiguous := contextRules[s.MatchedText]; ambiguous {
			c += 0.08
		} else {
			c += 0.1
		}
	}

	switch n := len(strings.Fields(s.MatchedText)); {
	case n >= 4:
		c += 0.1
	case n == 3:
		c += 0.08
	case n == 2:
		c += 0.05
	}

	switch s.Severity {
	case SeverityMild:
		c += 0.02
	case SeverityModerate:
		c += 0.03
	case SeveritySevere:
		c += 0.05
	}

	if pd := s.PainDetails; pd != nil {
		if pd.Location != "" {
			c += 0.15
		}
		switch {
		case len(pd.Qualifiers) >= 2:
			c += 0.1
		case len(pd.Qualifiers) == 1:
			c += 0.06
		}
	}

	if s.Trigger != nil {
		if s.Trigger.Confidence >= 0.7 {
			c += 0.08
		} else {
			c += 0.05
		}
	}

	if d := s.Duration; d != nil {
		switch {
		case d.Value > 0 && d.Unit != "":
			c += 0.08
		case d.Qualifier != "":
			c += 0.05
		}
		if d.Ongoing {
			c += 0.03
		}
	}

	if s.TimeOfDay != "" {
		c += 0.05
	}

	if s.Method != MethodQuickCheckin {
		switch hits := contextDensity(normalized, s.pos, s.pos+len(s.MatchedText)); {
		case hits >= 3:
			c += 0.05
		case hits >= 1:
			c += 0.02
		}
	}

	if rareCategories[s.Category] && (s.Method == MethodPhrase || s.Method == MethodQuickCheckin) {
		c += 0.1
	}

	return round2(clamp01(c))
}

// contextDensity counts context keywords within 50 bytes either side of a span
func contextDensity(s string, start, end int) int {
	lo := max(0, start-contextDensityWindow)
	hi := min(len(s), end+contextDensityWindow)
	if lo >= hi {
		return 0
	}
	window := s[lo:hi]
	hits := 0
	for _, kw := range contextKeywords {
		hits += len(allPhraseIndexes(window, kw))
	}
	return hits
}

func (e *extraction) scoreAll() {
	for i := range e.symptoms {
		e.symptoms[i].Confidence = scoreConfidence(e.symptoms[i], e.text)
	}
}
