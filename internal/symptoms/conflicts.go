package symptoms

// unscoredConfidence stands in for a confidence the scorer never set
const unscoredConfidence = 0.5

// ResolveConflicts drops the weaker member of every mutually exclusive pair.
// On a tie the first category of the pair is kept.
func ResolveConflicts(symptoms []ExtractedSymptom) []ExtractedSymptom {
	drop := make(map[string]bool)
	for _, pair := range conflictingPairs {
		a, okA := findCategory(symptoms, pair[0])
		b, okB := findCategory(symptoms, pair[1])
		if !okA || !okB {
			continue
		}
		if effectiveConfidence(b) > effectiveConfidence(a) {
			drop[pair[0]] = true
		} else {
			drop[pair[1]] = true
		}
	}
	if len(drop) == 0 {
		return symptoms
	}

	out := make([]ExtractedSymptom, 0, len(symptoms))
	for _, s := range symptoms {
		if !drop[s.Category] {
			out = append(out, s)
		}
	}
	return out
}

func findCategory(symptoms []ExtractedSymptom, category string) (ExtractedSymptom, bool) {
	for _, s := range symptoms {
		if s.Category == category {
			return s, true
		}
	}
	return ExtractedSymptom{}, false
}

func effectiveConfidence(s ExtractedSymptom) float64 {
	if s.Confidence == 0 {
		return unscoredConfidence
	}
	return s.Confidence
}
