package symptoms

// ContextVerdict is the outcome of checking an ambiguous lemma
type ContextVerdict int

const (
	ContextUnruled ContextVerdict = iota
	ContextSupported
	ContextUncertain
	ContextInvalidated
)

// CheckContext evaluates the rule for the word at tokens[index]
func CheckContext(tokens []Token, index int) ContextVerdict {
	if index < 0 || index >= len(tokens) {
		return ContextUnruled
	}
	rule, ok := contextRules[tokens[index].Text]
	if !ok {
		return ContextUnruled
	}

	lo, hi := sentenceWindow(tokens, index, rule.Window, rule.Window)
	supported, invalidated, adjacent := false, false, false
	for i := lo; i <= hi; i++ {
		if i == index {
			continue
		}
		word := tokens[i].Text
		if containsWord(rule.Supporting, word) {
			supported = true
		}
		if containsWord(rule.Invalidating, word) {
			invalidated = true
			if abs(i-index) <= rule.InvalidatingReach {
				adjacent = true
			}
		}
	}

	switch {
	case adjacent:
		return ContextInvalidated
	case supported:
		return ContextSupported
	case invalidated:
		return ContextInvalidated
	default:
		return ContextUncertain
	}
}

// applyContextFilter drops lemma entries whose context rules them out and
// caps the confidence of those with no context either way
func (e *extraction) applyContextFilter() {
	kept := e.symptoms[:0]
	for _, s := range e.symptoms {
		if s.Method != MethodLemma || s.token < 0 {
			kept = append(kept, s)
			continue
		}
		switch CheckContext(e.tokens, s.token) {
		case ContextInvalidated:
			continue
		case ContextUncertain:
			limit := contextRules[e.tokens[s.token].Text].MinConfidenceWithoutContext
			if s.Confidence > limit {
				s.Confidence = limit
			}
		}
		kept = append(kept, s)
	}
	e.symptoms = kept
	e.reindex()
}

// outOfContext reports whether the context filter will drop s
func (e *extraction) outOfContext(s ExtractedSymptom) bool {
	return s.Method == MethodLemma && s.token >= 0 && CheckContext(e.tokens, s.token) == ContextInvalidated
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}
