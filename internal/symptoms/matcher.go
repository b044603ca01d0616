package symptoms

// extraction is the per-call working state of one pipeline run
type extraction struct {
	text   string // normalized
	tokens []Token
	opts   Options

	lemmas        map[string]string
	customPhrases []phraseEntry

	symptoms []ExtractedSymptom
	index    map[string]int
	consumed [][2]int
}

func newExtraction(text string, customLemmas map[string]string, opts Options) *extraction {
	s := Normalize(text)
	words, phrases := splitCustomLemmas(customLemmas)
	return &extraction{
		text:          s,
		tokens:        Tokenize(text),
		opts:          opts,
		lemmas:        mergeLemmas(words),
		customPhrases: phrases,
		index:         make(map[string]int),
	}
}

// add appends a symptom unless its category is already present
func (e *extraction) add(s ExtractedSymptom) bool {
	if _, ok := e.index[s.Category]; ok {
		return false
	}
	e.index[s.Category] = len(e.symptoms)
	e.symptoms = append(e.symptoms, s)
	return true
}

func (e *extraction) has(category string) bool {
	_, ok := e.index[category]
	return ok
}

func (e *extraction) consume(start, end int) {
	e.consumed = append(e.consumed, [2]int{start, end})
}

func (e *extraction) isConsumed(t Token) bool {
	for _, span := range e.consumed {
		if t.Start < span[1] && t.End > span[0] {
			return true
		}
	}
	return false
}

// reindex rebuilds the category index after symptoms were dropped
func (e *extraction) reindex() {
	e.index = make(map[string]int, len(e.symptoms))
	for i, s := range e.symptoms {
		e.index[s.Category] = i
	}
}

// matchNumeric creates a bare entry per attributed numeric rating
func (e *extraction) matchNumeric() {
	for _, ns := range numericSeverities(e.text) {
		if ns.Category == "" || e.has(ns.Category) {
			continue
		}
		e.add(ExtractedSymptom{
			Category:    ns.Category,
			MatchedText: e.text[ns.KeywordStart:ns.End],
			Method:      MethodPhrase,
			Severity:    ns.Severity,
			pos:         ns.KeywordStart,
			token:       -1,
		})
	}
}

// matchPain adds or enriches pain categories from pain mentions
func (e *extraction) matchPain() {
	for _, m := range painMatches(e.text, e.tokens) {
		e.consume(m.Start, m.End)
		details := m.Details

		if i, ok := e.index[m.Category]; ok {
			if e.symptoms[i].PainDetails == nil {
				e.symptoms[i].PainDetails = &details
			}
			continue
		}
		e.add(ExtractedSymptom{
			Category:    m.Category,
			MatchedText: m.MatchedText,
			Method:      MethodPhrase,
			Severity:    AssignDefaultSeverity(m.Category, e.text, m.Severity),
			PainDetails: &details,
			pos:         m.Start,
			token:       -1,
		})
	}
}

// matchPhrases runs an ordered phrase table over the text. Every occurrence
// consumes its span; the first occurrence creates the entry.
func (e *extraction) matchPhrases(table []phraseEntry) {
	for _, p := range table {
		for _, pos := range allPhraseIndexes(e.text, p.phrase) {
			if e.opts.PhraseNegation && IsPhraseNegated(e.text, pos) {
				continue
			}
			e.consume(pos, pos+len(p.phrase))
			if e.has(p.category) {
				continue
			}
			e.add(ExtractedSymptom{
				Category:    p.category,
				MatchedText: p.phrase,
				Method:      MethodPhrase,
				Severity:    FindSeverityFromTokens(e.tokens, tokenAt(e.tokens, pos), severityTokenWindow),
				pos:         pos,
				token:       -1,
			})
		}
	}
}

// matchLemmas is the single-token pass; negated and consumed tokens are skipped
func (e *extraction) matchLemmas() {
	for i, t := range e.tokens {
		if t.Boundary {
			continue
		}
		category, ok := e.lemmas[t.Text]
		if !ok || e.has(category) || e.isConsumed(t) || IsNegated(e.tokens, i) {
			continue
		}
		e.add(ExtractedSymptom{
			Category:    category,
			MatchedText: t.Text,
			Method:      MethodLemma,
			Severity:    FindSeverityFromTokens(e.tokens, i, severityTokenWindow),
			pos:         t.Start,
			token:       i,
		})
	}
}

// MatchLexical runs the lexical stages alone (numeric ratings, pain details,
// built-in phrases, custom phrases, lemmas) and returns unscored candidates
func MatchLexical(text string, customLemmas map[string]string) []ExtractedSymptom {
	e := newExtraction(text, customLemmas, Options{})
	e.matchLexical()
	return e.symptoms
}

func (e *extraction) matchLexical() {
	e.matchNumeric()
	e.matchPain()
	e.matchPhrases(orderedBuiltinPhrases)
	e.matchPhrases(e.customPhrases)
	e.matchLemmas()
}
