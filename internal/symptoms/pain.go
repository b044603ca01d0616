package symptoms

const (
	painBackwardTokens  = 6
	painForwardTokens   = 8
	qualifierPainLookup = 3
	maxLocationWords    = 3
)

// PainMatch is one pain mention with the details found around it
type PainMatch struct {
	Details  PainDetails
	Severity Severity
	Category string
	// MatchedText spans the consumed tokens, qualifiers through location
	MatchedText string
	Start       int
	End         int

	firstToken int
	lastToken  int
}

// ExtractPainDetails finds pain mentions that carry a qualifier or a body
// location. Bare mentions ("I have pain") produce nothing.
func ExtractPainDetails(text string) []PainMatch {
	s := Normalize(text)
	return painMatches(s, Tokenize(text))
}

func painMatches(s string, tokens []Token) []PainMatch {
	var out []PainMatch
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Boundary || !isPainAnchor(tokens, i) {
			continue
		}
		m, ok := painAt(s, tokens, i)
		if !ok {
			continue
		}
		out = append(out, m)
		if m.lastToken > i {
			i = m.lastToken
		}
	}
	return out
}

// isPainAnchor accepts pain words, and qualifiers that are not followed by a
// pain word within a few tokens (the pain word will anchor those instead)
func isPainAnchor(tokens []Token, i int) bool {
	word := tokens[i].Text
	if painWords[word] {
		return true
	}
	if _, ok := painQualifiers[word]; !ok {
		return false
	}
	for j := i + 1; j < len(tokens) && j-i <= qualifierPainLookup; j++ {
		if tokens[j].Boundary {
			break
		}
		if painWords[tokens[j].Text] {
			return false
		}
	}
	return true
}

func painAt(s string, tokens []Token, i int) (PainMatch, bool) {
	anchor := tokens[i].Text
	m := PainMatch{firstToken: i, lastToken: i}

	lo, _ := sentenceWindow(tokens, i, painBackwardTokens, 0)
	for j := lo; j < i; j++ {
		word := tokens[j].Text
		if q, ok := painQualifiers[word]; ok {
			m.Details.Qualifiers = appendUnique(m.Details.Qualifiers, q)
			if j < m.firstToken {
				m.firstToken = j
			}
		}
		if sev, ok := severityKeywords[word]; ok {
			m.Severity = sev
			if j < m.firstToken {
				m.firstToken = j
			}
		}
	}

	qualifierAnchor := !painWords[anchor]
	if qualifierAnchor {
		m.Details.Qualifiers = appendUnique(m.Details.Qualifiers, painQualifiers[anchor])
	}

	if loc, last, ok := locationAfter(tokens, i); ok {
		m.Details.Location = loc
		m.lastToken = last
	} else if loc, first, ok := locationBefore(tokens, i); ok {
		m.Details.Location = loc
		if first < m.firstToken {
			m.firstToken = first
		}
	}

	// a lone qualifier only describes pain when it names where
	if qualifierAnchor && m.Details.Location == "" {
		return PainMatch{}, false
	}
	if len(m.Details.Qualifiers) == 0 && m.Details.Location == "" {
		return PainMatch{}, false
	}

	if m.Severity == "" {
		m.Severity = FindSeverityFromTokens(tokens, i, severityTokenWindow)
	}
	m.Category = CategoryForLocation(m.Details.Location)
	m.Start = tokens[m.firstToken].Start
	m.End = tokens[m.lastToken].End
	m.MatchedText = s[m.Start:m.End]
	return m, true
}

// locationAfter scans forward from a pain anchor, skipping fillers, for the
// first body location. Longer windows win at each position.
func locationAfter(tokens []Token, i int) (string, int, bool) {
	for j := i + 1; j < len(tokens) && j-i <= painForwardTokens; j++ {
		if tokens[j].Boundary {
			break
		}
		if j > i+1 && painWords[tokens[j].Text] {
			break
		}
		if locationFillers[tokens[j].Text] {
			continue
		}
		if loc, n, ok := locationAt(tokens, j); ok {
			return loc, j + n - 1, true
		}
	}
	return "", 0, false
}

// locationBefore reads a location that ends on the token right before the
// anchor, after any qualifiers ("sharp knee pain", "my back hurts")
func locationBefore(tokens []Token, i int) (string, int, bool) {
	end := i - 1
	for end >= 0 && !tokens[end].Boundary {
		if _, ok := painQualifiers[tokens[end].Text]; !ok {
			break
		}
		end--
	}
	for n := maxLocationWords; n >= 1; n-- {
		start := end - n + 1
		if start < 0 {
			continue
		}
		if loc, ok := lookupLocation(tokens, start, n); ok {
			return loc, start, true
		}
	}
	return "", 0, false
}

// locationAt tries 3, 2 and 1 word windows at j against the location tables
func locationAt(tokens []Token, j int) (string, int, bool) {
	for n := maxLocationWords; n >= 1; n-- {
		if loc, ok := lookupLocation(tokens, j, n); ok {
			return loc, n, true
		}
	}
	return "", 0, false
}

func lookupLocation(tokens []Token, start, n int) (string, bool) {
	if start+n > len(tokens) {
		return "", false
	}
	for k := start; k < start+n; k++ {
		if tokens[k].Boundary {
			return "", false
		}
	}
	key := joinTokens(tokens, start, start+n-1)
	for _, table := range locationTables {
		if loc, ok := table[key]; ok {
			return loc, true
		}
	}
	return "", false
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
