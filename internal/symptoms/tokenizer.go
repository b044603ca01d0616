package symptoms

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Token is a lowercase word, or a sentence boundary, with byte offsets into
// the normalized text
type Token struct {
	Text     string
	Start    int
	End      int
	Boundary bool
}

const (
	negationLookbackTokens = 10
	phraseNegationLookback = 50
)

var textReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
	"-", " ",
	"_", " ",
)

// Normalize applies NFKC, lowercases and folds typographic quotes and
// hyphens. Every offset used by the pipeline refers to this form of the text.
func Normalize(text string) string {
	return textReplacer.Replace(strings.ToLower(norm.NFKC.String(text)))
}

// Tokenize splits text into lowercase word tokens. Punctuation separates
// words; runs of '.', '!' and '?' become a single boundary token.
func Tokenize(text string) []Token {
	s := Normalize(text)
	tokens := make([]Token, 0, len(s)/5+1)
	wordStart := -1

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isWordRune(r) || (wordStart >= 0 && isInnerJoiner(s, i, size, r)) {
			if wordStart < 0 {
				wordStart = i
			}
			i += size
			continue
		}

		if wordStart >= 0 {
			tokens = append(tokens, Token{Text: s[wordStart:i], Start: wordStart, End: i})
			wordStart = -1
		}

		if isSentenceEnd(r) && len(tokens) > 0 {
			last := &tokens[len(tokens)-1]
			if last.Boundary {
				last.End = i + size
			} else {
				tokens = append(tokens, Token{Text: ".", Start: i, End: i + size, Boundary: true})
			}
		}
		i += size
	}

	if wordStart >= 0 {
		tokens = append(tokens, Token{Text: s[wordStart:], Start: wordStart, End: len(s)})
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isInnerJoiner keeps "don't" and "7.5" as single tokens
func isInnerJoiner(s string, i, size int, r rune) bool {
	if r != '\'' && r != '.' {
		return false
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:i])
	next, _ := utf8.DecodeRuneInString(s[i+size:])
	if r == '\'' {
		return unicode.IsLetter(prev) && unicode.IsLetter(next)
	}
	return unicode.IsDigit(prev) && unicode.IsDigit(next)
}

// Words returns the word texts of a token sequence, dropping boundaries
func Words(tokens []Token) []string {
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !t.Boundary {
			words = append(words, t.Text)
		}
	}
	return words
}

// sentenceWindow returns inclusive bounds of up to before/after tokens
// around index without crossing a sentence boundary
func sentenceWindow(tokens []Token, index, before, after int) (int, int) {
	lo := index
	for i := index - 1; i >= 0 && index-i <= before; i-- {
		if tokens[i].Boundary {
			break
		}
		lo = i
	}
	hi := index
	for i := index + 1; i < len(tokens) && i-index <= after; i++ {
		if tokens[i].Boundary {
			break
		}
		hi = i
	}
	return lo, hi
}

// tokenAt returns the index of the first word token ending after pos, or -1
func tokenAt(tokens []Token, pos int) int {
	for i, t := range tokens {
		if !t.Boundary && t.End > pos {
			return i
		}
	}
	return -1
}

// joinTokens joins the texts of tokens[lo..hi] with single spaces
func joinTokens(tokens []Token, lo, hi int) string {
	var b strings.Builder
	for i := lo; i <= hi && i < len(tokens); i++ {
		if tokens[i].Boundary {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tokens[i].Text)
	}
	return b.String()
}

var negationWords = map[string]bool{
	"not": true, "no": true, "never": true, "without": true, "none": true,
	"neither": true, "nor": true, "hardly": true, "barely": true, "scarcely": true,
	"nothing": true, "cannot": true, "cant": true, "dont": true, "doesnt": true,
	"didnt": true, "isnt": true, "wasnt": true, "arent": true, "werent": true,
	"havent": true, "hasnt": true, "hadnt": true, "wont": true, "wouldnt": true,
	"couldnt": true, "shouldnt": true, "aint": true,
}

func isNegationWord(word string) bool {
	return negationWords[word] || strings.HasSuffix(word, "n't")
}

// IsNegated reports whether the token at index sits in the scope of a
// negation word within the previous 10 tokens of the same sentence
func IsNegated(tokens []Token, index int) bool {
	if index < 0 || index >= len(tokens) {
		return false
	}
	for i := index - 1; i >= 0 && index-i <= negationLookbackTokens; i-- {
		if tokens[i].Boundary {
			return false
		}
		if isNegationWord(tokens[i].Text) {
			return true
		}
	}
	return false
}

// NegationKind names which family of negation pattern matched
type NegationKind string

const (
	NegationNone          NegationKind = ""
	NegationSimple        NegationKind = "simple"
	NegationPrepositional NegationKind = "prepositional"
	NegationCompound      NegationKind = "compound"
)

var phraseNegationPatterns = []struct {
	kind    NegationKind
	pattern *regexp.Regexp
}{
	{NegationCompound, regexp.MustCompile(`\b(?:not any|hardly any|barely any|scarcely any|not a single|no more|not much)\b`)},
	{NegationPrepositional, regexp.MustCompile(`\b(?:lack of|absence of|free of|free from|no signs? of|rid of)\b`)},
	{NegationSimple, regexp.MustCompile(`\b(?:not|no|never|without|none|neither|nor|cannot|hardly|barely|scarcely)\b|n't\b`)},
}

// PhraseNegation inspects up to 50 bytes before charIndex, stopping at the
// nearest sentence boundary, and returns the kind of negation found there
func PhraseNegation(text string, charIndex int) NegationKind {
	return phraseNegationWithin(text, charIndex, phraseNegationLookback)
}

// IsPhraseNegated reports whether a phrase starting at charIndex is negated
func IsPhraseNegated(text string, charIndex int) bool {
	return PhraseNegation(text, charIndex) != NegationNone
}

func phraseNegationWithin(text string, charIndex, lookback int) NegationKind {
	if charIndex > len(text) {
		charIndex = len(text)
	}
	if charIndex <= 0 {
		return NegationNone
	}
	start := charIndex - lookback
	if start < 0 {
		start = 0
	}
	window := strings.ToLower(text[start:charIndex])
	if idx := strings.LastIndexAny(window, ".!?"); idx >= 0 {
		window = window[idx+1:]
	}
	for _, p := range phraseNegationPatterns {
		if p.pattern.MatchString(window) {
			return p.kind
		}
	}
	return NegationNone
}
