package symptoms

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// indexPhrase returns the first word-bounded occurrence of phrase in s at
// or after from, or -1
func indexPhrase(s, phrase string, from int) int {
	if phrase == "" {
		return -1
	}
	for from <= len(s) {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(phrase)
		if isWordEdge(s, start, end) {
			return start
		}
		from = start + 1
	}
	return -1
}

// allPhraseIndexes returns every word-bounded, non-overlapping occurrence
func allPhraseIndexes(s, phrase string) []int {
	var out []int
	for from := 0; ; {
		i := indexPhrase(s, phrase, from)
		if i < 0 {
			return out
		}
		out = append(out, i)
		from = i + len(phrase)
	}
}

// lastIndexWordStart finds the last occurrence of word that starts on a word
// boundary
func lastIndexWordStart(s, word string) int {
	if word == "" {
		return -1
	}
	for end := len(s); end >= len(word); {
		i := strings.LastIndex(s[:end], word)
		if i < 0 {
			return -1
		}
		if i == 0 || !isWordByte(s, i, false) {
			return i
		}
		end = i + len(word) - 1
	}
	return -1
}

func isWordEdge(s string, start, end int) bool {
	if start > 0 && isWordByte(s, start, false) {
		return false
	}
	if end < len(s) && isWordByte(s, end, true) {
		return false
	}
	return true
}

// isWordByte reports whether the rune just before (forward=false) or at
// (forward=true) position i is a letter or digit
func isWordByte(s string, i int, forward bool) bool {
	var r rune
	if forward {
		r, _ = utf8.DecodeRuneInString(s[i:])
	} else {
		r, _ = utf8.DecodeLastRuneInString(s[:i])
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// spanGap is the distance between two byte ranges, zero when they overlap
func spanGap(aStart, aEnd, bStart, bEnd int) int {
	switch {
	case aEnd <= bStart:
		return bStart - aEnd
	case bEnd <= aStart:
		return aStart - bEnd
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
