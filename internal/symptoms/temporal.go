package symptoms

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const temporalAttachWindow = 50

const unitPattern = `(minutes?|mins?|hours?|hrs?|days?|weeks?)`

var (
	crashedForRegex = regexp.MustCompile(`\bcrash(?:ed)?\s+for\s+` + numberPattern + `\s+(days?|weeks?)\b`)
	outForRegex     = regexp.MustCompile(`\bout\s+for\s+` + numberPattern + `\s+(days?|weeks?)\b`)
	periodOfRegex   = regexp.MustCompile(`\b` + numberPattern + `\s+(days?|weeks?)\s+of\b`)
	recoverRegex    = regexp.MustCompile(`\btakes?\s+` + numberPattern + `\s+` + unitPattern + `\s+to\s+recover`)
	forUnitsRegex   = regexp.MustCompile(`\bfor\s+` + numberPattern + `\s+` + unitPattern + `\b`)
	unitsOfRegex    = regexp.MustCompile(`\b` + numberPattern + `\s+` + unitPattern + `\s+of\b`)
	sinceRegex      = regexp.MustCompile(`\bsince\s+` + sinceTargets + `\b`)
	lastedRegex     = regexp.MustCompile(`\blasted\s+(?:for\s+)?` + numberPattern + `\s+` + unitPattern + `\b`)
)

// durationMatch is one rule hit with its span in the normalized text
type durationMatch struct {
	duration   SymptomDuration
	start, end int
	rule       int
}

// durationRule finds every occurrence of one duration form
type durationRule func(s string) []durationMatch

// durationRules is the precedence order; earlier rules win
var durationRules = []durationRule{
	multiDayMatches,
	recoveryMatches,
	qualifierMatches,
	regexDurationMatches(forUnitsRegex),
	regexDurationMatches(unitsOfRegex),
	sinceMatches,
	regexDurationMatches(lastedRegex),
}

func multiDayMatches(s string) []durationMatch {
	var out []durationMatch
	for _, m := range crashedForRegex.FindAllStringSubmatchIndex(s, -1) {
		d := countDuration(s, m)
		d.Progression = ProgressionWorsening
		out = append(out, durationMatch{duration: d, start: m[0], end: m[1]})
	}
	for _, m := range outForRegex.FindAllStringSubmatchIndex(s, -1) {
		d := countDuration(s, m)
		d.Ongoing = true
		out = append(out, durationMatch{duration: d, start: m[0], end: m[1]})
	}
	for _, m := range periodOfRegex.FindAllStringSubmatchIndex(s, -1) {
		d := countDuration(s, m)
		d.Qualifier = QualifierAll
		out = append(out, durationMatch{duration: d, start: m[0], end: m[1]})
	}
	return out
}

func recoveryMatches(s string) []durationMatch {
	var out []durationMatch
	for _, m := range recoverRegex.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, durationMatch{duration: countDuration(s, m), start: m[0], end: m[1]})
	}
	for _, p := range recoveryPhrases {
		for _, i := range allPhraseIndexes(s, p.phrase) {
			out = append(out, durationMatch{duration: p.duration, start: i, end: i + len(p.phrase)})
		}
	}
	return out
}

func qualifierMatches(s string) []durationMatch {
	var out []durationMatch
	for _, p := range qualifierPhrases {
		unit := UnitDays
		if strings.Contains(p.phrase, "night") || strings.Contains(p.phrase, "evening") {
			unit = UnitHours
		}
		for _, i := range allPhraseIndexes(s, p.phrase) {
			if overlapsAny(out, i, i+len(p.phrase)) {
				continue
			}
			out = append(out, durationMatch{
				duration: SymptomDuration{Qualifier: p.qualifier, Unit: unit},
				start:    i,
				end:      i + len(p.phrase),
			})
		}
	}
	return out
}

func regexDurationMatches(re *regexp.Regexp) durationRule {
	return func(s string) []durationMatch {
		var out []durationMatch
		for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
			out = append(out, durationMatch{duration: countDuration(s, m), start: m[0], end: m[1]})
		}
		return out
	}
}

func sinceMatches(s string) []durationMatch {
	var out []durationMatch
	for _, m := range sinceRegex.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, durationMatch{
			duration: SymptomDuration{Since: s[m[2]:m[3]], Ongoing: true},
			start:    m[0],
			end:      m[1],
		})
	}
	return out
}

// countDuration reads the count and unit capture groups of a match
func countDuration(s string, m []int) SymptomDuration {
	return SymptomDuration{
		Value: parseCount(s[m[2]:m[3]]),
		Unit:  parseUnit(s[m[4]:m[5]]),
	}
}

func parseCount(word string) float64 {
	if v, ok := numberWords[word]; ok {
		return v
	}
	v, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseUnit(word string) DurationUnit {
	switch {
	case strings.HasPrefix(word, "min"):
		return UnitMinutes
	case strings.HasPrefix(word, "h"):
		return UnitHours
	case strings.HasPrefix(word, "w"):
		return UnitWeeks
	default:
		return UnitDays
	}
}

type progressionMatch struct {
	progression Progression
	start, end  int
}

func progressionMatches(s string) []progressionMatch {
	var out []progressionMatch
	for _, p := range progressionPhrases {
		for _, i := range allPhraseIndexes(s, p.phrase) {
			end := i + len(p.phrase)
			if overlapsProgression(out, i, end) {
				continue
			}
			out = append(out, progressionMatch{p.progression, i, end})
		}
	}
	return out
}

func ongoingMatches(tokens []Token) []Token {
	var out []Token
	for _, t := range tokens {
		if !t.Boundary && ongoingWords[t.Text] {
			out = append(out, t)
		}
	}
	return out
}

// ExtractDuration returns the highest-precedence duration found in text,
// with progression and ongoing language merged in, or nil
func ExtractDuration(text string) *SymptomDuration {
	s := Normalize(text)
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var d SymptomDuration
	for _, rule := range durationRules {
		matches := rule(s)
		if len(matches) == 0 {
			continue
		}
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].start < matches[j].start })
		d = matches[0].duration
		break
	}

	if d.Progression == "" {
		if p := progressionMatches(s); len(p) > 0 {
			d.Progression = earliestProgression(p)
		}
	}
	if !d.Ongoing && len(ongoingMatches(Tokenize(text))) > 0 {
		d.Ongoing = true
	}

	if d.IsZero() {
		return nil
	}
	return &d
}

func earliestProgression(p []progressionMatch) Progression {
	best := p[0]
	for _, m := range p[1:] {
		if m.start < best.start {
			best = m
		}
	}
	return best.progression
}

var orderedTimeOfDay = func() []struct {
	phrase string
	bucket string
} {
	out := append(timeOfDayPhrases[:0:0], timeOfDayPhrases...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].phrase) > len(out[j].phrase) })
	return out
}()

type timeOfDayMatch struct {
	bucket     string
	start, end int
}

func timeOfDayMatches(s string) []timeOfDayMatch {
	var out []timeOfDayMatch
	for _, p := range orderedTimeOfDay {
		for _, i := range allPhraseIndexes(s, p.phrase) {
			end := i + len(p.phrase)
			claimed := false
			for _, m := range out {
				if i < m.end && end > m.start {
					claimed = true
					break
				}
			}
			if !claimed {
				out = append(out, timeOfDayMatch{p.bucket, i, end})
			}
		}
	}
	return out
}

// ExtractTimeOfDay returns the bucket of the longest time-of-day phrase in text
func ExtractTimeOfDay(text string) string {
	s := Normalize(text)
	for _, p := range orderedTimeOfDay {
		if indexPhrase(s, p.phrase, 0) >= 0 {
			return p.bucket
		}
	}
	return ""
}

// attachTemporal gives each symptom the closest duration and time-of-day
// markers within reach of its matched text
func (e *extraction) attachTemporal() {
	var durations []durationMatch
	for rule, fn := range durationRules {
		for _, m := range fn(e.text) {
			m.rule = rule
			durations = append(durations, m)
		}
	}
	progressions := progressionMatches(e.text)
	ongoing := ongoingMatches(e.tokens)
	times := timeOfDayMatches(e.text)

	for i := range e.symptoms {
		sym := &e.symptoms[i]
		start := sym.pos
		end := start + len(sym.MatchedText)

		var d SymptomDuration
		bestGap, bestRule := -1, 0
		for _, m := range durations {
			gap := spanGap(start, end, m.start, m.end)
			if gap > temporalAttachWindow {
				continue
			}
			if bestGap < 0 || gap < bestGap || (gap == bestGap && m.rule < bestRule) {
				d, bestGap, bestRule = m.duration, gap, m.rule
			}
		}

		if d.Progression == "" {
			bestGap = -1
			for _, m := range progressions {
				if gap := spanGap(start, end, m.start, m.end); gap <= temporalAttachWindow && (bestGap < 0 || gap < bestGap) {
					d.Progression, bestGap = m.progression, gap
				}
			}
		}
		if !d.Ongoing {
			for _, t := range ongoing {
				if spanGap(start, end, t.Start, t.End) <= temporalAttachWindow {
					d.Ongoing = true
					break
				}
			}
		}
		if !d.IsZero() {
			dur := d
			sym.Duration = &dur
		}

		bestGap = -1
		for _, m := range times {
			if gap := spanGap(start, end, m.start, m.end); gap <= temporalAttachWindow && (bestGap < 0 || gap < bestGap) {
				sym.TimeOfDay, bestGap = m.bucket, gap
			}
		}
	}
}

func overlapsAny(ms []durationMatch, start, end int) bool {
	for _, m := range ms {
		if start < m.end && end > m.start {
			return true
		}
	}
	return false
}

func overlapsProgression(ms []progressionMatch, start, end int) bool {
	for _, m := range ms {
		if start < m.end && end > m.start {
			return true
		}
	}
	return false
}
