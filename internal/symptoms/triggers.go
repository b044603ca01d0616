package symptoms

import (
	"math"
	"sort"
)

const (
	timeframeLookback   = 4
	triggerSymptomAhead = 8
	triggerSymptomBack  = 6
	delayLookahead      = 200

	ceilingDefault   = 40
	ceilingAdjacent  = 200
	ceilingHoursDays = 300
	ceilingNextDay   = 500

	minTriggerConfidence = 0.5
)

// TriggerMention is an activity found in the text, before linking
type TriggerMention struct {
	Trigger ActivityTrigger
	Start   int
	End     int
	token   int
}

// ExtractTriggers finds activity mentions that have a timeframe cue or a
// symptom-bearing word nearby
func ExtractTriggers(text string) []TriggerMention {
	s := Normalize(text)
	return triggerMentions(s, Tokenize(text), builtinLemmas)
}

func triggerMentions(s string, tokens []Token, lemmas map[string]string) []TriggerMention {
	var out []TriggerMention
	for i, t := range tokens {
		if t.Boundary {
			continue
		}
		activity, ok := activities[t.Text]
		if !ok {
			continue
		}
		timeframe := timeframeBefore(tokens, i)
		if timeframe == "" && !symptomNear(tokens, i, lemmas) {
			continue
		}
		out = append(out, TriggerMention{
			Trigger: ActivityTrigger{
				Activity:     activity,
				Timeframe:    timeframe,
				DelayPattern: delayAfter(s, t.End),
			},
			Start: t.Start,
			End:   t.End,
			token: i,
		})
	}
	return out
}

// timeframeBefore returns the closest timeframe cue in the few tokens before
// an activity, as a single word or a multi-word phrase
func timeframeBefore(tokens []Token, i int) string {
	lo, _ := sentenceWindow(tokens, i, timeframeLookback, 0)
	for j := i - 1; j >= lo; j-- {
		for n := 3; n >= 2; n-- {
			if start := j - n + 1; start >= lo {
				if tf, ok := timeframePhrases[joinTokens(tokens, start, j)]; ok {
					return tf
				}
			}
		}
		if tf, ok := timeframeCues[tokens[j].Text]; ok {
			return tf
		}
	}
	return ""
}

// symptomNear looks across sentence boundaries for a symptom-bearing word
func symptomNear(tokens []Token, i int, lemmas map[string]string) bool {
	lo := i - triggerSymptomBack
	if lo < 0 {
		lo = 0
	}
	hi := i + triggerSymptomAhead
	if hi >= len(tokens) {
		hi = len(tokens) - 1
	}
	for j := lo; j <= hi; j++ {
		if j == i || tokens[j].Boundary {
			continue
		}
		word := tokens[j].Text
		if _, ok := lemmas[word]; ok && activities[word] == "" {
			return true
		}
		if triggerLinkable[word] {
			return true
		}
	}
	return false
}

// delayAfter returns the delay phrase occurring earliest in the 200 bytes
// after an activity
func delayAfter(s string, from int) DelayPattern {
	end := from + delayLookahead
	if end > len(s) {
		end = len(s)
	}
	window := s[from:end]
	best, pattern := -1, DelayPattern("")
	for _, d := range delayPhrases {
		if i := indexPhrase(window, d.phrase, 0); i >= 0 && (best < 0 || i < best) {
			best, pattern = i, d.pattern
		}
	}
	return pattern
}

// sentenceDistance counts sentence boundaries between two offsets
func sentenceDistance(tokens []Token, a, b int) int {
	if a > b {
		a, b = b, a
	}
	n := 0
	for _, t := range tokens {
		if t.Boundary && t.Start >= a && t.Start < b {
			n++
		}
	}
	return n
}

// proximityCeiling is the largest distance a trigger may sit from a symptom
func proximityCeiling(sentences int, delay DelayPattern) int {
	ceiling := ceilingDefault
	if sentences == 1 {
		ceiling = max(ceiling, ceilingAdjacent)
	}
	switch delay {
	case DelayHoursLater, DelayDaysLater:
		ceiling = max(ceiling, ceilingHoursDays)
	case DelayNextDay:
		ceiling = max(ceiling, ceilingNextDay)
	}
	return ceiling
}

// TriggerConfidence scores a trigger-symptom link
func TriggerConfidence(distance, sentences int, delay DelayPattern, activity string) float64 {
	if distance > 500 {
		distance = 500
	}
	c := 0.5 + float64(500-distance)/500*0.2

	switch {
	case sentences == 0:
		c += 0.3
	case sentences == 1:
		c += 0.2
	case sentences <= 3:
		c += 0.1
	default:
		c -= 0.15
		if c < 0.4 {
			c = 0.4
		}
	}

	switch delay {
	case DelayImmediate, DelayHoursLater:
		c += 0.15
	case DelayNextDay:
		c += 0.25
	case DelayDaysLater, DelayWeekLater:
		c += 0.1
	}

	if reliableTriggers[activity] {
		c += 0.05
	}
	return round2(clamp01(c))
}

type triggerLink struct {
	symptom    int
	trigger    int
	confidence float64
	distance   int
	sentences  int
}

// linkTriggers attaches each trigger to at most one symptom and each symptom
// to at most one trigger, best-scoring pairs first. Lemmas the context
// filter will drop cannot claim a trigger.
func (e *extraction) linkTriggers(mentions []TriggerMention) {
	var links []triggerLink
	for si, s := range e.symptoms {
		if triggerIneligible[s.Category] || e.outOfContext(s) {
			continue
		}
		for ti, m := range mentions {
			distance := abs(s.pos - m.Start)
			sentences := sentenceDistance(e.tokens, s.pos, m.Start)
			if distance > proximityCeiling(sentences, m.Trigger.DelayPattern) {
				continue
			}
			c := TriggerConfidence(distance, sentences, m.Trigger.DelayPattern, m.Trigger.Activity)
			if c < minTriggerConfidence {
				continue
			}
			links = append(links, triggerLink{si, ti, c, distance, sentences})
		}
	}

	sort.SliceStable(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.confidence != b.confidence {
			return a.confidence > b.confidence
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if a.symptom != b.symptom {
			return a.symptom < b.symptom
		}
		return a.trigger < b.trigger
	})

	usedSymptom := make(map[int]bool)
	usedTrigger := make(map[int]bool)
	for _, l := range links {
		if usedSymptom[l.symptom] || usedTrigger[l.trigger] {
			continue
		}
		usedSymptom[l.symptom] = true
		usedTrigger[l.trigger] = true
		trigger := mentions[l.trigger].Trigger
		trigger.Confidence = l.confidence
		trigger.SentenceDistance = l.sentences
		e.symptoms[l.symptom].Trigger = &trigger
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
