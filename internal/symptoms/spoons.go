package symptoms

import (
	"math"
	"regexp"
)

const (
	// defaultSpoons is the daily budget assumed when the writer never says
	defaultSpoons = 12
	// maxSpoons caps any stated count
	maxSpoons = 100
)

var (
	spoonsLeftRegex    = regexp.MustCompile(`\b` + numberPattern + `\s+spoons?\s+(?:left|remaining)\b`)
	spoonsHaveRegex    = regexp.MustCompile(`\b(?:have|got|only|down to|at)\s+(?:only\s+)?` + numberPattern + `\s+spoons?\b`)
	spoonsUsedRegex    = regexp.MustCompile(`\b(?:used|spent|burned|burnt)\s+(?:up\s+)?` + numberPattern + `\s+spoons?\b`)
	spoonsStartedRegex = regexp.MustCompile(`\b(?:started|woke up|began)\s+(?:the day\s+|today\s+)?with\s+` + numberPattern + `\s+spoons?\b`)
	spoonsRatioRegex   = regexp.MustCompile(`\b(\d+)\s*/\s*(\d+)\s+spoons?\b`)
	zeroSpoonsRegex    = regexp.MustCompile(`\b(?:out of spoons|no spoons|zero spoons|spoon debt|borrowing spoons|borrowed spoons|negative spoons)\b`)
)

// ExtractSpoonCount reads spoon-theory energy language from text
func ExtractSpoonCount(text string) *SpoonCount {
	return spoonCount(Normalize(text))
}

func spoonCount(s string) *SpoonCount {
	current, used, started := -1, -1, -1

	if m := spoonsRatioRegex.FindStringSubmatch(s); m != nil {
		current = spoonNumber(m[1])
		started = spoonNumber(m[2])
	}
	if current < 0 {
		if m := spoonsLeftRegex.FindStringSubmatch(s); m != nil {
			current = spoonNumber(m[1])
		} else if m := spoonsHaveRegex.FindStringSubmatch(s); m != nil {
			current = spoonNumber(m[1])
		}
	}
	if current < 0 && zeroSpoonsRegex.MatchString(s) {
		current = 0
	}
	if m := spoonsUsedRegex.FindStringSubmatch(s); m != nil {
		used = spoonNumber(m[1])
	}
	if started < 0 {
		if m := spoonsStartedRegex.FindStringSubmatch(s); m != nil {
			started = spoonNumber(m[1])
		}
	}

	if current < 0 && used < 0 && started < 0 {
		return nil
	}

	sc := &SpoonCount{}
	if used >= 0 {
		sc.Used = used
	}
	if started >= 0 {
		sc.Started = started
	}

	switch {
	case current >= 0:
		sc.Current = current
	case used >= 0:
		budget := started
		if budget < 0 {
			budget = defaultSpoons
		}
		sc.Current = max(0, budget-used)
	default:
		sc.Current = started
	}

	budget := defaultSpoons
	if sc.Started > 0 {
		budget = sc.Started
	}
	level := int(math.Round(10 * float64(sc.Current) / float64(budget)))
	sc.EnergyLevel = min(10, max(0, level))
	return sc
}

// spoonNumber parses a stated count, clamped to 0..maxSpoons
func spoonNumber(word string) int {
	v := parseCount(word)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(math.Round(min(v, maxSpoons)))
}
