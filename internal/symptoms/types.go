package symptoms

// Method records which matcher produced a symptom
type Method string

const (
	MethodPhrase       Method = "phrase"
	MethodLemma        Method = "lemma"
	MethodQuickCheckin Method = "quick_checkin"
)

// Severity is the coarse three-level severity scale
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// rank orders severities for scoring; unknown severities rank zero
func (s Severity) rank() int {
	switch s {
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	default:
		return 0
	}
}

// DelayPattern describes how long after an activity a symptom appeared
type DelayPattern string

const (
	DelayImmediate  DelayPattern = "immediate"
	DelayNextDay    DelayPattern = "next_day"
	DelayHoursLater DelayPattern = "hours_later"
	DelayDaysLater  DelayPattern = "days_later"
	DelayWeekLater  DelayPattern = "week_later"
)

// DurationUnit is the unit of a duration value
type DurationUnit string

const (
	UnitMinutes DurationUnit = "minutes"
	UnitHours   DurationUnit = "hours"
	UnitDays    DurationUnit = "days"
	UnitWeeks   DurationUnit = "weeks"
)

// DurationQualifier describes a partial-period duration ("half the night")
type DurationQualifier string

const (
	QualifierAll    DurationQualifier = "all"
	QualifierHalf   DurationQualifier = "half"
	QualifierMostOf DurationQualifier = "most_of"
)

// Progression describes how a symptom is trending
type Progression string

const (
	ProgressionWorsening   Progression = "progressive_worsening"
	ProgressionImproving   Progression = "progressive_improving"
	ProgressionRecurring   Progression = "recurring"
	ProgressionStable      Progression = "stable"
	ProgressionFluctuating Progression = "fluctuating"
)

// TimeOfDay buckets
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
	TimeAllDay    = "all_day"
)

// PainDetails holds qualifiers and location found around a pain mention
type PainDetails struct {
	Qualifiers []string `json:"qualifiers"`
	Location   string   `json:"location,omitempty"`
}

// ActivityTrigger links an activity to the symptom it set off
type ActivityTrigger struct {
	Activity         string       `json:"activity"`
	Timeframe        string       `json:"timeframe,omitempty"`
	DelayPattern     DelayPattern `json:"delayPattern,omitempty"`
	Confidence       float64      `json:"confidence,omitempty"`
	SentenceDistance int          `json:"sentenceDistance,omitempty"`
}

// SymptomDuration holds whatever duration facts were found for a symptom.
// Zero values mean "not found".
type SymptomDuration struct {
	Value       float64           `json:"value,omitempty"`
	Unit        DurationUnit      `json:"unit,omitempty"`
	Qualifier   DurationQualifier `json:"qualifier,omitempty"`
	Since       string            `json:"since,omitempty"`
	Ongoing     bool              `json:"ongoing,omitempty"`
	Progression Progression       `json:"progression,omitempty"`
}

// IsZero reports whether no field of the duration is set
func (d SymptomDuration) IsZero() bool {
	return d == SymptomDuration{}
}

// ExtractedSymptom is one structured observation pulled from a narrative
type ExtractedSymptom struct {
	Category    string           `json:"category"`
	MatchedText string           `json:"matchedText"`
	Method      Method           `json:"method"`
	Severity    Severity         `json:"severity,omitempty"`
	PainDetails *PainDetails     `json:"painDetails,omitempty"`
	Trigger     *ActivityTrigger `json:"trigger,omitempty"`
	Duration    *SymptomDuration `json:"duration,omitempty"`
	TimeOfDay   string           `json:"timeOfDay,omitempty"`
	// Confidence is zero until the scorer has run.
	Confidence float64 `json:"confidence,omitempty"`

	// byte offset of MatchedText in the normalized text
	pos int
	// token index for lemma matches, -1 otherwise
	token int
}

// Position returns the byte offset of the match in the normalized text
func (s ExtractedSymptom) Position() int {
	return s.pos
}

// SpoonCount is the document-level energy budget ("2 spoons left")
type SpoonCount struct {
	Current     int `json:"current"`
	Used        int `json:"used,omitempty"`
	Started     int `json:"started,omitempty"`
	EnergyLevel int `json:"energyLevel"`
}

// ExtractionResult is the output of one extraction pass
type ExtractionResult struct {
	Text           string             `json:"text"`
	Symptoms       []ExtractedSymptom `json:"symptoms"`
	SpoonCount     *SpoonCount        `json:"spoonCount,omitempty"`
	RepeatPrevious bool               `json:"repeatPrevious,omitempty"`
}

// Categories returns the category IDs present in the result, in order
func (r ExtractionResult) Categories() []string {
	out := make([]string, 0, len(r.Symptoms))
	for _, s := range r.Symptoms {
		out = append(out, s.Category)
	}
	return out
}

// Find returns the symptom for a category, if present
func (r ExtractionResult) Find(category string) (ExtractedSymptom, bool) {
	for _, s := range r.Symptoms {
		if s.Category == category {
			return s, true
		}
	}
	return ExtractedSymptom{}, false
}
