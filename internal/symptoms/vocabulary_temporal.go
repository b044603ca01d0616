package symptoms

// activities maps surface forms to canonical activity names
var activities = map[string]string{
	"walk": "walking", "walked": "walking", "walking": "walking", "walks": "walking",
	"run": "running", "ran": "running", "running": "running", "jog": "running", "jogging": "running",
	"exercise": "exercise", "exercised": "exercise", "exercising": "exercise",
	"workout": "exercise", "gym": "exercise", "yoga": "exercise", "pilates": "exercise",
	"swim": "swimming", "swam": "swimming", "swimming": "swimming",
	"stand": "standing", "stood": "standing", "standing": "standing",
	"clean": "cleaning", "cleaned": "cleaning", "cleaning": "cleaning", "hoovering": "cleaning", "vacuuming": "cleaning",
	"laundry": "laundry",
	"work": "working", "worked": "working", "working": "working", "shift": "working",
	"shopping": "shopping", "shopped": "shopping", "groceries": "shopping", "errands": "shopping",
	"shower": "showering", "showered": "showering", "showering": "showering", "bath": "showering",
	"cooking": "cooking", "cook": "cooking",
	"drive": "driving", "drove": "driving", "driving": "driving",
	"stairs": "stairs", "climbing": "stairs", "climbed": "stairs",
	"lifting": "lifting", "lifted": "lifting", "carrying": "lifting", "carried": "lifting",
	"gardening": "gardening", "gardened": "gardening",
	"socializing": "socializing", "socialising": "socializing", "party": "socializing", "visitors": "socializing",
	"travel": "traveling", "traveled": "traveling", "travelled": "traveling", "traveling": "traveling", "flight": "traveling",
	"reading": "reading",
	"screen": "screen_time", "screens": "screen_time", "computer": "screen_time", "typing": "screen_time",
	"talking": "talking", "call": "talking", "calls": "talking", "meeting": "talking", "meetings": "talking",
	"appointment": "appointment", "doctor's": "appointment",
	"eating": "eating", "ate": "eating", "meal": "eating", "dinner": "eating", "lunch": "eating",
}

// reliableTriggers are activities known to set off symptoms
var reliableTriggers = map[string]bool{
	"exercise": true, "running": true, "walking": true,
	"standing": true, "working": true, "cleaning": true,
}

// timeframeCues precede an activity ("after walking")
var timeframeCues = map[string]string{
	"after": "after", "from": "from", "during": "during", "since": "since",
	"following": "after", "while": "during", "post": "after", "before": "before",
}

var timeframePhrases = map[string]string{
	"every time":  "every_time",
	"each time":   "every_time",
	"right after": "after",
	"because of":  "from",
	"due to":      "from",
	"thanks to":   "from",
	"as soon as":  "after",
	"whenever i":  "every_time",
}

// triggerLinkable words count as symptom-bearing when looking around an activity
var triggerLinkable = map[string]bool{
	"tired": true, "exhausted": true, "dizzy": true, "crashed": true, "crash": true,
	"pain": true, "ache": true, "sore": true, "nauseous": true, "headache": true,
	"migraine": true, "foggy": true, "wiped": true, "drained": true, "weak": true,
	"breathless": true, "shaky": true, "sick": true, "flare": true, "flared": true,
	"hurt": true, "hurts": true, "symptoms": true, "payback": true, "relapse": true,
}

// triggerIneligible categories never receive activity triggers
var triggerIneligible = map[string]bool{
	"insomnia":           true,
	"hypersomnia":        true,
	"unrefreshing_sleep": true,
	"depression":         true,
}

// delayPhrases is matched in order; the earliest occurrence wins
var delayPhrases = []struct {
	phrase  string
	pattern DelayPattern
}{
	{"the following day", DelayNextDay},
	{"the next morning", DelayNextDay},
	{"the day after", DelayNextDay},
	{"next morning", DelayNextDay},
	{"next day", DelayNextDay},
	{"a few hours later", DelayHoursLater},
	{"couple of hours later", DelayHoursLater},
	{"couple hours later", DelayHoursLater},
	{"hours later", DelayHoursLater},
	{"later that day", DelayHoursLater},
	{"later that night", DelayHoursLater},
	{"that evening", DelayHoursLater},
	{"a few days later", DelayDaysLater},
	{"couple of days later", DelayDaysLater},
	{"couple days later", DelayDaysLater},
	{"days later", DelayDaysLater},
	{"a week later", DelayWeekLater},
	{"week later", DelayWeekLater},
	{"immediately", DelayImmediate},
	{"right away", DelayImmediate},
	{"straight away", DelayImmediate},
	{"straightaway", DelayImmediate},
	{"instantly", DelayImmediate},
	{"within minutes", DelayImmediate},
	{"right after", DelayImmediate},
}

// numberWords resolves small spelled-out counts
var numberWords = map[string]float64{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11,
	"twelve": 12, "fifteen": 15, "twenty": 20, "couple": 2, "a couple": 2,
	"a couple of": 2, "couple of": 2, "a few": 3, "few": 3, "several": 3,
}

// numberPattern is the shared regexp fragment for a count
const numberPattern = `(\d+(?:\.\d+)?|a couple of|a couple|couple of|a few|several|couple|few|an|a|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|fifteen|twenty)`

// qualifierPhrases are partial-period duration phrases, longest first
var qualifierPhrases = []struct {
	phrase    string
	qualifier DurationQualifier
}{
	{"most of the afternoon", QualifierMostOf},
	{"most of the morning", QualifierMostOf},
	{"most of the evening", QualifierMostOf},
	{"most of the night", QualifierMostOf},
	{"half the afternoon", QualifierHalf},
	{"most of the day", QualifierMostOf},
	{"half the morning", QualifierHalf},
	{"half the evening", QualifierHalf},
	{"half the night", QualifierHalf},
	{"all afternoon", QualifierAll},
	{"half the day", QualifierHalf},
	{"all evening", QualifierAll},
	{"all morning", QualifierAll},
	{"all night", QualifierAll},
	{"all day", QualifierAll},
}

// recoveryPhrases are fixed recovery idioms without a count
var recoveryPhrases = []struct {
	phrase   string
	duration SymptomDuration
}{
	{"still not recovered", SymptomDuration{Ongoing: true}},
	{"haven't recovered", SymptomDuration{Ongoing: true}},
	{"not recovering", SymptomDuration{Ongoing: true}},
	{"recovered overnight", SymptomDuration{Value: 8, Unit: UnitHours}},
	{"recovers overnight", SymptomDuration{Value: 8, Unit: UnitHours}},
	{"quick recovery", SymptomDuration{Value: 4, Unit: UnitHours}},
	{"slow recovery", SymptomDuration{Unit: UnitDays}},
}

// progressionPhrases is kept longest first
var progressionPhrases = []struct {
	phrase      string
	progression Progression
}{
	{"good days and bad days", ProgressionFluctuating},
	{"keeps getting worse", ProgressionWorsening},
	{"keeps coming back", ProgressionRecurring},
	{"slowly getting better", ProgressionImproving},
	{"better each day", ProgressionImproving},
	{"same as always", ProgressionStable},
	{"worse and worse", ProgressionWorsening},
	{"going downhill", ProgressionWorsening},
	{"getting better", ProgressionImproving},
	{"hasn't changed", ProgressionStable},
	{"comes and goes", ProgressionRecurring},
	{"getting worse", ProgressionWorsening},
	{"ups and downs", ProgressionFluctuating},
	{"on the mend", ProgressionImproving},
	{"fluctuating", ProgressionFluctuating},
	{"on and off", ProgressionRecurring},
	{"up and down", ProgressionFluctuating},
	{"easing off", ProgressionImproving},
	{"spiraling", ProgressionWorsening},
	{"worsening", ProgressionWorsening},
	{"easing up", ProgressionImproving},
	{"improving", ProgressionImproving},
	{"recurring", ProgressionRecurring},
	{"no change", ProgressionStable},
	{"unchanged", ProgressionStable},
	{"steady", ProgressionStable},
	{"stable", ProgressionStable},
}

// ongoingWords mark a symptom as still present
var ongoingWords = map[string]bool{
	"still": true, "ongoing": true, "constantly": true, "constant": true,
	"persistent": true, "persisting": true, "nonstop": true, "continuous": true,
	"continuously": true, "lingering": true, "chronic": true, "relentless": true,
}

// sinceTargets are the anchors accepted after "since"
const sinceTargets = `(yesterday|last night|this morning|last week|the weekend|the crash|monday|tuesday|wednesday|thursday|friday|saturday|sunday|last month|this afternoon|lunch|breakfast|dinner|the morning|christmas)`

// timeOfDayPhrases, longest first
var timeOfDayPhrases = []struct {
	phrase string
	bucket string
}{
	{"middle of the night", TimeNight},
	{"when i woke up", TimeMorning},
	{"first thing", TimeMorning},
	{"in the morning", TimeMorning},
	{"entire day", TimeAllDay},
	{"this afternoon", TimeAfternoon},
	{"this morning", TimeMorning},
	{"woke up with", TimeMorning},
	{"in the evening", TimeEvening},
	{"this evening", TimeEvening},
	{"after dinner", TimeEvening},
	{"after lunch", TimeAfternoon},
	{"all day long", TimeAllDay},
	{"before bed", TimeNight},
	{"last night", TimeNight},
	{"whole day", TimeAllDay},
	{"afternoon", TimeAfternoon},
	{"overnight", TimeNight},
	{"at night", TimeNight},
	{"bedtime", TimeNight},
	{"all day", TimeAllDay},
	{"mornings", TimeMorning},
	{"morning", TimeMorning},
	{"evening", TimeEvening},
	{"midday", TimeAfternoon},
	{"tonight", TimeNight},
	{"night", TimeNight},
}
