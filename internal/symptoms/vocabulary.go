package symptoms

import (
	"sort"
	"strings"
)

// CategoryInfo pairs a category ID with its display name
type CategoryInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

var categoryList = []CategoryInfo{
	{"fatigue", "Fatigue"},
	{"pem", "Post-exertional malaise"},
	{"brain_fog", "Brain fog"},
	{"memory_problems", "Memory problems"},
	{"word_finding", "Word-finding difficulty"},
	{"headache", "Headache"},
	{"migraine", "Migraine"},
	{"pain", "Pain"},
	{"neck_pain", "Neck pain"},
	{"back_pain", "Back pain"},
	{"chest_pain", "Chest pain"},
	{"gi_pain", "Stomach pain"},
	{"joint_pain", "Joint pain"},
	{"muscle_pain", "Muscle pain"},
	{"muscle_spasms", "Muscle spasms"},
	{"weakness", "Weakness"},
	{"nausea", "Nausea"},
	{"vomiting", "Vomiting"},
	{"bloating", "Bloating"},
	{"diarrhea", "Diarrhea"},
	{"constipation", "Constipation"},
	{"heartburn", "Heartburn"},
	{"appetite_loss", "Loss of appetite"},
	{"dizziness", "Dizziness"},
	{"orthostatic_intolerance", "Orthostatic intolerance"},
	{"fainting", "Fainting"},
	{"palpitations", "Palpitations"},
	{"shortness_of_breath", "Shortness of breath"},
	{"insomnia", "Insomnia"},
	{"hypersomnia", "Oversleeping"},
	{"unrefreshing_sleep", "Unrefreshing sleep"},
	{"anxiety", "Anxiety"},
	{"depression", "Low mood"},
	{"irritability", "Irritability"},
	{"sore_throat", "Sore throat"},
	{"swollen_glands", "Swollen glands"},
	{"fever", "Fever"},
	{"chills", "Chills"},
	{"sweating", "Sweating"},
	{"cough", "Cough"},
	{"congestion", "Congestion"},
	{"light_sensitivity", "Light sensitivity"},
	{"sound_sensitivity", "Sound sensitivity"},
	{"tinnitus", "Tinnitus"},
	{"blurred_vision", "Blurred vision"},
	{"numbness", "Numbness"},
	{"tingling", "Tingling"},
	{"tremor", "Tremor"},
	{"rash", "Rash"},
	{"itching", "Itching"},
	{"temperature_dysregulation", "Temperature dysregulation"},
	{"overstimulation", "Sensory overload"},
}

var displayNames = func() map[string]string {
	m := make(map[string]string, len(categoryList))
	for _, c := range categoryList {
		m[c.ID] = c.DisplayName
	}
	return m
}()

// Categories returns every built-in category in display order
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryList))
	copy(out, categoryList)
	return out
}

// DisplayName returns the display name for a category, falling back to the ID
func DisplayName(category string) string {
	if name, ok := displayNames[category]; ok {
		return name
	}
	return category
}

// IsKnownCategory reports whether category is a built-in category ID
func IsKnownCategory(category string) bool {
	_, ok := displayNames[category]
	return ok
}

// builtinLemmas maps single words to categories
var builtinLemmas = map[string]string{
	// fatigue
	"tired": "fatigue", "exhausted": "fatigue", "exhaustion": "fatigue",
	"fatigue": "fatigue", "fatigued": "fatigue", "drained": "fatigue",
	"wiped": "fatigue", "weary": "fatigue", "lethargic": "fatigue",
	"sluggish": "fatigue", "knackered": "fatigue", "depleted": "fatigue",
	"shattered": "fatigue", "wrecked": "fatigue", "destroyed": "fatigue",
	"toast": "fatigue", "cooked": "fatigue", "beat": "fatigue",
	// pem
	"crash": "pem", "crashed": "pem", "crashing": "pem", "pem": "pem",
	"relapse": "pem", "pushed": "pem", "overdid": "pem",
	// cognition
	"foggy": "brain_fog", "fog": "brain_fog", "forgetful": "memory_problems",
	"confused": "brain_fog",
	// head
	"headache": "headache", "headaches": "headache", "head": "headache",
	"migraine": "migraine", "migraines": "migraine",
	// pain
	"pain": "pain", "painful": "pain", "hurts": "pain", "hurting": "pain",
	"ache": "pain", "aches": "pain", "aching": "pain", "achy": "pain",
	"sore": "pain", "sharp": "pain", "burning": "pain",
	"back": "back_pain", "backache": "back_pain",
	"neck": "neck_pain",
	"chest": "chest_pain",
	"stomachache": "gi_pain", "cramps": "gi_pain",
	"joint": "joint_pain", "joints": "joint_pain",
	"muscle": "muscle_pain", "muscles": "muscle_pain",
	"spasms": "muscle_spasms", "twitching": "muscle_spasms",
	"weak": "weakness", "weakness": "weakness",
	// gi
	"nausea": "nausea", "nauseous": "nausea", "nauseated": "nausea",
	"queasy": "nausea", "eating": "nausea",
	"vomiting": "vomiting", "vomited": "vomiting", "puked": "vomiting",
	"bloated": "bloating", "bloating": "bloating",
	"diarrhea": "diarrhea", "diarrhoea": "diarrhea",
	"constipated": "constipation", "constipation": "constipation",
	"heartburn": "heartburn", "reflux": "heartburn",
	// autonomic
	"dizzy": "dizziness", "dizziness": "dizziness", "lightheaded": "dizziness",
	"vertigo": "dizziness", "spinning": "dizziness",
	"fainted": "fainting", "faint": "fainting",
	"palpitations": "palpitations", "racing": "palpitations", "race": "palpitations",
	"breathless": "shortness_of_breath",
	// sleep
	"insomnia": "insomnia", "sleepless": "insomnia",
	"oversleeping": "hypersomnia", "overslept": "hypersomnia", "hypersomnia": "hypersomnia",
	// mood
	"anxious": "anxiety", "anxiety": "anxiety", "panicky": "anxiety",
	"depressed": "depression", "hopeless": "depression",
	"irritable": "irritability", "snappy": "irritability",
	// immune
	"feverish": "fever", "fever": "fever",
	"chills": "chills", "shivery": "chills",
	"sweaty": "sweating", "sweating": "sweating",
	"cough": "cough", "coughing": "cough",
	"congested": "congestion", "congestion": "congestion",
	// sensory
	"tinnitus": "tinnitus",
	"numb": "numbness", "numbness": "numbness",
	"tingling": "tingling", "tingly": "tingling",
	"tremor": "tremor", "tremors": "tremor", "shaky": "tremor", "trembling": "tremor",
	"rash": "rash", "hives": "rash",
	"itchy": "itching", "itching": "itching",
	"overstimulated": "overstimulation", "overwhelmed": "overstimulation",
}

// builtinPhrases maps multi-word phrases to categories
var builtinPhrases = map[string]string{
	"post exertional malaise":     "pem",
	"post exertional":             "pem",
	"hit a wall":                  "pem",
	"payback from":                "pem",
	"crashed hard":                "pem",
	"in a crash":                  "pem",
	"brain fog":                   "brain_fog",
	"can't think":                 "brain_fog",
	"can't concentrate":           "brain_fog",
	"cannot concentrate":          "brain_fog",
	"trouble concentrating":       "brain_fog",
	"hard to focus":               "brain_fog",
	"can't focus":                 "brain_fog",
	"can't remember":              "memory_problems",
	"memory is shot":              "memory_problems",
	"can't find words":            "word_finding",
	"can't find the words":        "word_finding",
	"word finding":                "word_finding",
	"losing words":                "word_finding",
	"completely wiped out":        "fatigue",
	"wiped out":                   "fatigue",
	"running on empty":            "fatigue",
	"no energy":                   "fatigue",
	"zero energy":                 "fatigue",
	"low energy":                  "fatigue",
	"bone tired":                  "fatigue",
	"heavy limbs":                 "weakness",
	"legs like jelly":             "weakness",
	"migraine attack":             "migraine",
	"splitting headache":          "headache",
	"pounding head":               "headache",
	"back pain":                   "back_pain",
	"lower back":                  "back_pain",
	"neck pain":                   "neck_pain",
	"stiff neck":                  "neck_pain",
	"chest pain":                  "chest_pain",
	"tight chest":                 "chest_pain",
	"chest tightness":             "chest_pain",
	"stomach ache":                "gi_pain",
	"stomach pain":                "gi_pain",
	"tummy ache":                  "gi_pain",
	"joint pain":                  "joint_pain",
	"muscle aches":                "muscle_pain",
	"muscle pain":                 "muscle_pain",
	"body aches":                  "pain",
	"muscle spasms":               "muscle_spasms",
	"upset stomach":               "nausea",
	"felt sick":                   "nausea",
	"feel sick":                   "nausea",
	"throwing up":                 "vomiting",
	"threw up":                    "vomiting",
	"acid reflux":                 "heartburn",
	"no appetite":                 "appetite_loss",
	"lost my appetite":            "appetite_loss",
	"not hungry":                  "appetite_loss",
	"dizzy when standing":         "orthostatic_intolerance",
	"dizzy when i stand":          "orthostatic_intolerance",
	"lightheaded when standing":   "orthostatic_intolerance",
	"can't stand for long":        "orthostatic_intolerance",
	"blood pooling":               "orthostatic_intolerance",
	"passed out":                  "fainting",
	"blacked out":                 "fainting",
	"nearly fainted":              "fainting",
	"heart racing":                "palpitations",
	"heart pounding":              "palpitations",
	"racing heart":                "palpitations",
	"heart skipping":              "palpitations",
	"short of breath":             "shortness_of_breath",
	"out of breath":               "shortness_of_breath",
	"can't breathe":               "shortness_of_breath",
	"air hunger":                  "shortness_of_breath",
	"can't sleep":                 "insomnia",
	"couldn't sleep":              "insomnia",
	"could not sleep":             "insomnia",
	"trouble sleeping":            "insomnia",
	"up all night":                "insomnia",
	"tired but wired":             "insomnia",
	"wired but tired":             "insomnia",
	"slept all day":               "hypersomnia",
	"sleeping too much":           "hypersomnia",
	"can't stay awake":            "hypersomnia",
	"couldn't stay awake":         "hypersomnia",
	"unrefreshing sleep":          "unrefreshing_sleep",
	"woke up exhausted":           "unrefreshing_sleep",
	"woke up tired":               "unrefreshing_sleep",
	"slept badly":                 "unrefreshing_sleep",
	"panic attack":                "anxiety",
	"on edge":                     "anxiety",
	"low mood":                    "depression",
	"feeling down":                "depression",
	"short fuse":                  "irritability",
	"sore throat":                 "sore_throat",
	"scratchy throat":             "sore_throat",
	"swollen glands":              "swollen_glands",
	"swollen lymph nodes":         "swollen_glands",
	"tender lymph nodes":          "swollen_glands",
	"low grade fever":             "fever",
	"running a temperature":       "fever",
	"night sweats":                "sweating",
	"hot flashes":                 "temperature_dysregulation",
	"can't regulate temperature":  "temperature_dysregulation",
	"freezing cold":               "temperature_dysregulation",
	"runny nose":                  "congestion",
	"stuffy nose":                 "congestion",
	"light sensitivity":           "light_sensitivity",
	"sensitive to light":          "light_sensitivity",
	"lights too bright":           "light_sensitivity",
	"sound sensitivity":           "sound_sensitivity",
	"sensitive to noise":          "sound_sensitivity",
	"sensitive to sound":          "sound_sensitivity",
	"noise sensitivity":           "sound_sensitivity",
	"ringing in my ears":          "tinnitus",
	"ringing ears":                "tinnitus",
	"blurry vision":               "blurred_vision",
	"blurred vision":              "blurred_vision",
	"can't see straight":          "blurred_vision",
	"pins and needles":            "tingling",
	"sensory overload":            "overstimulation",
	"too much noise":              "overstimulation",
}

// phraseEntry is one row of an ordered phrase table
type phraseEntry struct {
	phrase   string
	category string
}

// orderPhrases sorts phrases longest first, ties alphabetically
func orderPhrases(table map[string]string) []phraseEntry {
	out := make([]phraseEntry, 0, len(table))
	for p, c := range table {
		out = append(out, phraseEntry{phrase: p, category: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].phrase) != len(out[j].phrase) {
			return len(out[i].phrase) > len(out[j].phrase)
		}
		return out[i].phrase < out[j].phrase
	})
	return out
}

var orderedBuiltinPhrases = orderPhrases(builtinPhrases)

// splitCustomLemmas separates a user vocabulary into single words and
// space-containing phrases, normalizing keys and dropping empty entries
func splitCustomLemmas(custom map[string]string) (words map[string]string, phrases []phraseEntry) {
	words = make(map[string]string)
	phraseTable := make(map[string]string)
	for key, category := range custom {
		k := strings.Join(strings.Fields(Normalize(key)), " ")
		c := strings.TrimSpace(category)
		if k == "" || c == "" {
			continue
		}
		if strings.Contains(k, " ") {
			phraseTable[k] = c
		} else {
			words[k] = c
		}
	}
	return words, orderPhrases(phraseTable)
}

// mergeLemmas overlays custom single words on the built-in lemma table
func mergeLemmas(custom map[string]string) map[string]string {
	if len(custom) == 0 {
		return builtinLemmas
	}
	merged := make(map[string]string, len(builtinLemmas)+len(custom))
	for k, v := range builtinLemmas {
		merged[k] = v
	}
	for k, v := range custom {
		merged[k] = v
	}
	return merged
}

// severityKeywords maps single words to severity
var severityKeywords = map[string]Severity{
	"mild": SeverityMild, "mildly": SeverityMild, "slight": SeverityMild,
	"slightly": SeverityMild, "minor": SeverityMild, "manageable": SeverityMild,
	"niggling": SeverityMild,

	"moderate": SeverityModerate, "moderately": SeverityModerate,
	"somewhat": SeverityModerate, "fairly": SeverityModerate,
	"noticeable": SeverityModerate, "annoying": SeverityModerate,

	"severe": SeveritySevere, "severely": SeveritySevere, "terrible": SeveritySevere,
	"awful": SeveritySevere, "horrible": SeveritySevere, "extreme": SeveritySevere,
	"extremely": SeveritySevere, "unbearable": SeveritySevere,
	"excruciating": SeveritySevere, "debilitating": SeveritySevere,
	"intense": SeveritySevere, "agonizing": SeveritySevere, "crippling": SeveritySevere,
	"brutal": SeveritySevere, "worst": SeveritySevere, "horrendous": SeveritySevere,
}

// severityPhrases are matched as substrings of a re-joined token window
var severityPhrases = []struct {
	phrase   string
	severity Severity
}{
	{"off the charts", SeveritySevere},
	{"through the roof", SeveritySevere},
	{"really bad", SeveritySevere},
	{"very bad", SeveritySevere},
	{"so bad", SeveritySevere},
	{"the worst", SeveritySevere},
	{"pretty bad", SeverityModerate},
	{"quite bad", SeverityModerate},
	{"not great", SeverityModerate},
	{"a little", SeverityMild},
	{"a bit", SeverityMild},
	{"kind of", SeverityMild},
	{"sort of", SeverityMild},
}

// defaultSeverityBySymptom is used when no severity was detected
var defaultSeverityBySymptom = map[string]Severity{
	"pem":                     SeveritySevere,
	"migraine":                SeveritySevere,
	"fainting":                SeveritySevere,
	"chest_pain":              SeveritySevere,
	"vomiting":                SeverityModerate,
	"orthostatic_intolerance": SeverityModerate,
	"tinnitus":                SeverityMild,
	"itching":                 SeverityMild,
}

// Comparative is a day-over-day comparison
type Comparative string

const (
	ComparativeNone   Comparative = ""
	ComparativeWorse  Comparative = "worse"
	ComparativeBetter Comparative = "better"
	ComparativeSame   Comparative = "same"
)

// comparativePhrases is checked in order; the first hit wins
var comparativePhrases = []struct {
	phrase      string
	comparative Comparative
}{
	{"not as bad as", ComparativeBetter},
	{"no better than", ComparativeSame},
	{"same as yesterday", ComparativeSame},
	{"same as usual", ComparativeSame},
	{"about the same", ComparativeSame},
	{"worse than", ComparativeWorse},
	{"better than", ComparativeBetter},
	{"getting worse", ComparativeWorse},
	{"getting better", ComparativeBetter},
	{"worsening", ComparativeWorse},
	{"improving", ComparativeBetter},
	{"worse", ComparativeWorse},
	{"better", ComparativeBetter},
}

// rareCategories earn a confidence bonus when matched by phrase
var rareCategories = map[string]bool{
	"pem":                       true,
	"orthostatic_intolerance":   true,
	"fainting":                  true,
	"word_finding":              true,
	"swollen_glands":            true,
	"tinnitus":                  true,
	"unrefreshing_sleep":        true,
	"temperature_dysregulation": true,
}

// conflictingPairs lists categories that cannot both be true of one entry
var conflictingPairs = [][2]string{
	{"insomnia", "hypersomnia"},
}
