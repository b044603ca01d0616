package symptoms

// ContextRule decides whether an ambiguous lemma really names a symptom
type ContextRule struct {
	Window       int
	Supporting   []string
	Invalidating []string
	// InvalidatingReach, when set, lets an invalidating word this many
	// tokens from the lemma or closer override any supporting word
	InvalidatingReach int
	// MinConfidenceWithoutContext caps confidence when neither list matched
	MinConfidenceWithoutContext float64
}

var (
	crashRule = ContextRule{
		Window: 6,
		Supporting: []string{"hard", "bed", "couch", "sofa", "exhausted", "pem",
			"symptoms", "body", "recovering", "recover", "payback", "flare", "relapse"},
		Invalidating: []string{"server", "servers", "computer", "car", "app", "phone", "laptop",
			"website", "site", "stock", "market", "program", "system", "game", "plane",
			"browser", "software", "code", "bike", "wave", "cymbal", "drive", "pc",
			"tablet", "network", "database", "internet", "wifi", "printer"},
		InvalidatingReach:           2,
		MinConfidenceWithoutContext: 0.35,
	}
	fatigueSlangSupport = []string{"so", "totally", "completely", "absolutely", "utterly",
		"feel", "feeling", "felt", "i'm", "im", "am", "was", "exhausted", "tired", "dead"}
	painSupport = []string{"pain", "pains", "hurts", "hurt", "hurting", "ache", "aches",
		"aching", "sore", "stiff", "spasm", "spasms", "throbbing", "killing", "agony", "tender"}
)

// contextRules is the curated set of ambiguous lemmas
var contextRules = map[string]ContextRule{
	"crash":   crashRule,
	"crashed": crashRule,
	"head": {
		Window:       4,
		Supporting:   append([]string{"pounding", "splitting", "pressure", "heavy", "spinning", "exploding"}, painSupport...),
		Invalidating: []string{"office", "teacher", "start", "out", "towards", "toward", "ahead", "table", "count", "shoulders", "cheese", "lettuce"},
		MinConfidenceWithoutContext: 0.3,
	},
	"back": {
		Window:       4,
		Supporting:   append([]string{"lower", "upper", "spasm", "threw", "put"}, painSupport...),
		Invalidating: []string{"came", "come", "coming", "go", "going", "went", "get", "got", "bring", "brought", "call", "called", "text", "texted", "feedback", "way", "home", "drive", "drove", "walked", "looking", "step", "pushed"},
		MinConfidenceWithoutContext: 0.3,
	},
	"neck": {
		Window:       4,
		Supporting:   append([]string{"crick", "tension", "tight"}, painSupport...),
		Invalidating: []string{"bottle", "woods", "turtleneck", "giraffe", "guitar", "breathing"},
		MinConfidenceWithoutContext: 0.3,
	},
	"chest": {
		Window:       4,
		Supporting:   append([]string{"tight", "tightness", "pressure", "heavy", "squeezing", "crushing"}, painSupport...),
		Invalidating: []string{"drawers", "treasure", "toy", "ice", "off", "hair", "freezer"},
		MinConfidenceWithoutContext: 0.3,
	},
	"joint": {
		Window:       4,
		Supporting:   append([]string{"swollen", "stiffness", "inflamed", "popping"}, painSupport...),
		Invalidating: []string{"account", "venture", "effort", "decision", "statement", "smoke", "rolled", "custody", "session"},
		MinConfidenceWithoutContext: 0.3,
	},
	"joints": {
		Window:       4,
		Supporting:   append([]string{"swollen", "stiffness", "inflamed", "popping", "all"}, painSupport...),
		Invalidating: []string{"smoke", "rolled", "burger", "restaurants"},
		MinConfidenceWithoutContext: 0.3,
	},
	"muscle": {
		Window:       4,
		Supporting:   append([]string{"weak", "weakness", "twitch", "twitching", "cramp", "cramping", "tight", "fatigue"}, painSupport...),
		Invalidating: []string{"car", "memory", "flex", "build", "building", "gain", "mass", "relaxant"},
		MinConfidenceWithoutContext: 0.3,
	},
	"muscles": {
		Window:       4,
		Supporting:   append([]string{"weak", "weakness", "twitch", "twitching", "cramp", "cramping", "tight", "burn"}, painSupport...),
		Invalidating: []string{"flex", "build", "building", "gain", "toned"},
		MinConfidenceWithoutContext: 0.3,
	},
	"sharp": {
		Window:       4,
		Supporting:   []string{"pain", "pains", "stab", "stabbing", "shooting", "twinge", "hurt", "hurts", "jab"},
		Invalidating: []string{"look", "looking", "looked", "dressed", "mind", "knife", "turn", "cheese", "contrast", "edge", "pencil", "eye", "tongue", "o'clock"},
		MinConfidenceWithoutContext: 0.25,
	},
	"burning": {
		Window:       4,
		Supporting:   []string{"pain", "sensation", "feet", "hands", "skin", "chest", "stomach", "eyes", "throat", "hurts", "nerve", "nerves"},
		Invalidating: []string{"candle", "candles", "fire", "wood", "calories", "bridges", "question", "desire", "money", "incense", "toast"},
		MinConfidenceWithoutContext: 0.25,
	},
	"race": {
		Window:       5,
		Supporting:   []string{"heart", "pulse", "heartbeat", "chest", "pounding"},
		Invalidating: []string{"car", "horse", "track", "won", "win", "lost", "watch", "watched", "marathon", "relay", "human", "rat", "against"},
		MinConfidenceWithoutContext: 0.2,
	},
	"racing": {
		Window:       5,
		Supporting:   []string{"heart", "pulse", "heartbeat", "chest", "pounding", "bpm"},
		Invalidating: []string{"car", "cars", "horse", "track", "thoughts", "mind", "watch", "watching", "game", "bike", "f1", "formula"},
		MinConfidenceWithoutContext: 0.2,
	},
	"beat": {
		Window:       4,
		Supporting:   fatigueSlangSupport,
		Invalidating: []string{"heart", "game", "team", "record", "eggs", "drum", "drums", "music", "song", "them", "us", "traffic", "deadline", "level", "boss"},
		MinConfidenceWithoutContext: 0.3,
	},
	"shattered": {
		Window:       4,
		Supporting:   fatigueSlangSupport,
		Invalidating: []string{"glass", "window", "screen", "phone", "vase", "record", "dreams", "mirror", "cup", "plate"},
		MinConfidenceWithoutContext: 0.35,
	},
	"wrecked": {
		Window:       4,
		Supporting:   fatigueSlangSupport,
		Invalidating: []string{"car", "bike", "truck", "ship", "house", "room", "kitchen", "train"},
		MinConfidenceWithoutContext: 0.35,
	},
	"destroyed": {
		Window:       4,
		Supporting:   fatigueSlangSupport,
		Invalidating: []string{"house", "file", "files", "evidence", "property", "city", "team", "crops", "documents", "building"},
		MinConfidenceWithoutContext: 0.35,
	},
	"toast": {
		Window:       4,
		Supporting:   fatigueSlangSupport,
		Invalidating: []string{"bread", "butter", "ate", "eat", "eating", "breakfast", "jam", "raise", "raised", "made", "make", "french", "avocado"},
		MinConfidenceWithoutContext: 0.3,
	},
	"cooked": {
		Window:       4,
		Supporting:   fatigueSlangSupport,
		Invalidating: []string{"dinner", "lunch", "meal", "food", "chicken", "rice", "breakfast", "pasta", "ate", "soup", "eggs"},
		MinConfidenceWithoutContext: 0.3,
	},
	"spinning": {
		Window:       4,
		Supporting:   []string{"room", "head", "dizzy", "world", "vertigo", "everything", "lightheaded"},
		Invalidating: []string{"class", "wheel", "bike", "wool", "yarn", "top", "records", "gym", "plates"},
		MinConfidenceWithoutContext: 0.3,
	},
	"eating": {
		Window:       5,
		Supporting:   []string{"after", "since", "sick", "queasy", "nauseous", "stomach", "gut", "bloated", "vomit", "heave"},
		Invalidating: []string{"healthy", "dinner", "lunch", "breakfast", "restaurant", "out", "meal", "snack", "pizza", "enjoyed", "clean"},
		MinConfidenceWithoutContext: 0.2,
	},
	"pushed": {
		Window:       5,
		Supporting:   []string{"too", "hard", "myself", "through", "limits", "limit", "overdid", "past", "envelope", "boundaries"},
		Invalidating: []string{"button", "door", "cart", "car", "stroller", "pram", "meeting", "deadline", "date", "swing", "back", "update", "commit"},
		MinConfidenceWithoutContext: 0.3,
	},
}
