package symptoms

// painWords anchor a pain-detail search
var painWords = map[string]bool{
	"pain": true, "pains": true, "painful": true, "hurt": true, "hurts": true,
	"hurting": true, "ache": true, "aches": true, "aching": true, "achy": true,
	"sore": true, "soreness": true, "tender": true, "twinge": true, "twinges": true,
}

// painQualifiers maps surface forms to canonical qualifiers
var painQualifiers = map[string]string{
	"sharp":     "sharp",
	"stabbing":  "stabbing",
	"shooting":  "shooting",
	"burning":   "burning",
	"throbbing": "throbbing",
	"pounding":  "throbbing",
	"pulsing":   "throbbing",
	"dull":      "dull",
	"aching":    "aching",
	"achy":      "aching",
	"cramping":  "cramping",
	"crampy":    "cramping",
	"cramps":    "cramping",
	"stinging":  "stinging",
	"gnawing":   "gnawing",
	"piercing":  "piercing",
	"radiating": "radiating",
	"tight":     "tight",
	"squeezing": "tight",
	"constant":  "constant",
	"nagging":   "nagging",
	"deep":      "deep",
	"electric":  "electric",
	"tearing":   "tearing",
}

// locationFillers are skipped when reading a body location after a pain word
var locationFillers = map[string]bool{
	"my": true, "the": true, "his": true, "her": true, "their": true,
	"both": true, "a": true, "left": true, "right": true, "whole": true,
}

// jointLocations has the highest priority when resolving a location
var jointLocations = map[string]string{
	"knee": "knee", "knees": "knee",
	"elbow": "elbow", "elbows": "elbow",
	"wrist": "wrist", "wrists": "wrist",
	"ankle": "ankle", "ankles": "ankle",
	"hip": "hip", "hips": "hip",
	"shoulder": "shoulder", "shoulders": "shoulder",
	"knuckles": "fingers", "finger joints": "fingers", "fingers": "fingers",
	"jaw": "jaw", "tmj": "jaw",
	"joints": "joints", "all my joints": "joints",
	"sacroiliac joint": "lower_back", "si joint": "lower_back",
}

var muscleLocations = map[string]string{
	"calf": "calves", "calves": "calves",
	"thigh": "thighs", "thighs": "thighs",
	"hamstrings": "thighs", "quads": "thighs",
	"biceps": "arms", "forearms": "arms", "forearm": "arms",
	"shoulder blades": "upper_back", "shoulder blade": "upper_back",
	"traps": "neck", "glutes": "hip",
	"muscles": "muscles",
}

var bodyLocations = map[string]string{
	"back of head": "head", "side of head": "head", "top of head": "head",
	"back of neck": "neck", "base of skull": "neck",
	"behind eyes": "eyes", "behind my eyes": "eyes",
	"lower back": "lower_back", "upper back": "upper_back", "mid back": "upper_back",
	"head": "head", "temple": "temple", "temples": "temple",
	"forehead": "forehead", "skull": "head",
	"neck": "neck",
	"back": "back", "spine": "back",
	"stomach": "stomach", "abdomen": "abdomen", "belly": "belly",
	"tummy": "belly", "gut": "stomach",
	"chest": "chest", "ribs": "chest", "sternum": "chest",
	"arm": "arms", "arms": "arms",
	"leg": "legs", "legs": "legs",
	"foot": "feet", "feet": "feet",
	"hand": "hands", "hands": "hands",
	"eye": "eyes", "eyes": "eyes",
	"throat": "throat", "ear": "ears", "ears": "ears",
	"pelvis": "pelvis", "side": "side",
	"everywhere": "whole_body", "body": "whole_body",
}

// locationTables is the resolution priority order
var locationTables = []map[string]string{jointLocations, muscleLocations, bodyLocations}

// locationCategories maps a location tag to a specific pain category;
// anything absent maps to the generic "pain" category
var locationCategories = map[string]string{
	"head":       "headache",
	"temple":     "headache",
	"forehead":   "headache",
	"neck":       "neck_pain",
	"back":       "back_pain",
	"lower_back": "back_pain",
	"upper_back": "back_pain",
	"stomach":    "gi_pain",
	"abdomen":    "gi_pain",
	"belly":      "gi_pain",
	"chest":      "chest_pain",
}

// CategoryForLocation maps a canonical body location to a pain category
func CategoryForLocation(location string) string {
	if c, ok := locationCategories[location]; ok {
		return c
	}
	return "pain"
}
