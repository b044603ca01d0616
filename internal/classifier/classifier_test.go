package classifier

import (
	"testing"
)

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantIntent Intent
		minConf    float64
	}{
		// Repeat previous
		{
			name:       "same as yesterday",
			input:      "Same as yesterday honestly",
			wantIntent: IntentRepeatPrevious,
			minConf:    0.85,
		},
		{
			name:       "repeat wins over symptoms",
			input:      "still the same, tired and sore",
			wantIntent: IntentRepeatPrevious,
			minConf:    0.85,
		},

		// Symptom reports
		{
			name:       "fatigue and headache",
			input:      "So tired today and my headache is back",
			wantIntent: IntentSymptom,
			minConf:    0.8,
		},
		{
			name:       "crash",
			input:      "Crashed after the appointment",
			wantIntent: IntentSymptom,
			minConf:    0.75,
		},
		{
			name:       "body part hurts",
			input:      "my knee hurts",
			wantIntent: IntentSymptom,
			minConf:    0.75,
		},

		// Energy updates
		{
			name:       "spoons",
			input:      "3 spoons left",
			wantIntent: IntentEnergyUpdate,
			minConf:    0.75,
		},
		{
			name:       "battery",
			input:      "Social battery is empty",
			wantIntent: IntentEnergyUpdate,
			minConf:    0.75,
		},

		// Good days
		{
			name:       "good day",
			input:      "Actually a good day!",
			wantIntent: IntentGoodDay,
			minConf:    0.8,
		},
		{
			name:       "feeling fine",
			input:      "feeling fine, nothing much",
			wantIntent: IntentGoodDay,
			minConf:    0.8,
		},

		// Unclear intents
		{
			name:       "random text",
			input:      "xyz abc 123",
			wantIntent: IntentUnclear,
			minConf:    0.3,
		},
	}

	classifier := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(tt.input)

			if result.Intent != tt.wantIntent {
				t.Errorf("Classify() intent = %v, want %v", result.Intent, tt.wantIntent)
			}

			if result.Confidence < tt.minConf {
				t.Errorf("Classify() confidence = %v, want >= %v", result.Confidence, tt.minConf)
			}
		})
	}
}

func TestIsRepeatPrevious(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"same as yesterday", true},
		{"Exactly like last time.", true},
		{"same symptoms as before", true},
		{"repeat", true},
		{"please repeated entry", true},
		{"no change today", true},
		{"Nothing’s changed", true},
		{"nothing has changed", true},
		{"still the same", true},
		{"same old same old", true},
		{"unchanged", true},
		{"", false},
		{"the same headache as my mum gets", false},
		{"changed my meds", false},
		{"repeatedly dizzy", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsRepeatPrevious(tt.input); got != tt.want {
				t.Errorf("IsRepeatPrevious(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim whitespace",
			input: "  hello world  ",
			want:  "hello world",
		},
		{
			name:  "lowercase conversion",
			input: "HELLO World",
			want:  "hello world",
		},
		{
			name:  "remove extra spaces",
			input: "hello    world",
			want:  "hello world",
		},
		{
			name:  "remove punctuation at end",
			input: "hello world!",
			want:  "hello world",
		},
		{
			name:  "fold curly apostrophe",
			input: "I’m feeling good",
			want:  "i'm feeling good",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeText(tt.input)
			if got != tt.want {
				t.Errorf("normalizeText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifier_EmptyInput(t *testing.T) {
	classifier := NewClassifier()

	result := classifier.Classify("")
	if result.Intent != IntentUnclear {
		t.Errorf("Empty input should return IntentUnclear, got %v", result.Intent)
	}

	if result.Confidence > 0.5 {
		t.Errorf("Empty input confidence should be low, got %v", result.Confidence)
	}
}
