package privacy

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxLogLength bounds how much of a rant ends up in a log line
const maxLogLength = 200

var (
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Matches: 555-123-4567, (555) 123-4567, +44 7700 900123, 555-1234
	phoneRegex = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3,4}\)?[-.\s]?\d{3}[-.\s]?\d{3,4}\b|\b\d{3}[-.\s]\d{4}\b`)

	ssnRegex        = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	creditCardRegex = regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`)

	// Record numbers people paste from appointment letters
	medicalIDRegex = regexp.MustCompile(`\b(?i:MRN|NHS(?:\s+(?:no|number))?|medical record(?:\s+number)?|patient id|hospital number)[-.:#\s]*[A-Z]{0,3}\d[\d -]{4,}\d\b`)

	dateOfBirthRegex = regexp.MustCompile(`(?i)\b(?:dob|date of birth|born on)[-:\s]*\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)
)

// RedactSensitiveData replaces contact details and identifiers with
// placeholders. Symptom language and ratings such as "7/10" are left alone.
func RedactSensitiveData(text string) string {
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	text = medicalIDRegex.ReplaceAllString(text, "[MEDICAL_ID]")
	text = dateOfBirthRegex.ReplaceAllString(text, "[DOB]")
	text = ssnRegex.ReplaceAllString(text, "[SSN]")
	text = creditCardRegex.ReplaceAllString(text, "[CARD]")
	text = phoneRegex.ReplaceAllString(text, "[PHONE]")
	return text
}

// SanitizeForLogging redacts and truncates text for log output
func SanitizeForLogging(text string) string {
	redacted := strings.Join(strings.Fields(RedactSensitiveData(text)), " ")
	if len(redacted) <= maxLogLength {
		return redacted
	}

	cut := maxLogLength - 3
	for cut > 0 && !utf8.RuneStart(redacted[cut]) {
		cut--
	}
	return redacted[:cut] + "..."
}

// ContainsPII checks if text contains potential PII
func ContainsPII(text string) bool {
	return emailRegex.MatchString(text) ||
		phoneRegex.MatchString(text) ||
		ssnRegex.MatchString(text) ||
		creditCardRegex.MatchString(text) ||
		medicalIDRegex.MatchString(text) ||
		dateOfBirthRegex.MatchString(text)
}

// MaskEmail keeps enough of an address to tell accounts apart in logs:
// "jane.doe@example.com" becomes "j***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "[EMAIL]"
	}
	first, _ := utf8.DecodeRuneInString(email)
	return string(first) + "***" + email[at:]
}
