// Package extract turns page text and markup into the structured fields of
// a company report. Every function is total: malformed or empty input yields
// empty results, never an error.
package extract

import (
	"regexp"
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// phoneRe is the one phone shape used everywhere: an optional "+CC" prefix,
// then 3-3-4 digit groups (the last group may run to 6 digits), each
// separated by at most one "-", "." or whitespace character. The area code
// may be parenthesised.
var phoneRe = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?(?:\(\d{3}\)|\d{3})[-.\s]?\d{3}[-.\s]?\d{4,6}`)

// EmailPattern exposes the email expression for readers of persisted reports.
func EmailPattern() *regexp.Regexp { return emailRe }

// PhonePattern exposes the phone expression for readers of persisted reports.
func PhonePattern() *regexp.Regexp { return phoneRe }

// Emails returns the distinct email addresses in text, in first-seen order.
func Emails(text string) []string {
	return dedupe(emailRe.FindAllString(text, -1))
}

// Phones returns the distinct phone numbers in text, in first-seen order.
// Matches that sit inside a longer run of digits (order numbers, timestamps)
// are dropped.
func Phones(text string) []string {
	var found []string
	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isDigit(text[start-1]) {
			continue
		}
		if end < len(text) && isDigit(text[end]) {
			continue
		}
		found = append(found, text[start:end])
	}
	return dedupe(found)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// dedupe drops repeated entries, keeping first occurrences. Always returns a
// non-nil slice.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
