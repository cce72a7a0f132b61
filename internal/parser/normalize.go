package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// parseAmount turns "5,000" or "1,250.50" into a number. Empty or non-numeric input is rejected.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseCount is parseAmount restricted to non-negative values.
func parseCount(s string) (float64, bool) {
	v, ok := parseAmount(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// parsePercent reads the number in front of a percent sign. Negative values are rejected.
func parsePercent(s string) (float64, bool) {
	return parseCount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

var ordinalSuffixRE = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\b`)

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// parseDate accepts the layouts above (UTC). Invalid dates are rejected, never guessed.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	s = ordinalSuffixRE.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Replace(s, ". ", " ", 1)
	s = strings.TrimRight(s, ".,")
	if s == "" {
		return time.Time{}, false
	}
	s = normalizeMonthCase(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// time.Parse matches month names case-sensitively; "march 1, 2025" must become "March 1, 2025".
func normalizeMonthCase(s string) string {
	fields := strings.Split(s, " ")
	for i, f := range fields {
		word := strings.TrimRight(f, ",")
		if word == "" || !isLetters(word) {
			continue
		}
		lower := strings.ToLower(word)
		fields[i] = strings.ToUpper(lower[:1]) + lower[1:] + f[len(word):]
	}
	return strings.Join(fields, " ")
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
