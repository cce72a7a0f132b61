package parser

import (
	"regexp"
	"strings"
	"time"
)

// rule is one step of an extraction cascade: a pattern plus a builder that turns the
// submatches into a value. A builder returning false means "no match", so the cascade
// continues with the next rule.
type rule[T any] struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) (T, bool)
}

// cascade is an ordered list of rules; the first rule that matches and builds wins.
// A rejected match does not end the rule: its later matches are tried before moving on.
type cascade[T any] []rule[T]

func (c cascade[T]) run(text string) (T, bool) {
	var zero T
	for _, r := range c {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			if v, ok := r.build(m); ok {
				return v, true
			}
		}
	}
	return zero, false
}

// textRule captures group 1, trimmed of whitespace, quotes and trailing punctuation.
func textRule(name, pattern string) rule[string] {
	return rule[string]{
		name: name,
		re:   regexp.MustCompile(pattern),
		build: func(m []string) (string, bool) {
			v := cleanCapture(m[1])
			return v, v != ""
		},
	}
}

// amountRule parses group 1 as a currency amount.
func amountRule(name, pattern string) rule[float64] {
	return rule[float64]{
		name: name,
		re:   regexp.MustCompile(pattern),
		build: func(m []string) (float64, bool) {
			return parseAmount(m[1])
		},
	}
}

// dateRule parses group 1 as a calendar date.
func dateRule(name, pattern string) rule[time.Time] {
	return rule[time.Time]{
		name: name,
		re:   regexp.MustCompile(pattern),
		build: func(m []string) (time.Time, bool) {
			return parseDate(m[1])
		},
	}
}

const captureCutset = " \t\r\n\"'“”‘’`"

func cleanCapture(s string) string {
	s = strings.Trim(s, captureCutset)
	s = strings.TrimRight(s, ".,;:!?")
	return strings.Trim(s, captureCutset)
}
