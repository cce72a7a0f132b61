package parser

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"5,000", 5000, true},
		{"1,250.50", 1250.5, true},
		{" 800 ", 800, true},
		{"", 0, false},
		{"abc", 0, false},
		{",", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseAmount(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseAmount(%q) = %v, %v; expected %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParsePercent(t *testing.T) {
	if v, ok := parsePercent("3.5%"); !ok || v != 3.5 {
		t.Errorf("expected 3.5, got %v (ok=%v)", v, ok)
	}
	if v, ok := parsePercent("12"); !ok || v != 12 {
		t.Errorf("expected 12, got %v (ok=%v)", v, ok)
	}
	if _, ok := parsePercent("-4%"); ok {
		t.Error("expected negative percent to be rejected")
	}
}

func TestParseDate(t *testing.T) {
	march1 := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01", march1},
		{"March 1, 2025", march1},
		{"march 1st, 2025", march1},
		{"Mar. 1, 2025", march1},
		{"Mar 1 2025", march1},
		{"1 March 2025", march1},
		{"03/01/2025", march1},
		{"3/1/2025", march1},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.in)
		if !ok {
			t.Errorf("parseDate(%q) rejected", tt.in)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "February 30, 2025", "13/45/2025", "sometime soon", "Smarch 1, 2025"} {
		if got, ok := parseDate(in); ok {
			t.Errorf("parseDate(%q) = %v, expected rejection", in, got)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo", 2); got != "hé" {
		t.Errorf("expected hé, got %q", got)
	}
	if got := truncateRunes("hi", 10); got != "hi" {
		t.Errorf("expected hi, got %q", got)
	}
}
