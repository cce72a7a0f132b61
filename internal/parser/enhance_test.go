package parser

import (
	"strings"
	"testing"
)

func TestEnhance_KeywordTable(t *testing.T) {
	got := Enhance("restaurants", KeyIndustry)
	if !strings.HasPrefix(got, "Restaurant and food service business") {
		t.Errorf("expected restaurant elaboration, got %q", got)
	}
	if strings.HasPrefix(got, "Professionally optimized") {
		t.Error("short answer with a keyword hit must not use the generic template")
	}
}

func TestEnhance_FirstHitWins(t *testing.T) {
	// "restaurant" is listed before "food"
	got := Enhance("Restaurant serving food", KeyIndustry)
	if !strings.HasPrefix(got, "Restaurant and food service business") {
		t.Errorf("expected the first table entry to win, got %q", got)
	}
}

func TestEnhance_ShortAnswerGeneric(t *testing.T) {
	got := Enhance("plumbing", KeyIndustry)
	want := "Professionally optimized plumbing strategy designed to maximize engagement and drive measurable business results."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestEnhance_UnknownKeyGeneric(t *testing.T) {
	got := Enhance("a very long answer about something unusual", "favorite_color")
	if !strings.HasPrefix(got, "Professionally optimized a very long answer") {
		t.Errorf("expected generic template for unknown key, got %q", got)
	}
}

func TestEnhance_LongAnswerFraming(t *testing.T) {
	got := Enhance("Handmade ceramic tableware for boutiques.", KeyIndustry)
	want := "Handmade ceramic tableware for boutiques industry, with a marketing approach tailored to its customers, competitive landscape and buying cycle."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestEnhance_EveryKeyHasTable(t *testing.T) {
	for _, key := range QuestionKeys {
		profile, ok := questionProfiles[key]
		if !ok {
			t.Errorf("missing profile for %s", key)
			continue
		}
		if len(profile.elaborations) == 0 || !strings.Contains(profile.framing, "%s") {
			t.Errorf("incomplete profile for %s", key)
		}
	}
}

func TestHasElaboration(t *testing.T) {
	if !HasElaboration("Millennials in the city", KeyTargetAudience) {
		t.Error("expected millennial keyword hit")
	}
	if HasElaboration("restaurants", "unknown") {
		t.Error("unknown keys have no table")
	}
}
