package parser

import (
	"strings"
	"testing"
	"time"

	"campaigngo/internal/domain"
)

func TestParseConversation_EmailWithBudget(t *testing.T) {
	c := New(fixedClock).ParseConversation("I want to run an email campaign with a budget of $5,000 targeting small business owners")

	if c.Type != domain.TypeEmail {
		t.Errorf("expected type email, got %s", c.Type)
	}
	if *c.BudgetAllocated != 5000 || *c.TotalBudget != 5000 {
		t.Errorf("expected budgets 5000, got %v/%v", *c.BudgetAllocated, *c.TotalBudget)
	}
	if c.Channel != "email" {
		t.Errorf("expected default channel email, got %q", c.Channel)
	}
	if c.Name != "Email Campaign 2026" {
		t.Errorf("expected default name, got %q", c.Name)
	}
}

func TestParseConversation_Empty(t *testing.T) {
	c := New(fixedClock).ParseConversation("")

	if c.Type != domain.TypeOther {
		t.Errorf("expected type other, got %s", c.Type)
	}
	if !strings.HasPrefix(c.Name, "Other Campaign ") {
		t.Errorf("unexpected name %q", c.Name)
	}
	if *c.TotalBudget != 3000 {
		t.Errorf("expected total budget 3000, got %v", *c.TotalBudget)
	}
	var sum float64
	for _, key := range []string{"execution", "creative", "tools"} {
		v, ok := c.BudgetBreakdown[key]
		if !ok {
			t.Errorf("missing breakdown key %s", key)
		}
		sum += v
	}
	if sum != 3000 {
		t.Errorf("expected breakdown to sum to 3000, got %v", sum)
	}
	if c.Description != "Marketing campaign created from a planning conversation." {
		t.Errorf("expected the other-type description for empty input, got %q", c.Description)
	}
}

func TestParseConversation_KPIs(t *testing.T) {
	c := New(fixedClock).ParseConversation("Our content plan should bring 200 leads per month with a 3.5% conversion rate")

	if c.KPITargets["leads"] != 200.0 || c.KPITargets["leads_period"] != "month" || c.KPITargets["conversion_rate"] != 3.5 {
		t.Errorf("unexpected kpi targets %v", c.KPITargets)
	}
}

func TestParseConversation_StartDateOnly(t *testing.T) {
	c := New(fixedClock).ParseConversation("Launch a newsletter. start: March 1, 2025")

	wantStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !c.StartDate.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, c.StartDate)
	}
	if !c.EndDate.Equal(wantStart.AddDate(0, 0, 30)) {
		t.Errorf("expected end exactly 30 days after start, got %v", c.EndDate)
	}
}

func TestParseConversation_Total(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t ",
		strings.Repeat("$", 5000),
		"budget of $,,,, start: 99/99/9999 end: Smarch 40, 2025",
		"\x00\xff\xfe invalid utf8",
		"100% 100% 100% leads leads leads",
		strings.Repeat("email campaign ", 2000),
	}
	p := New(fixedClock)
	for _, in := range inputs {
		c := p.ParseConversation(in)
		if !c.Type.IsValid() {
			t.Errorf("invalid type %q", c.Type)
		}
		if c.Name == "" || c.Channel == "" || c.Description == "" || c.TargetAudience == "" || c.PrimaryObjective == "" {
			t.Errorf("missing required fields for %q", truncateRunes(in, 30))
		}
		if c.StartDate == nil || c.EndDate == nil || !c.EndDate.After(*c.StartDate) {
			t.Errorf("bad date window for %q", truncateRunes(in, 30))
		}
		if c.BudgetAllocated == nil || c.TotalBudget == nil || *c.BudgetAllocated != *c.TotalBudget {
			t.Errorf("budgets not mirrored for %q", truncateRunes(in, 30))
		}
		if c.KPITargets == nil || c.Settings == nil {
			t.Errorf("missing kpis or settings for %q", truncateRunes(in, 30))
		}
	}
}

func TestExtracted_LeavesDefaultsOut(t *testing.T) {
	c := New(fixedClock).Extracted("email newsletter")
	if c.Type != domain.TypeEmail {
		t.Errorf("expected email, got %s", c.Type)
	}
	if c.Settings != nil || c.StartDate != nil {
		t.Error("Extracted must not apply defaults")
	}
}

func TestParse_Provenance(t *testing.T) {
	res := New(fixedClock).Parse("Email newsletter with a budget of $900")

	if !contains(res.Extracted, "total_budget") || !contains(res.Extracted, "budget_allocated") {
		t.Errorf("expected budgets to be extracted, got %v", res.Extracted)
	}
	for _, field := range []string{"name", "channel", "start_date", "end_date", "settings", "budget_breakdown"} {
		if !contains(res.Defaulted, field) {
			t.Errorf("expected %s to be defaulted, got %v", field, res.Defaulted)
		}
	}
	if contains(res.Defaulted, "demographics") || contains(res.Extracted, "demographics") {
		t.Error("demographics were neither extracted nor defaulted")
	}
	if res.Campaign.Type != domain.TypeEmail {
		t.Errorf("expected email, got %s", res.Campaign.Type)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
