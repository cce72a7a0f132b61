package usecase

import (
	"reflect"
	"testing"
	"time"

	"campaigngo/internal/domain"
)

func TestBuildPreview(t *testing.T) {
	budget := 12500.5
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	c := domain.ParsedCampaign{
		Name:            "Spring Launch",
		Type:            domain.TypePaidAds,
		Channel:         "paid_search",
		TotalBudget:     &budget,
		StartDate:       &start,
		EndDate:         &end,
		Channels:        []string{"google", "facebook"},
		KPITargets:      map[string]any{"roas": 4.0, "ctr": 2.0},
		BudgetBreakdown: map[string]float64{"creative": 2000, "ad_spend": 10500.5},
		Settings:        &domain.CampaignSettings{ReportingFrequency: "weekly"},
	}

	p := BuildPreview(c, []string{"channel"})

	want := []string{
		"Type: Paid Ads",
		"Channel: paid_search",
		"Budget: $12,500.50",
		"Schedule: Mar 1, 2026 to Mar 31, 2026",
		"Channels: google, facebook",
		"KPI targets: ctr=2, roas=4",
		"Budget breakdown: ad_spend=$10,500.50, creative=$2,000",
		"Reporting: weekly",
	}
	if !reflect.DeepEqual(p.Lines, want) {
		t.Errorf("unexpected lines:\n got %q\nwant %q", p.Lines, want)
	}
	if p.Title != "Spring Launch" {
		t.Errorf("unexpected title %q", p.Title)
	}
	if len(p.DefaultedFields) != 1 || p.DefaultedFields[0] != "channel" {
		t.Errorf("unexpected defaulted fields %v", p.DefaultedFields)
	}
}

func TestBuildPreview_NilDefaultedIsEmpty(t *testing.T) {
	p := BuildPreview(domain.ParsedCampaign{Type: domain.TypeOther}, nil)
	if p.DefaultedFields == nil {
		t.Error("expected an empty, non-nil list")
	}
	if len(p.Lines) != 1 || p.Lines[0] != "Type: Other" {
		t.Errorf("unexpected lines %q", p.Lines)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{
		0:        "$0",
		750:      "$750",
		5000:     "$5,000",
		1250000:  "$1,250,000",
		99.5:     "$99.50",
		1234.567: "$1,234.57",
	}
	for in, want := range cases {
		if got := formatMoney(in); got != want {
			t.Errorf("formatMoney(%v): expected %q, got %q", in, want, got)
		}
	}
}
