// Package parser turns free-form campaign planning conversations into fully populated
// campaign records. Extraction is best effort and never fails; anything the rules cannot
// find is filled from per-type defaults.
package parser

import (
	"time"

	"campaigngo/internal/domain"
)

type Parser struct {
	defaulter *Defaulter
}

// New returns a Parser whose defaults use now as the clock. A nil now means time.Now.
func New(now func() time.Time) *Parser {
	return &Parser{defaulter: NewDefaulter(now)}
}

// ParseConversation classifies, extracts and defaults text. It is total over all strings.
func (p *Parser) ParseConversation(text string) domain.ParsedCampaign {
	partial := Extract(text)
	partial.Type = ClassifyType(text)
	return p.defaulter.Apply(partial)
}

// Extracted returns the extraction-only view of text, before defaults.
func (p *Parser) Extracted(text string) domain.ParsedCampaign {
	partial := Extract(text)
	partial.Type = ClassifyType(text)
	return partial
}

// Result is a parsed campaign plus which fields came from the text and which from defaults.
type Result struct {
	Campaign  domain.ParsedCampaign
	Extracted []string
	Defaulted []string
}

// Parse is ParseConversation with field provenance.
func (p *Parser) Parse(text string) Result {
	partial := p.Extracted(text)
	final := p.defaulter.Apply(partial)

	var res Result
	res.Campaign = final
	for _, f := range campaignFields {
		switch {
		case f.present(partial):
			res.Extracted = append(res.Extracted, f.name)
		case f.present(final):
			res.Defaulted = append(res.Defaulted, f.name)
		}
	}
	return res
}

type campaignField struct {
	name    string
	present func(c domain.ParsedCampaign) bool
}

// Reported in this order.
var campaignFields = []campaignField{
	{"name", func(c domain.ParsedCampaign) bool { return c.Name != "" }},
	{"channel", func(c domain.ParsedCampaign) bool { return c.Channel != "" }},
	{"description", func(c domain.ParsedCampaign) bool { return c.Description != "" }},
	{"target_audience", func(c domain.ParsedCampaign) bool { return c.TargetAudience != "" }},
	{"primary_objective", func(c domain.ParsedCampaign) bool { return c.PrimaryObjective != "" }},
	{"budget_allocated", func(c domain.ParsedCampaign) bool { return c.BudgetAllocated != nil }},
	{"total_budget", func(c domain.ParsedCampaign) bool { return c.TotalBudget != nil }},
	{"start_date", func(c domain.ParsedCampaign) bool { return c.StartDate != nil }},
	{"end_date", func(c domain.ParsedCampaign) bool { return c.EndDate != nil }},
	{"demographics", func(c domain.ParsedCampaign) bool { return len(c.Demographics) > 0 }},
	{"channels", func(c domain.ParsedCampaign) bool { return len(c.Channels) > 0 }},
	{"kpi_targets", func(c domain.ParsedCampaign) bool { return len(c.KPITargets) > 0 }},
	{"budget_breakdown", func(c domain.ParsedCampaign) bool { return len(c.BudgetBreakdown) > 0 }},
	{"content", func(c domain.ParsedCampaign) bool { return len(c.Content) > 0 }},
	{"settings", func(c domain.ParsedCampaign) bool { return c.Settings != nil }},
}

// ParseCampaignFromConversation parses text with the wall clock.
func ParseCampaignFromConversation(text string) domain.ParsedCampaign {
	return New(nil).ParseConversation(text)
}
