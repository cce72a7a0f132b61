package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type CampaignType string

const (
	TypeEmail       CampaignType = "email"
	TypeSocialMedia CampaignType = "social_media"
	TypeContent     CampaignType = "content"
	TypeSEO         CampaignType = "seo"
	TypePaidAds     CampaignType = "paid_ads"
	TypeOther       CampaignType = "other"
)

// CampaignTypes lists every type in classification priority order, with the fallback last.
var CampaignTypes = []CampaignType{TypeEmail, TypeSocialMedia, TypeContent, TypeSEO, TypePaidAds, TypeOther}

func (t CampaignType) IsValid() bool {
	for _, known := range CampaignTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Title returns the display form used in default names, e.g. "Social Media".
func (t CampaignType) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}

// Demographics keys
const (
	DemoAgeRange  = "ageRange"
	DemoLocation  = "location"
	DemoIncome    = "income"
	DemoInterests = "interests"
)

// Content keys
const (
	ContentMessage = "message"
	ContentTone    = "tone"
)

type FrequencyCap struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
}

// behavioral settings attached to every defaulted campaign
type CampaignSettings struct {
	AutoOptimization   bool         `json:"auto_optimization"`
	FrequencyCapping   FrequencyCap `json:"frequency_capping"`
	ABTesting          bool         `json:"a_b_testing"`
	ReportingFrequency string       `json:"reporting_frequency"`
}

// ParsedCampaign is the campaign record produced from a conversation. Before defaulting
// any field may be empty; nil pointers and nil maps mean "not found".
type ParsedCampaign struct {
	ID               string             `json:"id,omitempty"`
	Name             string             `json:"name,omitempty"`
	Type             CampaignType       `json:"type,omitempty"`
	Channel          string             `json:"channel,omitempty"`
	Description      string             `json:"description,omitempty"`
	TargetAudience   string             `json:"target_audience,omitempty"`
	PrimaryObjective string             `json:"primary_objective,omitempty"`
	BudgetAllocated  *float64           `json:"budget_allocated,omitempty"`
	TotalBudget      *float64           `json:"total_budget,omitempty"`
	StartDate        *time.Time         `json:"start_date,omitempty"`
	EndDate          *time.Time         `json:"end_date,omitempty"`
	Demographics     map[string]string  `json:"demographics,omitempty"`
	Channels         []string           `json:"channels,omitempty"`
	KPITargets       map[string]any     `json:"kpi_targets,omitempty"`
	BudgetBreakdown  map[string]float64 `json:"budget_breakdown,omitempty"`
	Content          map[string]string  `json:"content,omitempty"`
	Settings         *CampaignSettings  `json:"settings,omitempty"`
}

// Clone returns a deep copy so callers can layer edits without touching the original.
func (c ParsedCampaign) Clone() ParsedCampaign {
	out := c
	out.BudgetAllocated = cloneFloat(c.BudgetAllocated)
	out.TotalBudget = cloneFloat(c.TotalBudget)
	out.StartDate = cloneTime(c.StartDate)
	out.EndDate = cloneTime(c.EndDate)
	if c.Demographics != nil {
		out.Demographics = make(map[string]string, len(c.Demographics))
		for k, v := range c.Demographics {
			out.Demographics[k] = v
		}
	}
	if c.Channels != nil {
		out.Channels = append([]string(nil), c.Channels...)
	}
	if c.KPITargets != nil {
		out.KPITargets = make(map[string]any, len(c.KPITargets))
		for k, v := range c.KPITargets {
			out.KPITargets[k] = v
		}
	}
	if c.BudgetBreakdown != nil {
		out.BudgetBreakdown = make(map[string]float64, len(c.BudgetBreakdown))
		for k, v := range c.BudgetBreakdown {
			out.BudgetBreakdown[k] = v
		}
	}
	if c.Content != nil {
		out.Content = make(map[string]string, len(c.Content))
		for k, v := range c.Content {
			out.Content[k] = v
		}
	}
	if c.Settings != nil {
		s := *c.Settings
		out.Settings = &s
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	t := *v
	return &t
}

// represents a filter for listing stored campaigns
type CampaignFilter struct {
	Type    CampaignType `json:"type,omitempty"`
	Channel string       `json:"channel,omitempty"`
	Limit   int          `json:"limit,omitempty"`
	Offset  int          `json:"offset,omitempty"`
}

// represents a page of stored campaigns
type CampaignList struct {
	Data    []ParsedCampaign `json:"data"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	HasMore bool             `json:"has_more"`
}

// CampaignPreview is the human-readable rendering shown for approval before creation.
type CampaignPreview struct {
	Title           string         `json:"title"`
	Lines           []string       `json:"lines"`
	DefaultedFields []string       `json:"defaulted_fields"`
	Campaign        ParsedCampaign `json:"campaign"`
}

// EnhancedAnswer pairs a raw question answer with its rewritten form.
type EnhancedAnswer struct {
	QuestionKey string `json:"question_key"`
	Original    string `json:"original"`
	Enhanced    string `json:"enhanced"`
}

const EventCampaignParsed = "campaign.parsed"

// CampaignEvent is the payload published when a campaign is created from a conversation.
type CampaignEvent struct {
	Event      string         `json:"event"`
	Campaign   ParsedCampaign `json:"campaign"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// TypeSummary aggregates stored campaigns of one type.
type TypeSummary struct {
	Count         int     `json:"count"`
	TotalBudget   float64 `json:"total_budget"`
	AverageBudget float64 `json:"average_budget"`
}

// CampaignSummary aggregates every stored campaign.
type CampaignSummary struct {
	Campaigns   int                          `json:"campaigns"`
	TotalBudget float64                      `json:"total_budget"`
	ByType      map[CampaignType]TypeSummary `json:"by_type"`
	ByChannel   map[string]int               `json:"by_channel"`
	Earliest    *time.Time                   `json:"earliest_start,omitempty"`
	Latest      *time.Time                   `json:"latest_end,omitempty"`
}

// Add folds c into the summary. AverageBudget is left for the caller to compute.
func (s *CampaignSummary) Add(c ParsedCampaign) {
	s.Campaigns++
	ts := s.ByType[c.Type]
	ts.Count++
	if c.TotalBudget != nil {
		ts.TotalBudget += *c.TotalBudget
		s.TotalBudget += *c.TotalBudget
	}
	s.ByType[c.Type] = ts
	if c.Channel != "" {
		s.ByChannel[c.Channel]++
	}
	if c.StartDate != nil && (s.Earliest == nil || c.StartDate.Before(*s.Earliest)) {
		t := *c.StartDate
		s.Earliest = &t
	}
	if c.EndDate != nil && (s.Latest == nil || c.EndDate.After(*s.Latest)) {
		t := *c.EndDate
		s.Latest = &t
	}
}
