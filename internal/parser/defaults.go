package parser

import (
	"fmt"
	"math"
	"time"

	"campaigngo/internal/domain"
)

// DefaultDuration is the gap between a defaulted start and end date.
const DefaultDuration = 30 * 24 * time.Hour

type budgetShare struct {
	category string
	fraction float64
}

// typeProfile is one row of the per-type default table.
type typeProfile struct {
	budget         float64
	channel        string
	description    string
	targetAudience string
	objective      string
	kpiTargets     map[string]any
	breakdown      []budgetShare
	frequencyCap   domain.FrequencyCap
}

var (
	standardCap = domain.FrequencyCap{Daily: 3, Weekly: 10}
	emailCap    = domain.FrequencyCap{Daily: 1, Weekly: 3}
)

var typeDefaults = map[domain.CampaignType]typeProfile{
	domain.TypeEmail: {
		budget:         2000,
		channel:        "email",
		description:    "Email campaign delivering targeted messages to subscribers to nurture relationships and drive action.",
		targetAudience: "Existing subscribers and opted-in prospects who have shown interest in our products or services and are most likely to engage with personalized email content.",
		objective:      "Nurture subscriber relationships and drive conversions through personalized, value-driven email content that moves recipients further down the funnel.",
		kpiTargets:     map[string]any{"open_rate": 25.0, "click_through_rate": 3.0, "conversion_rate": 2.0},
		breakdown:      []budgetShare{{"content_creation", 0.5}, {"email_platform", 0.3}, {"list_growth", 0.2}},
		frequencyCap:   emailCap,
	},
	domain.TypeSocialMedia: {
		budget:         3000,
		channel:        "social_media",
		description:    "Social media campaign building brand presence and community engagement across social platforms.",
		targetAudience: "Active social media users aged 18-45 who follow brands in our category and engage with visual, shareable content across major platforms.",
		objective:      "Grow brand awareness and community engagement by publishing consistent, platform-native content that encourages shares, comments and follows.",
		kpiTargets:     map[string]any{"engagement_rate": 4.0, "reach": 50000.0, "follower_growth": 10.0},
		breakdown:      []budgetShare{{"content_creation", 0.4}, {"paid_promotion", 0.4}, {"tools", 0.2}},
		frequencyCap:   standardCap,
	},
	domain.TypeContent: {
		budget:         4000,
		channel:        "content",
		description:    "Content marketing campaign producing valuable articles and resources that attract and educate prospects.",
		targetAudience: "Information-seeking professionals and decision makers researching solutions in our space who value in-depth, educational content.",
		objective:      "Establish thought leadership and generate qualified leads by publishing high-quality content that answers our audience's most important questions.",
		kpiTargets:     map[string]any{"monthly_visitors": 10000.0, "time_on_page": 3.0, "leads": 100.0},
		breakdown:      []budgetShare{{"content_creation", 0.6}, {"distribution", 0.25}, {"tools", 0.15}},
		frequencyCap:   standardCap,
	},
	domain.TypeSEO: {
		budget:         5000,
		channel:        "organic_search",
		description:    "SEO campaign improving search visibility and organic traffic for high-intent keywords.",
		targetAudience: "High-intent searchers actively looking for products, services or answers related to our offering on search engines.",
		objective:      "Increase organic search visibility and qualified traffic by improving rankings for high-intent keywords and strengthening site authority.",
		kpiTargets:     map[string]any{"organic_traffic_growth": 30.0, "keyword_rankings": 20.0, "backlinks": 50.0},
		breakdown:      []budgetShare{{"content_optimization", 0.5}, {"technical_seo", 0.3}, {"link_building", 0.2}},
		frequencyCap:   standardCap,
	},
	domain.TypePaidAds: {
		budget:         8000,
		channel:        "paid_search",
		description:    "Paid advertising campaign driving measurable traffic and conversions through targeted ads.",
		targetAudience: "In-market prospects matching our ideal customer profile, reached through precise demographic, interest and intent targeting on paid channels.",
		objective:      "Drive measurable conversions at an efficient cost per acquisition by running targeted, continuously optimized paid ad campaigns.",
		kpiTargets:     map[string]any{"click_through_rate": 2.0, "conversion_rate": 3.0, "return_on_ad_spend": 4.0},
		breakdown:      []budgetShare{{"ad_spend", 0.7}, {"creative", 0.2}, {"management", 0.1}},
		frequencyCap:   standardCap,
	},
	domain.TypeOther: {
		budget:         3000,
		channel:        "multi_channel",
		description:    "Marketing campaign created from a planning conversation.",
		targetAudience: "Prospective customers who match our core customer profile and are most likely to benefit from our products or services.",
		objective:      "Increase brand awareness and drive customer engagement through a coordinated, multi-channel marketing effort.",
		kpiTargets:     map[string]any{"reach": 10000.0, "engagement_rate": 3.0, "conversion_rate": 2.0},
		breakdown:      []budgetShare{{"execution", 0.6}, {"creative", 0.25}, {"tools", 0.15}},
		frequencyCap:   standardCap,
	},
}

// Defaulter fills missing campaign fields from the per-type table.
type Defaulter struct {
	now func() time.Time
}

func NewDefaulter(now func() time.Time) *Defaulter {
	if now == nil {
		now = time.Now
	}
	return &Defaulter{now: now}
}

// ApplyDefaults fills c using the wall clock.
func ApplyDefaults(c domain.ParsedCampaign) domain.ParsedCampaign {
	return NewDefaulter(nil).Apply(c)
}

// Apply returns a copy of c with every empty field filled. Populated fields are never
// overwritten, so applying twice yields the same record.
func (d *Defaulter) Apply(c domain.ParsedCampaign) domain.ParsedCampaign {
	out := c.Clone()

	profile, ok := typeDefaults[out.Type]
	if !ok {
		out.Type = domain.TypeOther
		profile = typeDefaults[domain.TypeOther]
	}

	now := d.now().UTC()

	if out.Name == "" {
		out.Name = fmt.Sprintf("%s Campaign %d", out.Type.Title(), now.Year())
	}

	d.applyDates(&out, now)
	applyBudget(&out, profile.budget)

	if out.Channel == "" {
		out.Channel = profile.channel
	}
	if out.Description == "" {
		out.Description = profile.description
	}
	if out.TargetAudience == "" {
		out.TargetAudience = profile.targetAudience
	}
	if out.PrimaryObjective == "" {
		out.PrimaryObjective = profile.objective
	}

	if out.KPITargets == nil {
		out.KPITargets = make(map[string]any, len(profile.kpiTargets))
		for k, v := range profile.kpiTargets {
			out.KPITargets[k] = v
		}
	}

	if out.BudgetBreakdown == nil && out.TotalBudget != nil {
		out.BudgetBreakdown = splitBudget(*out.TotalBudget, profile.breakdown)
	}

	if out.Settings == nil {
		out.Settings = &domain.CampaignSettings{
			AutoOptimization:   true,
			FrequencyCapping:   profile.frequencyCap,
			ABTesting:          true,
			ReportingFrequency: "weekly",
		}
	}

	return out
}

// applyDates keeps end strictly after start. When only an end date was extracted and it is
// not after now, the start is placed one default duration before it.
func (d *Defaulter) applyDates(c *domain.ParsedCampaign, now time.Time) {
	if c.StartDate == nil {
		start := now
		if c.EndDate != nil && !c.EndDate.After(now) {
			start = c.EndDate.Add(-DefaultDuration)
		}
		c.StartDate = &start
	}
	if c.EndDate == nil {
		end := c.StartDate.Add(DefaultDuration)
		c.EndDate = &end
	}
}

// applyBudget mirrors whichever budget field is set onto the other, or sets both to fallback.
func applyBudget(c *domain.ParsedCampaign, fallback float64) {
	switch {
	case c.BudgetAllocated == nil && c.TotalBudget == nil:
		allocated, total := fallback, fallback
		c.BudgetAllocated, c.TotalBudget = &allocated, &total
	case c.BudgetAllocated == nil:
		v := *c.TotalBudget
		c.BudgetAllocated = &v
	case c.TotalBudget == nil:
		v := *c.BudgetAllocated
		c.TotalBudget = &v
	}
}

// splitBudget rounds each share to whole units; rounding overflow is taken back starting
// from the last share so the parts never exceed total.
func splitBudget(total float64, shares []budgetShare) map[string]float64 {
	out := make(map[string]float64, len(shares))
	var sum float64
	for _, s := range shares {
		v := math.Round(total * s.fraction)
		out[s.category] = v
		sum += v
	}
	excess := sum - math.Floor(total)
	for i := len(shares) - 1; i >= 0 && excess > 0; i-- {
		category := shares[i].category
		cut := math.Min(out[category], excess)
		out[category] -= cut
		excess -= cut
	}
	return out
}
