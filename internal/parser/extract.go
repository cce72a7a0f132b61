package parser

import (
	"regexp"
	"strings"
	"time"

	"campaigngo/internal/domain"
)

// descriptionFallbackLength is how much raw conversation text becomes the description
// when no explicit description phrase is present.
const descriptionFallbackLength = 200

const (
	numberExpr = `(\d[\d,]*(?:\.\d+)?)`
	pctExpr    = `(\d+(?:\.\d+)?)\s*%`
	dateExpr   = `(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}|[A-Za-z]{3,9}\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}|\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3,9},?\s+\d{4})`
)

var nameRules = cascade[string]{
	textRule("campaign_name", `(?i)\bcampaign\s+name\s*(?:is|:|=|-)\s*([^\n.!?]+)`),
	textRule("call_it", `(?i)\bcall\s+it\s*:?\s*([^\n.!?]+)`),
	textRule("quoted", `(?i)["“]([^"“”\n]{2,80})["”]\s+campaign\b`),
	textRule("for_campaign", `(?i)\bfor\s+(?:(?:the|our|my|a|an)\s+)?([\w'&-]+(?:\s+[\w'&-]+){0,4}?)\s+campaign\b`),
}

var platformVocabulary = `facebook|instagram|twitter|linkedin|tiktok|youtube|pinterest|snapchat|google|email`

var channelRules = cascade[string]{
	lowerRule(textRule("explicit", `(?i)\b(?:channel|platform)\s*(?:is|:|=)\s*([^\n.,;]+)`)),
	lowerRule(textRule("on_platform", `(?i)\bon\s+(`+platformVocabulary+`)\b`)),
}

var budgetRules = cascade[float64]{
	amountRule("budget", `(?i)\bbudget\s*(?:of|is|:|=)?\s*(?:around|about|approximately|roughly)?\s*\$?\s*`+numberExpr),
	amountRule("spend", `(?i)\bspend(?:ing)?\s*(?:of|is|:|=)?\s*(?:around|about|up to)?\s*\$?\s*`+numberExpr),
	amountRule("dollar_sign", `(?i)\$\s*`+numberExpr+`\s*(?:budget|spend)`),
	amountRule("dollars", `(?i)`+numberExpr+`\s*dollars?\b`),
}

var audienceRules = cascade[string]{
	textRule("target_audience", `(?i)\btarget\s+audience\s*(?:is|are|:|=|-)?\s*([^.\n]+)`),
	textRule("audience", `(?i)\baudience\s*(?:is|are|:|=)\s*([^.\n]+)`),
	textRule("targeting", `(?i)\btargeting\s+([^.\n]+)`),
}

var objectiveRules = cascade[string]{
	textRule("objective", `(?i)\b(?:primary\s+)?(?:objective|goal)s?\s*(?:is|are|:|=)\s*([^.\n]+)`),
	textRule("want_to", `(?i)\bwant\s+to\b\s*:?\s*([^.\n]+)`),
	textRule("trying_to", `(?i)\btrying\s+to\b\s*:?\s*([^.\n]+)`),
	textRule("aim", `(?i)\baim(?:s|ing)?\b(?:\s+to\b)?\s*:?\s*([^.\n]+)`),
}

var descriptionRules = cascade[string]{
	textRule("description", `(?i)\bdescription\s*(?:is|:|=)\s*([^\n]+)`),
	textRule("about", `(?i)\babout\s*:\s*([^\n]+)`),
}

var ageRangeRules = cascade[string]{
	rangeRule("ages", `(?i)\b(?:ages?|aged)\s*:?\s*(\d{1,2})\s*(?:-|–|to)\s*(\d{1,2})\b`),
	rangeRule("years_old", `(?i)\b(\d{1,2})\s*(?:-|–|to)\s*(\d{1,2})\s*(?:year|yr)s?[\s-]*olds?\b`),
}

var locationRules = cascade[string]{
	textRule("location", `(?i)\b(?:location|region|geography)\s*(?:is|:|=)\s*([^.\n]+)`),
	textRule("based_in", `(?i)\b(?:located|based|living)\s+in\s+([^.\n,;]+)`),
}

var incomeRules = cascade[string]{
	textRule("income", `(?i)\bincome\s*(?:of|is|:|=|around|above|over)?\s*(\$?\d[\d,]*k?(?:\s*(?:-|–|to)\s*\$?\d[\d,]*k?)?)`),
}

var interestRules = cascade[string]{
	textRule("interests", `(?i)\binterest(?:s\s*(?:include|are|:)|ed\s+in|s\s+in)\s*([^.\n]+)`),
}

// Scanned in this order; each keyword is appended at most once.
var channelVocabulary = []string{
	"facebook", "instagram", "twitter", "linkedin", "tiktok", "youtube",
	"pinterest", "snapchat", "google", "email", "sms", "blog", "website",
}

type periodCount struct {
	count  float64
	period string
}

var leadsRules = cascade[periodCount]{
	periodCountRule("leads", `(?i)`+numberExpr+`\s+(?:new\s+|qualified\s+|sales\s+)?leads?\b()(?:\s*(?:per|a|each|every|/)\s*(month|week|quarter))?`),
}

var conversionsRules = cascade[periodCount]{
	periodCountRule("conversions", `(?i)`+numberExpr+`\s+conversions?\b(\s+rate)?(?:\s*(?:per|a|each|every|/)\s*(month|week|quarter))?`),
}

var (
	conversionRateRules = percentRules("conversion_rate", `conversion(?:\s+rate)?`)
	engagementRateRules = percentRules("engagement_rate", `engagement(?:\s+rate)?`)
	openRateRules       = percentRules("email_open_rate", `(?:email\s+)?open\s+rate`)
	clickRateRules      = percentRules("email_click_rate", `(?:email\s+)?click\s+rate`)
	ctrRules            = percentRules("click_through_rate", `(?:click[-\s]?through(?:\s+rate)?|ctr)`)
)

var roasRules = cascade[float64]{
	amountRule("roas_suffix", `(?i)(\d+(?:\.\d+)?)\s*(?:x|:1)\s*(?:roas|return\s+on\s+ad\s+spend)\b`),
	amountRule("roas_prefix", `(?i)\b(?:roas|return\s+on\s+ad\s+spend)\s*(?:of|is|:|=|at)?\s*(\d+(?:\.\d+)?)`),
}

var cpaRules = cascade[float64]{
	amountRule("cpa_prefix", `(?i)\b(?:cpa|cost\s+per\s+acquisition)\s*(?:of|is|:|=|at|under|below)?\s*\$?\s*`+numberExpr),
	amountRule("cpa_suffix", `(?i)\$\s*`+numberExpr+`\s*(?:cpa|cost\s+per\s+acquisition)\b`),
}

var reachRules = cascade[float64]{
	scaledCountRule("reach_prefix", `(?i)\breach\s*(?:of|:|=)?\s*`+numberExpr+`\s*([km])?\b`),
	scaledCountRule("reach_suffix", `(?i)`+numberExpr+`\s*([km])?\s+(?:people\s+)?reach(?:ed)?\b`),
}

var impressionsRules = cascade[float64]{
	scaledCountRule("impressions_suffix", `(?i)`+numberExpr+`\s*([km])?\s+impressions\b`),
	scaledCountRule("impressions_prefix", `(?i)\bimpressions\s*(?:of|:|=)?\s*`+numberExpr+`\s*([km])?\b`),
}

var measurementPeriodRules = cascade[string]{
	lowerRule(textRule("cadence", `(?i)\b(?:measure|measured|track|tracked|report|reported|review|reviewed)\s+(?:\w+\s+){0,2}?(daily|weekly|monthly|quarterly)\b`)),
	lowerRule(textRule("over_period", `(?i)\bover\s+(?:the\s+)?(?:next\s+)?(\d+\s+(?:days?|weeks?|months?|quarters?))\b`)),
}

var adSpendRules = cascade[float64]{
	amountRule("amount_on_ads", `(?i)\$?\s*`+numberExpr+`\s*(?:on|for)\s+(?:ad\s+spend|ads|advertising|media)\b`),
	amountRule("ad_spend", `(?i)\bad\s+spend\s*(?:of|is|:|=)?\s*\$?\s*`+numberExpr),
}

var creativeRules = cascade[float64]{
	amountRule("amount_on_creative", `(?i)\$?\s*`+numberExpr+`\s*(?:on|for)\s+creative\b`),
	amountRule("creative", `(?i)\bcreative\s*(?:budget)?\s*(?:of|is|:|=)\s*\$?\s*`+numberExpr),
}

var messageRules = cascade[string]{
	textRule("message", `(?i)\b(?:key\s+|core\s+|main\s+)?message\s*(?:is|:|=|should\s+be)\s*([^\n]+)`),
}

var toneRules = cascade[string]{
	lowerRule(textRule("tone", `(?i)\btone\s*(?:is|:|=|should\s+be)\s*([^.\n,;]+)`)),
	lowerRule(textRule("adjective_tone", `(?i)\b(friendly|professional|playful|casual|formal|humorous|inspirational|urgent|conversational|authoritative)\s+tone\b`)),
}

var startDateRules = cascade[time.Time]{
	dateRule("start", `(?i)\bstart(?:s)?(?:\s+date)?(?:\s+on)?\s*(?::|=|-)?\s*`+dateExpr),
	dateRule("begin", `(?i)\bbegin(?:s|ning)?(?:\s+on)?\s*:?\s*`+dateExpr),
	dateRule("launch", `(?i)\blaunch(?:es|ing)?(?:\s+date)?(?:\s+on)?\s*:?\s*`+dateExpr),
	dateRule("starting", `(?i)\bstarting(?:\s+on)?\s*:?\s*`+dateExpr),
}

var endDateRules = cascade[time.Time]{
	dateRule("end", `(?i)\bend(?:s|ing)?(?:\s+date)?(?:\s+on)?\s*(?::|=|-)?\s*`+dateExpr),
	dateRule("finish", `(?i)\bfinish(?:es|ing)?(?:\s+on)?\s*:?\s*`+dateExpr),
	dateRule("until", `(?i)\buntil\s*:?\s*`+dateExpr),
	dateRule("through", `(?i)\b(?:through|thru)\s*:?\s*`+dateExpr),
}

// Extract runs every field probe over text and returns the partial record. Probes are
// independent; a field is left empty when its cascade finds nothing. Type is not set here.
func Extract(text string) domain.ParsedCampaign {
	var c domain.ParsedCampaign

	c.Name, _ = nameRules.run(text)
	c.Channel, _ = channelRules.run(text)
	if budget, ok := budgetRules.run(text); ok {
		allocated, total := budget, budget
		c.BudgetAllocated, c.TotalBudget = &allocated, &total
	}
	c.TargetAudience, _ = audienceRules.run(text)
	c.PrimaryObjective, _ = objectiveRules.run(text)
	c.Description = extractDescription(text)

	if start, ok := startDateRules.run(text); ok {
		c.StartDate = &start
	}
	if end, ok := endDateRules.run(text); ok {
		c.EndDate = &end
	}

	c.Demographics = extractDemographics(text)
	c.Channels = extractChannels(text)
	c.KPITargets = extractKPITargets(text)
	c.BudgetBreakdown = extractBudgetBreakdown(text)
	c.Content = extractContent(text)

	return c
}

func extractDescription(text string) string {
	if d, ok := descriptionRules.run(text); ok {
		return d
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	return truncateRunes(trimmed, descriptionFallbackLength) + "..."
}

func extractDemographics(text string) map[string]string {
	out := map[string]string{}
	setText(out, domain.DemoAgeRange, ageRangeRules, text)
	setText(out, domain.DemoLocation, locationRules, text)
	setText(out, domain.DemoIncome, incomeRules, text)
	setText(out, domain.DemoInterests, interestRules, text)
	if len(out) == 0 {
		return nil
	}
	return out
}

func extractChannels(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, keyword := range channelVocabulary {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

func extractKPITargets(text string) map[string]any {
	out := map[string]any{}

	if leads, ok := leadsRules.run(text); ok {
		out["leads"] = leads.count
		out["leads_period"] = leads.period
	}
	setNumber(out, "conversion_rate", conversionRateRules, text)
	setNumber(out, "engagement_rate", engagementRateRules, text)
	setNumber(out, "email_open_rate", openRateRules, text)
	setNumber(out, "email_click_rate", clickRateRules, text)
	if conversions, ok := conversionsRules.run(text); ok {
		out["conversions"] = conversions.count
		out["conversions_period"] = conversions.period
	}
	setNumber(out, "click_through_rate", ctrRules, text)
	setNumber(out, "return_on_ad_spend", roasRules, text)
	setNumber(out, "cost_per_acquisition", cpaRules, text)
	setNumber(out, "reach", reachRules, text)
	setNumber(out, "impressions", impressionsRules, text)
	if period, ok := measurementPeriodRules.run(text); ok {
		out["measurement_period"] = period
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func extractBudgetBreakdown(text string) map[string]float64 {
	out := map[string]float64{}
	if v, ok := adSpendRules.run(text); ok {
		out["ad_spend"] = v
	}
	if v, ok := creativeRules.run(text); ok {
		out["creative"] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func extractContent(text string) map[string]string {
	out := map[string]string{}
	setText(out, domain.ContentMessage, messageRules, text)
	setText(out, domain.ContentTone, toneRules, text)
	if len(out) == 0 {
		return nil
	}
	return out
}

func setText(out map[string]string, key string, rules cascade[string], text string) {
	if v, ok := rules.run(text); ok {
		out[key] = v
	}
}

func setNumber(out map[string]any, key string, rules cascade[float64], text string) {
	if v, ok := rules.run(text); ok {
		out[key] = v
	}
}

// lowerRule wraps a text rule so its value is lowercased.
func lowerRule(r rule[string]) rule[string] {
	build := r.build
	r.build = func(m []string) (string, bool) {
		v, ok := build(m)
		return strings.ToLower(v), ok
	}
	return r
}

// rangeRule joins groups 1 and 2 as "lo-hi".
func rangeRule(name, pattern string) rule[string] {
	return rule[string]{
		name: name,
		re:   regexp.MustCompile(pattern),
		build: func(m []string) (string, bool) {
			return m[1] + "-" + m[2], true
		},
	}
}

// percentRules matches "3.5% <label>" and "<label> of 3.5%".
func percentRules(name, label string) cascade[float64] {
	return cascade[float64]{
		percentRule(name+"_suffix", `(?i)`+pctExpr+`\s*`+label+`\b`),
		percentRule(name+"_prefix", `(?i)\b`+label+`\s*(?:of|is|:|=|at|around)?\s*`+pctExpr),
	}
}

func percentRule(name, pattern string) rule[float64] {
	return rule[float64]{
		name: name,
		re:   regexp.MustCompile(pattern),
		build: func(m []string) (float64, bool) {
			return parsePercent(m[1])
		},
	}
}

// periodCountRule reads a count from group 1, rejects when group 2 is set, and takes the
// reporting period from group 3, defaulting to "month".
func periodCountRule(name, pattern string) rule[periodCount] {
	return rule[periodCount]{
		name: name,
		re:   regexp.MustCompile(pattern),
		build: func(m []string) (periodCount, bool) {
			if m[2] != "" {
				return periodCount{}, false
			}
			n, ok := parseCount(m[1])
			if !ok {
				return periodCount{}, false
			}
			period := strings.ToLower(m[3])
			if period == "" {
				period = "month"
			}
			return periodCount{count: n, period: period}, true
		},
	}
}

// scaledCountRule reads a count from group 1 with an optional k/m multiplier in group 2.
func scaledCountRule(name, pattern string) rule[float64] {
	return rule[float64]{
		name: name,
		re:   regexp.MustCompile(pattern),
		build: func(m []string) (float64, bool) {
			n, ok := parseCount(m[1])
			if !ok {
				return 0, false
			}
			switch strings.ToLower(m[2]) {
			case "k":
				n *= 1_000
			case "m":
				n *= 1_000_000
			}
			return n, true
		},
	}
}
