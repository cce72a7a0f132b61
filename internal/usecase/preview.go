package usecase

import (
	"fmt"
	"sort"
	"strings"

	"campaigngo/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

const previewDateLayout = "Jan 2, 2006"

// BuildPreview renders a campaign as "Label: value" lines for user approval.
// defaulted lists the fields that were filled from defaults rather than the conversation.
func BuildPreview(c domain.ParsedCampaign, defaulted []string) domain.CampaignPreview {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}

	add("Type", c.Type.Title())
	add("Channel", c.Channel)
	if c.TotalBudget != nil {
		add("Budget", formatMoney(*c.TotalBudget))
	}
	if c.StartDate != nil && c.EndDate != nil {
		add("Schedule", c.StartDate.Format(previewDateLayout)+" to "+c.EndDate.Format(previewDateLayout))
	}
	add("Target audience", c.TargetAudience)
	add("Objective", c.PrimaryObjective)
	add("Description", c.Description)
	add("Demographics", joinStringMap(c.Demographics))
	add("Channels", strings.Join(c.Channels, ", "))
	add("KPI targets", joinAnyMap(c.KPITargets))
	add("Budget breakdown", joinMoneyMap(c.BudgetBreakdown))
	add("Content", joinStringMap(c.Content))
	if c.Settings != nil {
		add("Reporting", c.Settings.ReportingFrequency)
	}

	if defaulted == nil {
		defaulted = []string{}
	}
	return domain.CampaignPreview{
		Title:           c.Name,
		Lines:           lines,
		DefaultedFields: defaulted,
		Campaign:        c,
	}
}

func formatMoney(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("$%d", int64(v))
	}
	return printer.Sprintf("$%.2f", v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinStringMap(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, k+"="+m[k])
	}
	return strings.Join(parts, ", ")
}

func joinAnyMap(m map[string]any) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func joinMoneyMap(m map[string]float64) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, k+"="+formatMoney(m[k]))
	}
	return strings.Join(parts, ", ")
}
