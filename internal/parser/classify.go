package parser

import (
	"strings"

	"campaigngo/internal/domain"
)

type typeKeywords struct {
	campaignType domain.CampaignType
	phrases      []string
}

// Checked in order; the first category with any hit wins.
var primaryTypeKeywords = []typeKeywords{
	{domain.TypeEmail, []string{"email campaign", "email marketing", "newsletter", "email blast", "drip campaign", "email sequence", "mailing list"}},
	{domain.TypeSocialMedia, []string{"social media", "instagram", "facebook", "twitter", "linkedin", "tiktok", "influencer"}},
	{domain.TypeContent, []string{"content marketing", "blog post", "content strategy", "articles", "whitepaper", "ebook", "podcast"}},
	{domain.TypeSEO, []string{"seo", "search engine optimization", "organic search", "organic traffic", "keyword ranking", "backlinks"}},
	{domain.TypePaidAds, []string{"paid ads", "paid advertising", "ppc", "pay per click", "google ads", "display ads", "ad campaign", "sponsored"}},
}

// Broader single keywords, used only when no primary phrase matched.
var fallbackTypeKeywords = []typeKeywords{
	{domain.TypeEmail, []string{"email"}},
	{domain.TypeSocialMedia, []string{"social"}},
	{domain.TypeContent, []string{"content", "blog"}},
	{domain.TypeSEO, []string{"seo", "search"}},
	{domain.TypePaidAds, []string{"ads", "advertising"}},
}

// ClassifyType assigns exactly one campaign type to text. It never fails; TypeOther is the fallback.
func ClassifyType(text string) domain.CampaignType {
	lower := strings.ToLower(text)
	if t, ok := matchTypeKeywords(lower, primaryTypeKeywords); ok {
		return t
	}
	if t, ok := matchTypeKeywords(lower, fallbackTypeKeywords); ok {
		return t
	}
	return domain.TypeOther
}

func matchTypeKeywords(lower string, sets []typeKeywords) (domain.CampaignType, bool) {
	for _, set := range sets {
		for _, phrase := range set.phrases {
			if strings.Contains(lower, phrase) {
				return set.campaignType, true
			}
		}
	}
	return "", false
}
