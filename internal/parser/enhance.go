package parser

import (
	"fmt"
	"strings"
)

// Question keys understood by Enhance.
const (
	KeyIndustry       = "industry"
	KeyTargetAudience = "target_audience"
	KeyGoals          = "goals"
	KeyChannels       = "channels"
	KeyKeyMessages    = "key_messages"
	KeyBudget         = "budget"
	KeyTimeline       = "timeline"
	KeySuccessMetrics = "success_metrics"
)

// QuestionKeys lists the keys with dedicated elaboration tables.
var QuestionKeys = []string{
	KeyIndustry, KeyTargetAudience, KeyGoals, KeyChannels,
	KeyKeyMessages, KeyBudget, KeyTimeline, KeySuccessMetrics,
}

// shortAnswerLength is the answer length below which the generic template is used
// even for a known key.
const shortAnswerLength = 20

type elaboration struct {
	keyword string
	text    string
}

type questionProfile struct {
	elaborations []elaboration
	framing      string
}

var questionProfiles = map[string]questionProfile{
	KeyIndustry: {
		elaborations: []elaboration{
			{"restaurant", "Restaurant and food service business focused on delivering memorable dining experiences, building loyal local clientele and driving repeat visits through reservations, online ordering and community engagement."},
			{"food", "Food and beverage business focused on delivering quality products and memorable experiences that build loyal customers and drive repeat purchases."},
			{"retail", "Retail business focused on creating seamless in-store and online shopping experiences that drive foot traffic, basket size and customer loyalty."},
			{"ecommerce", "E-commerce business focused on driving qualified site traffic, increasing conversion rates and growing customer lifetime value through a frictionless online store."},
			{"saas", "Software-as-a-service company focused on acquiring qualified trial users, converting them to paying subscribers and reducing churn through clear product value."},
			{"software", "Software company focused on demonstrating product value to decision makers, generating qualified pipeline and accelerating adoption."},
			{"tech", "Technology company focused on communicating innovation clearly, building credibility with technical buyers and generating qualified demand."},
			{"health", "Healthcare and wellness organization focused on building patient trust, communicating expertise clearly and making it easy to book care."},
			{"fitness", "Fitness business focused on inspiring healthy lifestyles, growing memberships and keeping members engaged through community and results."},
			{"real estate", "Real estate business focused on generating qualified buyer and seller leads, showcasing listings and building a trusted local reputation."},
			{"finance", "Financial services firm focused on building trust, educating clients on complex products and generating qualified consultations."},
			{"education", "Education provider focused on attracting motivated learners, demonstrating learning outcomes and increasing enrollments."},
			{"beauty", "Beauty and personal care brand focused on inspiring customers with visual storytelling, building community and driving product discovery."},
			{"travel", "Travel and hospitality business focused on inspiring wanderlust, showcasing unique experiences and driving direct bookings."},
			{"nonprofit", "Nonprofit organization focused on raising awareness for its mission, growing a committed supporter base and increasing donations."},
		},
		framing: "%s industry, with a marketing approach tailored to its customers, competitive landscape and buying cycle.",
	},
	KeyTargetAudience: {
		elaborations: []elaboration{
			{"small business", "Small business owners and operators who are time-constrained, value practical solutions with clear ROI and make purchasing decisions quickly."},
			{"millennial", "Millennials aged 25-40 who are digitally native, value authenticity and social responsibility, and research brands online before purchasing."},
			{"gen z", "Gen Z consumers aged 18-25 who discover brands on social platforms, respond to authentic short-form content and expect brands to share their values."},
			{"parent", "Parents balancing family and work who value convenience, safety and trusted recommendations when choosing products for their households."},
			{"professional", "Working professionals who value efficiency, expertise and solutions that help them advance their careers or save time."},
			{"student", "Students who are budget-conscious, highly active on mobile and social platforms, and responsive to discounts and peer recommendations."},
			{"senior", "Older adults who value clear communication, trusted brands and excellent customer service when making purchasing decisions."},
			{"enterprise", "Enterprise decision makers and buying committees who require proven results, security assurances and detailed business cases."},
			{"local", "Local residents in our service area who value community connection, convenience and businesses they can trust nearby."},
		},
		framing: "Our target audience is %s, reached with messaging and channels matched to their needs, motivations and media habits.",
	},
	KeyGoals: {
		elaborations: []elaboration{
			{"awareness", "Increase brand awareness and visibility among our target audience, measured through reach, impressions and growth in branded search."},
			{"lead", "Generate a steady pipeline of qualified leads by capturing interest with compelling offers and nurturing prospects toward a sales conversation."},
			{"sales", "Drive measurable sales growth by converting interested prospects into customers and increasing average order value."},
			{"revenue", "Grow revenue by acquiring new customers efficiently and increasing the lifetime value of existing ones."},
			{"engagement", "Deepen audience engagement through valuable, interactive content that encourages comments, shares and repeat visits."},
			{"traffic", "Increase qualified website traffic from our target audience and convert more visitors into subscribers and customers."},
			{"retention", "Improve customer retention and loyalty through personalized communication, exclusive value and excellent post-purchase experiences."},
			{"launch", "Successfully launch our new offering by building anticipation, generating early adoption and creating momentum in the market."},
		},
		framing: "Our primary goal is to %s, with clear milestones and measurable outcomes that tie campaign activity to business results.",
	},
	KeyChannels: {
		elaborations: []elaboration{
			{"instagram", "Instagram, using visually compelling posts, Stories and Reels to build brand affinity and drive engagement with a highly visual audience."},
			{"facebook", "Facebook, combining community-building organic content with precisely targeted ads to reach and convert our audience."},
			{"linkedin", "LinkedIn, sharing thought leadership and targeted sponsored content to reach professionals and B2B decision makers."},
			{"tiktok", "TikTok, using authentic short-form video and creator partnerships to reach younger audiences and spark organic discovery."},
			{"email", "Email marketing, delivering personalized, segmented messages that nurture subscribers and drive repeat conversions."},
			{"google", "Google Search and Display, capturing high-intent demand with targeted keywords and retargeting interested visitors."},
			{"youtube", "YouTube, using educational and storytelling video content to build trust and reach audiences at scale."},
			{"seo", "Search engine optimization, earning sustainable organic traffic by ranking for the keywords our customers search for."},
		},
		framing: "We will use %s as our core channels, coordinated so each touchpoint reinforces a consistent message across the customer journey.",
	},
	KeyKeyMessages: {
		elaborations: []elaboration{
			{"quality", "We deliver uncompromising quality, so customers can trust that every product and interaction meets the highest standard."},
			{"price", "We offer exceptional value, giving customers premium results at a price that makes sense for their budget."},
			{"save", "We help customers save time and money with a simpler, smarter way to get what they need."},
			{"innovation", "We lead with innovation, bringing customers new ideas and capabilities that keep them ahead."},
			{"sustainab", "We are committed to sustainability, helping customers make choices that are better for them and for the planet."},
			{"convenien", "We make life easier, delivering a convenient experience that fits seamlessly into our customers' day."},
			{"trust", "We are a trusted partner with a proven track record, backed by real results and satisfied customers."},
		},
		framing: "Our key message is: %s. Every asset will communicate this clearly, with a consistent voice and a strong call to action.",
	},
	KeyBudget: {
		elaborations: []elaboration{
			{"limited", "A lean budget focused on the highest-impact channels, with spend reallocated weekly toward the tactics delivering the best return."},
			{"small", "A modest budget concentrated on a few proven channels, prioritizing efficient cost per acquisition over broad reach."},
			{"flexible", "A flexible budget that starts with controlled tests and scales investment into the channels that prove their return."},
			{"large", "A substantial budget enabling a multi-channel approach with room for creative testing, broad reach and sustained frequency."},
		},
		framing: "Our budget is %s, allocated across channels based on expected return and adjusted as performance data comes in.",
	},
	KeyTimeline: {
		elaborations: []elaboration{
			{"asap", "An accelerated launch within the next two weeks, prioritizing quick wins while the broader campaign is built out."},
			{"week", "A short, focused campaign window of a few weeks with a concentrated burst of activity and rapid optimization."},
			{"month", "A campaign running over the coming months, with a launch phase, an optimization phase and a final push toward our goals."},
			{"quarter", "A quarter-long campaign with monthly milestones, giving enough time to test, learn and scale what works."},
			{"holiday", "A seasonal campaign timed around the holiday period, with teaser activity before the peak and retargeting afterwards."},
			{"ongoing", "An always-on program with continuous optimization and periodic creative refreshes to sustain performance."},
		},
		framing: "Our timeline is %s, with clear phases for launch, optimization and reporting so progress can be reviewed at each stage.",
	},
	KeySuccessMetrics: {
		elaborations: []elaboration{
			{"roi", "Return on investment, tracking revenue generated against total campaign spend to confirm the campaign is profitable."},
			{"conversion", "Conversion rate, measuring the share of engaged visitors who complete the desired action such as a purchase or sign-up."},
			{"lead", "Qualified leads generated, tracked by source and cost per lead to identify the most efficient channels."},
			{"engagement", "Engagement rate, measuring likes, comments, shares and clicks relative to reach to gauge how well content resonates."},
			{"traffic", "Website traffic growth, tracking sessions, new visitors and time on site from campaign sources."},
			{"sales", "Sales attributable to the campaign, tracked through unique codes, UTM links and post-purchase attribution."},
			{"follower", "Follower growth, measuring net new followers across our social channels as an indicator of growing brand affinity."},
		},
		framing: "We will measure success by %s, reviewed weekly against targets so the campaign can be optimized continuously.",
	},
}

const genericEnhancement = "Professionally optimized %s strategy designed to maximize engagement and drive measurable business results."

// Enhance rewrites a short user answer into a fuller marketing sentence for the given question key.
// A keyword hit in the key's table wins; otherwise unknown keys and short answers get the
// generic template, and longer answers get the key's framing.
func Enhance(answer, key string) string {
	trimmed := strings.TrimSpace(answer)
	lower := strings.ToLower(trimmed)

	profile, known := questionProfiles[key]
	if known {
		for _, e := range profile.elaborations {
			if strings.Contains(lower, e.keyword) {
				return e.text
			}
		}
	}

	if !known || len([]rune(trimmed)) < shortAnswerLength {
		return fmt.Sprintf(genericEnhancement, trimmed)
	}
	return fmt.Sprintf(profile.framing, strings.TrimRight(trimmed, ".!"))
}

// KnownQuestionKey reports whether key has a dedicated elaboration table.
func KnownQuestionKey(key string) bool {
	_, ok := questionProfiles[key]
	return ok
}

// HasElaboration reports whether Enhance would answer from a keyword table rather than a template.
func HasElaboration(answer, key string) bool {
	profile, ok := questionProfiles[key]
	if !ok {
		return false
	}
	lower := strings.ToLower(answer)
	for _, e := range profile.elaborations {
		if strings.Contains(lower, e.keyword) {
			return true
		}
	}
	return false
}
