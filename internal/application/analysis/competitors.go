package analysis

import (
	"strings"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/prompt"
)

// CompetitorSpec finds existing players for a problem.
func CompetitorSpec() Spec[domain.CompetitorRequest, domain.CompetitorResult] {
	return Spec[domain.CompetitorRequest, domain.CompetitorResult]{
		Capability: domain.CapabilityCompetitors,
		Validate: func(req *domain.CompetitorRequest) error {
			req.ProblemTitle = strings.TrimSpace(req.ProblemTitle)
			req.ProblemDescription = strings.TrimSpace(req.ProblemDescription)
			if req.ProblemTitle == "" || req.ProblemDescription == "" {
				return domain.InvalidInput("Problem title and description are required")
			}
			return nil
		},
		Prompt: func(req domain.CompetitorRequest) (ai.Request, error) {
			return prompt.Competitors(req), nil
		},
		Normalize: normalizeCompetitors,
		Fallback:  fallbackCompetitors,
	}
}

func normalizeCompetitors(f fields, _ domain.CompetitorRequest) domain.CompetitorResult {
	items := f.objs("competitors")
	competitors := make([]domain.Competitor, 0, len(items))
	for i, c := range items {
		competitors = append(competitors, domain.Competitor{
			ID:             c.id("competitor", i),
			Name:           c.str("name", "Unknown Competitor"),
			Description:    c.str("description", "No description provided"),
			Website:        c.str("website", ""),
			Strengths:      c.strs("strengths"),
			Weaknesses:     c.strs("weaknesses"),
			MarketShare:    c.str("marketShare", "Unknown"),
			Pricing:        c.str("pricing", NotSpecified),
			TargetAudience: c.str("targetAudience", NotSpecified),
		})
	}
	m := f.obj("marketAnalysis")
	return domain.CompetitorResult{
		Competitors: competitors,
		MarketAnalysis: domain.MarketAnalysis{
			MarketSize: m.str("marketSize", "Unknown"),
			GrowthRate: m.str("growthRate", "Unknown"),
			KeyTrends:  m.strs("keyTrends"),
			Barriers:   m.strs("barriers"),
			Threats:    m.strs("threats"),
		},
		Opportunities: f.strs("opportunities"),
	}
}

type competitorSeed struct {
	name, description, website, share, pricing, audience string
	strengths, weaknesses                                []string
}

var competitorsByCategory = map[string][]competitorSeed{
	"safety": {
		{"SafetiPin", "Safety audit app that maps and scores public spaces.", "https://safetipin.com", "Niche", "Free for citizens, paid for cities", "Urban commuters, city planners",
			[]string{"Large dataset of audited locations", "Government partnerships"}, []string{"Limited coverage in small towns", "Slow update cycle"}},
		{"MyGate", "Community security and visitor management platform.", "https://mygate.com", "Leading in gated communities", "Per-flat monthly fee", "Residential societies",
			[]string{"Strong brand", "Large installed base"}, []string{"Focused on gated communities", "Privacy concerns"}},
		{"Local Electricity Board Helpline", "Official complaint channel for electrical hazards.", "", "Default channel", "Free", "All citizens",
			[]string{"Legal authority to fix issues", "Zero cost"}, []string{"Slow response", "No public tracking"}},
	},
	"health": {
		{"Practo", "Doctor discovery, appointments and online consultations.", "https://practo.com", "High", "Commission and subscriptions", "Urban patients",
			[]string{"Large doctor network", "Trusted brand"}, []string{"Weak rural presence", "Crowded feature set"}},
		{"1mg", "Online pharmacy with diagnostics and teleconsultation.", "https://1mg.com", "High", "Product margin", "Chronic care patients",
			[]string{"Fast delivery", "Broad catalogue"}, []string{"Price competition", "Thin margins"}},
		{"eSanjeevani", "Government telemedicine service.", "https://esanjeevani.mohfw.gov.in", "Large public reach", "Free", "Rural patients",
			[]string{"Free for users", "Government backing"}, []string{"Basic user experience", "Limited specialist availability"}},
	},
	"education": {
		{"BYJU'S", "Video-led learning app for school and test prep.", "https://byjus.com", "High", "Annual subscription", "K-12 students",
			[]string{"Content depth", "Brand awareness"}, []string{"High price", "Reputation issues"}},
		{"Unacademy", "Live classes for competitive exams.", "https://unacademy.com", "Medium", "Monthly subscription", "Exam aspirants",
			[]string{"Star educators", "Live format"}, []string{"Educator churn", "Heavy discounting"}},
		{"DIKSHA", "National platform for school education content.", "https://diksha.gov.in", "Large public reach", "Free", "Teachers and students",
			[]string{"Curriculum aligned", "Free"}, []string{"Low engagement", "Patchy content quality"}},
	},
	"environment": {
		{"Recykal", "Digital marketplace for recyclable waste.", "https://recykal.com", "Medium", "Transaction fees", "Businesses and recyclers",
			[]string{"B2B network", "Traceability"}, []string{"Limited consumer reach", "Dependent on commodity prices"}},
		{"Saahas Zero Waste", "Waste management services for campuses and companies.", "https://saahaszerowaste.com", "Niche", "Service contracts", "Corporates and apartments",
			[]string{"End-to-end processing", "Compliance expertise"}, []string{"Capital intensive", "Few cities"}},
		{"Municipal Swachhata App", "Civic complaint app for sanitation issues.", "", "Default channel", "Free", "Citizens",
			[]string{"Official escalation path", "Free"}, []string{"Inconsistent resolution", "Poor feedback loop"}},
	},
	"technology": {
		{"Zoho", "Suite of business software for small companies.", "https://zoho.com", "High", "Per-user subscription", "SMBs",
			[]string{"Broad product range", "Affordable"}, []string{"Steep learning curve", "Generic workflows"}},
		{"Freshworks", "Customer engagement software.", "https://freshworks.com", "Medium", "Per-seat pricing", "SMBs and mid-market",
			[]string{"Ease of use", "Global presence"}, []string{"Pricey at scale", "Limited vertical focus"}},
		{"Open source tools", "Community-maintained alternatives.", "", "Fragmented", "Free", "Technical users",
			[]string{"Free", "Customisable"}, []string{"No support", "Setup effort"}},
	},
	"general": {
		{"Established Local Services", "Traditional offline providers addressing the problem.", "", "Fragmented", "Varies", "Local residents",
			[]string{"Existing customer trust", "Physical presence"}, []string{"No digital channel", "Inconsistent quality"}},
		{"Government Schemes", "Public programs that partly address the problem.", "", "Broad but shallow", "Free or subsidised", "Eligible citizens",
			[]string{"Funding and reach", "Policy backing"}, []string{"Bureaucratic delays", "Low awareness"}},
		{"Early-stage Startups", "New ventures experimenting with digital solutions.", "", "Small", "Freemium", "Early adopters",
			[]string{"Fast iteration", "Modern technology"}, []string{"Limited funding", "Unproven models"}},
	},
}

func fallbackCompetitors(req domain.CompetitorRequest) domain.CompetitorResult {
	seeds, ok := competitorsByCategory[strings.ToLower(strings.TrimSpace(req.ProblemCategory))]
	if !ok {
		seeds = competitorsByCategory["general"]
	}
	competitors := make([]domain.Competitor, 0, len(seeds))
	for i, s := range seeds {
		competitors = append(competitors, domain.Competitor{
			ID:             seqID("competitor", i),
			Name:           s.name,
			Description:    s.description,
			Website:        s.website,
			Strengths:      append([]string{}, s.strengths...),
			Weaknesses:     append([]string{}, s.weaknesses...),
			MarketShare:    s.share,
			Pricing:        s.pricing,
			TargetAudience: s.audience,
		})
	}
	return domain.CompetitorResult{
		Competitors: competitors,
		MarketAnalysis: domain.MarketAnalysis{
			MarketSize: "Estimated ₹500-2,000 crore addressable market in India",
			GrowthRate: "12-18% annually",
			KeyTrends:  []string{"Smartphone adoption in tier-2 and tier-3 cities", "UPI-enabled micro payments", "Government digitisation push"},
			Barriers:   []string{"Customer acquisition cost", "Trust in new brands", "Regulatory approvals"},
			Threats:    []string{"Large platforms adding the feature", "Free government alternatives"},
		},
		Opportunities: []string{
			"Serve users the incumbents ignore around \"" + req.ProblemTitle + "\"",
			"Local-language, low-bandwidth experience",
			"Partnerships with colleges and resident associations",
		},
	}
}
