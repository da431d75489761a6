package analysis

import (
	"strings"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/prompt"
)

// BusinessModelSpec generates a business model canvas.
func BusinessModelSpec() Spec[domain.BusinessModelRequest, domain.BusinessModelResult] {
	return Spec[domain.BusinessModelRequest, domain.BusinessModelResult]{
		Capability: domain.CapabilityBusinessModel,
		Validate: func(req *domain.BusinessModelRequest) error {
			req.ProblemTitle = strings.TrimSpace(req.ProblemTitle)
			req.SolutionTitle = strings.TrimSpace(req.SolutionTitle)
			if req.ProblemTitle == "" || req.SolutionTitle == "" {
				return domain.InvalidInput("Problem and solution titles are required")
			}
			return nil
		},
		Prompt: func(req domain.BusinessModelRequest) (ai.Request, error) {
			return prompt.BusinessModel(req), nil
		},
		Normalize: normalizeBusinessModel,
		Fallback:  fallbackBusinessModel,
	}
}

func normalizeBusinessModel(f fields, _ domain.BusinessModelRequest) domain.BusinessModelResult {
	c := f.obj("businessModel")
	items := f.objs("revenueProjections")
	projections := make([]domain.RevenueProjection, 0, len(items))
	for i, p := range items {
		projections = append(projections, domain.RevenueProjection{
			Year:      p.num("year", float64(i+1)),
			Revenue:   p.num("revenue", 0),
			Customers: p.num("customers", 0),
		})
	}
	return domain.BusinessModelResult{
		BusinessModel: domain.BusinessModelCanvas{
			ValueProposition:      c.str("valueProposition", NotSpecified),
			CustomerSegments:      c.strs("customerSegments"),
			Channels:              c.strs("channels"),
			CustomerRelationships: c.strs("customerRelationships"),
			RevenueStreams:        c.strs("revenueStreams"),
			KeyResources:          c.strs("keyResources"),
			KeyActivities:         c.strs("keyActivities"),
			KeyPartners:           c.strs("keyPartners"),
			CostStructure:         c.strs("costStructure"),
		},
		PricingStrategy:    f.str("pricingStrategy", NotSpecified),
		RevenueProjections: projections,
	}
}

func fallbackBusinessModel(req domain.BusinessModelRequest) domain.BusinessModelResult {
	market := orDefault(req.TargetMarket, "Students and young professionals in Indian cities")
	return domain.BusinessModelResult{
		BusinessModel: domain.BusinessModelCanvas{
			ValueProposition:      req.SolutionTitle + " solves \"" + req.ProblemTitle + "\" faster and cheaper than existing options.",
			CustomerSegments:      []string{market, "Institutions and resident associations"},
			Channels:              []string{"Mobile app", "Campus ambassadors", "WhatsApp communities"},
			CustomerRelationships: []string{"Self-service onboarding", "Community support groups"},
			RevenueStreams:        []string{"Freemium subscriptions", "Institutional licences", "Partner commissions"},
			KeyResources:          []string{"Product and engineering team", "Verified partner network"},
			KeyActivities:         []string{"Product development", "Partner onboarding", "Community building"},
			KeyPartners:           []string{"Colleges and incubators", "Local service providers", "NGOs"},
			CostStructure:         []string{"Cloud hosting", "Salaries", "Marketing", "Partner incentives"},
		},
		PricingStrategy: "Free basic tier; premium plan at ₹99 per month; annual institutional licences.",
		RevenueProjections: []domain.RevenueProjection{
			{Year: 1, Revenue: 500000, Customers: 1000},
			{Year: 2, Revenue: 2500000, Customers: 5000},
			{Year: 3, Revenue: 10000000, Customers: 20000},
		},
	}
}
