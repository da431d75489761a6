package analysis

import (
	"strings"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/prompt"
)

// EntitySpec recommends a legal structure.
func EntitySpec() Spec[domain.EntityRequest, domain.EntityResult] {
	return Spec[domain.EntityRequest, domain.EntityResult]{
		Capability: domain.CapabilityEntity,
		Validate: func(req *domain.EntityRequest) error {
			req.BusinessType = strings.TrimSpace(req.BusinessType)
			if req.BusinessType == "" {
				return domain.InvalidInput("Business type is required")
			}
			return nil
		},
		Prompt: func(req domain.EntityRequest) (ai.Request, error) {
			return prompt.Entity(req), nil
		},
		Normalize: normalizeEntity,
		Fallback:  fallbackEntity,
	}
}

func normalizeEntity(f fields, _ domain.EntityRequest) domain.EntityResult {
	r := f.obj("recommendation")
	items := f.objs("entities")
	entities := make([]domain.EntityOption, 0, len(items))
	for i, e := range items {
		entities = append(entities, domain.EntityOption{
			ID:               e.id("entity", i),
			Type:             e.str("type", "unknown"),
			Name:             e.str("name", "Unnamed Entity"),
			Pros:             e.strs("pros"),
			Cons:             e.strs("cons"),
			RegistrationCost: e.str("registrationCost", NotSpecified),
			AnnualCompliance: e.str("annualCompliance", NotSpecified),
			Timeline:         e.str("timeline", NotSpecified),
			SuitabilityScore: e.num("suitabilityScore", 0),
		})
	}
	return domain.EntityResult{
		Recommendation: domain.EntityRecommendation{
			EntityType: r.str("entityType", "private_limited"),
			Name:       r.str("name", "Private Limited Company"),
			Reasoning:  r.str("reasoning", NotSpecified),
			Confidence: r.num("confidence", 0.8),
		},
		Entities: entities,
	}
}

type entityTemplate struct {
	typ, name, cost, compliance, timeline string
	pros, cons                            []string
}

var entityCatalog = []entityTemplate{
	{"private_limited", "Private Limited Company", "₹6,000 - ₹15,000", "₹15,000 - ₹50,000 per year", "10-15 days",
		[]string{"Can raise equity from investors", "Limited liability", "Separate legal entity"},
		[]string{"Higher compliance burden", "Mandatory audit"}},
	{"llp", "Limited Liability Partnership", "₹5,000 - ₹10,000", "₹8,000 - ₹20,000 per year", "10-15 days",
		[]string{"Limited liability", "Lower compliance than a company", "Flexible profit sharing"},
		[]string{"Cannot issue equity to investors", "Minimum two partners"}},
	{"opc", "One Person Company", "₹5,000 - ₹12,000", "₹12,000 - ₹30,000 per year", "10-15 days",
		[]string{"Single founder with limited liability", "Separate legal entity"},
		[]string{"Must convert once turnover exceeds limits", "Cannot raise equity easily"}},
	{"partnership", "Partnership Firm", "₹2,000 - ₹5,000", "₹3,000 - ₹8,000 per year", "5-7 days",
		[]string{"Quick and cheap to set up", "Minimal compliance"},
		[]string{"Unlimited personal liability", "Not investor friendly"}},
	{"sole_proprietorship", "Sole Proprietorship", "₹1,000 - ₹3,000", "₹2,000 - ₹5,000 per year", "3-5 days",
		[]string{"Simplest structure", "Full control"},
		[]string{"Unlimited personal liability", "Hard to raise funds"}},
}

func fallbackEntity(req domain.EntityRequest) domain.EntityResult {
	funding := strings.ToLower(req.FundingPlans)
	liability := strings.ToLower(req.LiabilityConcern)

	pick, reason := "private_limited", "Best suited for raising external investment and scaling."
	switch {
	case containsAny(funding, "vc", "venture", "angel", "investor", "equity", "seed"):
		pick, reason = "private_limited", "You plan to raise equity funding, which requires a private limited company."
	case req.Founders == 1 && containsAny(liability, "high", "yes", "important", "concern"):
		pick, reason = "opc", "A single founder who wants limited liability is best served by a one person company."
	case req.Founders == 1:
		pick, reason = "sole_proprietorship", "A single founder without external funding can start simply as a sole proprietor."
	case req.Founders >= 2 && containsAny(funding, "bootstrap", "self", "none", "no"):
		pick, reason = "llp", "Multiple founders bootstrapping get limited liability with lighter compliance in an LLP."
	}

	entities := make([]domain.EntityOption, 0, len(entityCatalog))
	var recommended entityTemplate
	for i, t := range entityCatalog {
		score := 60.0 - float64(i)*5
		if t.typ == pick {
			score = 92
			recommended = t
		}
		entities = append(entities, domain.EntityOption{
			ID:               seqID("entity", i),
			Type:             t.typ,
			Name:             t.name,
			Pros:             append([]string{}, t.pros...),
			Cons:             append([]string{}, t.cons...),
			RegistrationCost: t.cost,
			AnnualCompliance: t.compliance,
			Timeline:         t.timeline,
			SuitabilityScore: score,
		})
	}

	return domain.EntityResult{
		Recommendation: domain.EntityRecommendation{
			EntityType: recommended.typ,
			Name:       recommended.name,
			Reasoning:  reason,
			Confidence: 0.75,
		},
		Entities: entities,
	}
}
