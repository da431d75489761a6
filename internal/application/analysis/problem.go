package analysis

import (
	"strings"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/prompt"
)

// ProblemSpec analyzes a written problem statement.
func ProblemSpec() Spec[domain.ProblemRequest, domain.ProblemResult] {
	return Spec[domain.ProblemRequest, domain.ProblemResult]{
		Capability: domain.CapabilityProblem,
		Validate: func(req *domain.ProblemRequest) error {
			req.ProblemStatement = strings.TrimSpace(req.ProblemStatement)
			if req.ProblemStatement == "" {
				return domain.InvalidInput("Problem statement is required")
			}
			return nil
		},
		Prompt: func(req domain.ProblemRequest) (ai.Request, error) {
			return prompt.Problem(req), nil
		},
		Normalize: normalizeProblem,
		Fallback:  fallbackProblem,
	}
}

func normalizeProblem(f fields, _ domain.ProblemRequest) domain.ProblemResult {
	a := f.obj("analysis")
	items := f.objs("solutions")
	solutions := make([]domain.SolutionIdea, 0, len(items))
	for i, s := range items {
		solutions = append(solutions, domain.SolutionIdea{
			ID:              s.id("solution", i),
			Title:           s.str("title", "Untitled Solution"),
			Description:     s.str("description", "No description provided"),
			Feasibility:     s.str("feasibility", "medium"),
			Impact:          s.str("impact", "medium"),
			EstimatedCost:   s.str("estimatedCost", NotSpecified),
			TimeToImplement: s.str("timeToImplement", NotSpecified),
			KeyFeatures:     s.strs("keyFeatures"),
		})
	}
	return domain.ProblemResult{
		Analysis: domain.ProblemAnalysis{
			Summary:         a.str("summary", "Analysis completed"),
			RootCauses:      a.strs("rootCauses"),
			Stakeholders:    a.strs("stakeholders"),
			Severity:        a.str("severity", "medium"),
			Category:        a.str("category", "General"),
			Urgency:         a.str("urgency", "short-term"),
			MarketPotential: a.str("marketPotential", NotSpecified),
			Confidence:      a.num("confidence", 0.8),
		},
		Solutions: solutions,
	}
}

func fallbackProblem(req domain.ProblemRequest) domain.ProblemResult {
	text := strings.ToLower(req.ProblemStatement + " " + req.Context)
	severity, urgency := "medium", "short-term"
	switch {
	case containsAny(text, "danger", "unsafe", "accident", "death", "injur", "fire"):
		severity, urgency = "critical", "immediate"
	case containsAny(text, "health", "hospital", "water", "food"):
		severity, urgency = "high", "immediate"
	case containsAny(text, "cost", "expensive", "afford", "time", "slow"):
		severity = "high"
	}

	audience := orDefault(req.TargetAudience, "people affected by the problem")
	solutions := []domain.SolutionIdea{
		{Title: "Community Reporting Platform", Description: "A mobile app where " + audience + " report and track the issue with photos and location.",
			Feasibility: "high", Impact: "medium", EstimatedCost: "₹50,000 - ₹2,00,000", TimeToImplement: "2-3 months",
			KeyFeatures: []string{"Geo-tagged reports", "Status tracking", "Upvotes to prioritise issues"}},
		{Title: "Subscription Service", Description: "A paid service that resolves the problem end to end for " + audience + ".",
			Feasibility: "medium", Impact: "high", EstimatedCost: "₹2,00,000 - ₹5,00,000", TimeToImplement: "4-6 months",
			KeyFeatures: []string{"Monthly plans", "Verified service partners", "In-app payments"}},
		{Title: "Awareness and Training Program", Description: "Workshops and digital content that help " + audience + " prevent the problem.",
			Feasibility: "high", Impact: "medium", EstimatedCost: "₹20,000 - ₹80,000", TimeToImplement: "1-2 months",
			KeyFeatures: []string{"Local-language content", "Partner NGOs", "Impact surveys"}},
	}
	for i := range solutions {
		solutions[i].ID = seqID("solution", i)
	}

	return domain.ProblemResult{
		Analysis: domain.ProblemAnalysis{
			Summary:         "The problem affects " + audience + " and has no widely adopted solution yet.",
			RootCauses:      []string{"Limited awareness", "Lack of affordable alternatives", "Weak accountability of service providers"},
			Stakeholders:    []string{audience, "Local government", "Service providers"},
			Severity:        severity,
			Category:        "General",
			Urgency:         urgency,
			MarketPotential: "Moderate market with room for a focused early entrant",
			Confidence:      0.7,
		},
		Solutions: solutions,
	}
}
