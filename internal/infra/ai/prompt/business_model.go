package prompt

import (
	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	"github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

const businessModelSchema = `
{
  "businessModel": {
    "valueProposition": "<string>",
    "customerSegments": ["<string>"],
    "channels": ["<string>"],
    "customerRelationships": ["<string>"],
    "revenueStreams": ["<string>"],
    "keyResources": ["<string>"],
    "keyActivities": ["<string>"],
    "keyPartners": ["<string>"],
    "costStructure": ["<string>"]
  },
  "pricingStrategy": "<string>",
  "revenueProjections": [
    {"year": 1, "revenue": 0, "customers": 0}
  ]
}`

// BusinessModel asks for a business model canvas for the chosen solution.
func BusinessModel(req analysis.BusinessModelRequest) ai.Request {
	return ai.Request{
		System: system(
			"You are a business strategist coaching first-time student founders.",
			[]string{
				"Fill every block of the business model canvas with concrete, specific entries.",
				"revenueProjections covers years 1 to 3; revenue is in INR as a plain number.",
			},
			businessModelSchema,
		),
		User: "Design a business model and respond with the JSON per schema.\n" +
			context(
				"Problem", req.ProblemTitle,
				"Problem details", req.ProblemDescription,
				"Solution", req.SolutionTitle,
				"Solution details", req.SolutionDescription,
				"Target market", req.TargetMarket,
			),
	}
}
