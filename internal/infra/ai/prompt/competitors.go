package prompt

import (
	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	"github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

const competitorSchema = `
{
  "competitors": [
    {
      "id": "competitor_1",
      "name": "<string>",
      "description": "<string>",
      "website": "<string>",
      "strengths": ["<string>"],
      "weaknesses": ["<string>"],
      "marketShare": "<string>",
      "pricing": "<string>",
      "targetAudience": "<string>"
    }
  ],
  "marketAnalysis": {
    "marketSize": "<string>",
    "growthRate": "<string>",
    "keyTrends": ["<string>"],
    "barriers": ["<string>"],
    "threats": ["<string>"]
  },
  "opportunities": ["<string>"]
}`

// Competitors asks for existing players addressing the same problem.
func Competitors(req analysis.CompetitorRequest) ai.Request {
	return ai.Request{
		System: system(
			"You are a market research analyst.",
			[]string{
				"List four to six real companies, products or initiatives that address the problem.",
				"Every competitor must have at least two strengths and two weaknesses.",
				"Prefer competitors active in India when relevant.",
			},
			competitorSchema,
		),
		User: "Find competitors for this problem and respond with the JSON per schema.\n" +
			context(
				"Problem title", req.ProblemTitle,
				"Problem description", req.ProblemDescription,
				"Category", req.ProblemCategory,
				"Proposed solution", req.SolutionTitle,
			),
	}
}
