package prompt

import (
	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	"github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

const problemSchema = `
{
  "analysis": {
    "summary": "<string>",
    "rootCauses": ["<string>"],
    "stakeholders": ["<string>"],
    "severity": "<critical|high|medium|low>",
    "category": "<string>",
    "urgency": "<immediate|short-term|long-term>",
    "marketPotential": "<string>",
    "confidence": 0.0
  },
  "solutions": [
    {
      "id": "solution_1",
      "title": "<string>",
      "description": "<string>",
      "feasibility": "<high|medium|low>",
      "impact": "<high|medium|low>",
      "estimatedCost": "<string>",
      "timeToImplement": "<string>",
      "keyFeatures": ["<string>"]
    }
  ]
}`

// Problem asks for a structured analysis of a written problem statement
// plus candidate solutions.
func Problem(req analysis.ProblemRequest) ai.Request {
	return ai.Request{
		System: system(
			"You are a startup mentor who analyzes real-world problems for student founders.",
			[]string{
				"Identify root causes and the people affected.",
				"Propose three to five solutions ordered by feasibility.",
				"confidence is a number between 0 and 1.",
			},
			problemSchema,
		),
		User: "Analyze this problem and respond with the JSON per schema.\n" +
			context(
				"Problem statement", req.ProblemStatement,
				"Context", req.Context,
				"Target audience", req.TargetAudience,
				"Location", req.Location,
			),
	}
}
