package prompt

import (
	"strconv"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	"github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

const entitySchema = `
{
  "recommendation": {
    "entityType": "<private_limited|llp|opc|partnership|sole_proprietorship>",
    "name": "<string>",
    "reasoning": "<string>",
    "confidence": 0.0
  },
  "entities": [
    {
      "id": "entity_1",
      "type": "<string>",
      "name": "<string>",
      "pros": ["<string>"],
      "cons": ["<string>"],
      "registrationCost": "<string>",
      "annualCompliance": "<string>",
      "timeline": "<string>",
      "suitabilityScore": 0
    }
  ]
}`

// Entity asks which Indian legal entity suits the venture.
func Entity(req analysis.EntityRequest) ai.Request {
	founders := ""
	if req.Founders > 0 {
		founders = strconv.Itoa(req.Founders)
	}
	return ai.Request{
		System: system(
			"You are a corporate lawyer advising Indian student founders on business registration.",
			[]string{
				"Compare private limited company, LLP, one person company, partnership and sole proprietorship.",
				"suitabilityScore is 0 to 100; confidence is 0 to 1.",
				"Costs are indicative INR ranges including government fees.",
			},
			entitySchema,
		),
		User: "Recommend a legal structure and respond with the JSON per schema.\n" +
			context(
				"Business type", req.BusinessType,
				"Number of founders", founders,
				"Funding plans", req.FundingPlans,
				"Expected revenue", req.ExpectedRevenue,
				"State", req.State,
				"Liability concern", req.LiabilityConcern,
			),
	}
}
