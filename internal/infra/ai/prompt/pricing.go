package prompt

import (
	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	"github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

const pricingSchema = `
{
  "providers": [
    {
      "id": "provider_1",
      "name": "<string>",
      "rating": 0.0,
      "website": "<string>",
      "processingTime": "<string, e.g. 7-10 days>",
      "basicPlan": {"name": "<string>", "price": "<string, e.g. ₹6,999>", "features": ["<string>"]},
      "premiumPlan": {"name": "<string>", "price": "<string>", "features": ["<string>"]}
    }
  ]
}`

// Pricing asks for registration service providers and their packages.
func Pricing(req analysis.PricingRequest) ai.Request {
	return ai.Request{
		System: system(
			"You are a compliance consultant who tracks online company-registration services in India.",
			[]string{
				"List four to six providers that register this entity type in the given state.",
				"Prices are all-inclusive package prices in INR formatted like ₹6,999.",
				"rating is out of 5.",
			},
			pricingSchema,
		),
		User: "Compare registration providers and respond with the JSON per schema.\n" +
			context(
				"Entity type", req.EntityType,
				"State", req.State,
			),
	}
}
