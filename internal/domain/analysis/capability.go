package analysis

// Capability names double as the project_data section an analysis is
// stored under.
type Capability string

const (
	CapabilityImage         Capability = "image_analysis"
	CapabilityProblem       Capability = "problem_analysis"
	CapabilityCompetitors   Capability = "competitor_analysis"
	CapabilityBusinessModel Capability = "business_model"
	CapabilityPitch         Capability = "pitch"
	CapabilityEntity        Capability = "business_entity"
	CapabilityPricing       Capability = "provider_pricing"
)

// FallbackModel is the aiModel value of every fallback result.
const FallbackModel = "Fallback Analysis (AI provider not available)"
