package analysis

type EntityRequest struct {
	BusinessType     string `json:"businessType"`
	Founders         int    `json:"founders,omitempty"`
	FundingPlans     string `json:"fundingPlans,omitempty"`
	ExpectedRevenue  string `json:"expectedRevenue,omitempty"`
	State            string `json:"state,omitempty"`
	LiabilityConcern string `json:"liabilityConcern,omitempty"`
	ProjectID        string `json:"projectId,omitempty"`
}

type EntityRecommendation struct {
	EntityType string  `json:"entityType"`
	Name       string  `json:"name"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

type EntityOption struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	Name             string   `json:"name"`
	Pros             []string `json:"pros"`
	Cons             []string `json:"cons"`
	RegistrationCost string   `json:"registrationCost"`
	AnnualCompliance string   `json:"annualCompliance"`
	Timeline         string   `json:"timeline"`
	SuitabilityScore float64  `json:"suitabilityScore"`
}

type EntityResult struct {
	Recommendation EntityRecommendation `json:"recommendation"`
	Entities       []EntityOption       `json:"entities"`
}
