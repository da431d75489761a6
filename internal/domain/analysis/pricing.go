package analysis

type PricingRequest struct {
	EntityType string `json:"entityType"`
	State      string `json:"state"`
	ProjectID  string `json:"projectId,omitempty"`
}

type ServicePlan struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

type ServiceProvider struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Rating         float64     `json:"rating"`
	Website        string      `json:"website"`
	ProcessingTime string      `json:"processingTime"`
	BasicPlan      ServicePlan `json:"basicPlan"`
	PremiumPlan    ServicePlan `json:"premiumPlan"`
}

type PricingComparison struct {
	Cheapest     string `json:"cheapest"`
	HighestRated string `json:"highestRated"`
	Fastest      string `json:"fastest"`
}

type PricingResult struct {
	Providers  []ServiceProvider `json:"providers"`
	Comparison PricingComparison `json:"comparison"`
}
