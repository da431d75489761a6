package analysis

type BusinessModelRequest struct {
	ProblemTitle        string `json:"problemTitle"`
	ProblemDescription  string `json:"problemDescription,omitempty"`
	SolutionTitle       string `json:"solutionTitle"`
	SolutionDescription string `json:"solutionDescription,omitempty"`
	TargetMarket        string `json:"targetMarket,omitempty"`
	ProjectID           string `json:"projectId,omitempty"`
}

// BusinessModelCanvas follows the nine blocks of the canvas.
type BusinessModelCanvas struct {
	ValueProposition      string   `json:"valueProposition"`
	CustomerSegments      []string `json:"customerSegments"`
	Channels              []string `json:"channels"`
	CustomerRelationships []string `json:"customerRelationships"`
	RevenueStreams        []string `json:"revenueStreams"`
	KeyResources          []string `json:"keyResources"`
	KeyActivities         []string `json:"keyActivities"`
	KeyPartners           []string `json:"keyPartners"`
	CostStructure         []string `json:"costStructure"`
}

type RevenueProjection struct {
	Year      float64 `json:"year"`
	Revenue   float64 `json:"revenue"`
	Customers float64 `json:"customers"`
}

type BusinessModelResult struct {
	BusinessModel      BusinessModelCanvas `json:"businessModel"`
	PricingStrategy    string              `json:"pricingStrategy"`
	RevenueProjections []RevenueProjection `json:"revenueProjections"`
}
