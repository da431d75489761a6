package analysis

type ProblemRequest struct {
	ProblemStatement string `json:"problemStatement"`
	Context          string `json:"context,omitempty"`
	TargetAudience   string `json:"targetAudience,omitempty"`
	Location         string `json:"location,omitempty"`
	ProjectID        string `json:"projectId,omitempty"`
}

type ProblemAnalysis struct {
	Summary         string   `json:"summary"`
	RootCauses      []string `json:"rootCauses"`
	Stakeholders    []string `json:"stakeholders"`
	Severity        string   `json:"severity"`
	Category        string   `json:"category"`
	Urgency         string   `json:"urgency"`
	MarketPotential string   `json:"marketPotential"`
	Confidence      float64  `json:"confidence"`
}

type SolutionIdea struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Feasibility     string   `json:"feasibility"`
	Impact          string   `json:"impact"`
	EstimatedCost   string   `json:"estimatedCost"`
	TimeToImplement string   `json:"timeToImplement"`
	KeyFeatures     []string `json:"keyFeatures"`
}

type ProblemResult struct {
	Analysis  ProblemAnalysis `json:"analysis"`
	Solutions []SolutionIdea  `json:"solutions"`
}
