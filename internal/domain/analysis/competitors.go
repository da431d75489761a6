package analysis

type CompetitorRequest struct {
	ProblemTitle       string `json:"problemTitle"`
	ProblemDescription string `json:"problemDescription"`
	ProblemCategory    string `json:"problemCategory,omitempty"`
	SolutionTitle      string `json:"solutionTitle,omitempty"`
	ProjectID          string `json:"projectId,omitempty"`
}

type Competitor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Website        string   `json:"website"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	MarketShare    string   `json:"marketShare"`
	Pricing        string   `json:"pricing"`
	TargetAudience string   `json:"targetAudience"`
}

type MarketAnalysis struct {
	MarketSize string   `json:"marketSize"`
	GrowthRate string   `json:"growthRate"`
	KeyTrends  []string `json:"keyTrends"`
	Barriers   []string `json:"barriers"`
	Threats    []string `json:"threats"`
}

type CompetitorResult struct {
	Competitors    []Competitor   `json:"competitors"`
	MarketAnalysis MarketAnalysis `json:"marketAnalysis"`
	Opportunities  []string       `json:"opportunities"`
}
