package analysis

type PitchRequest struct {
	ProjectName      string   `json:"projectName"`
	ProblemStatement string   `json:"problemStatement,omitempty"`
	Solution         string   `json:"solution,omitempty"`
	BusinessModel    string   `json:"businessModel,omitempty"`
	TargetMarket     string   `json:"targetMarket,omitempty"`
	TeamMembers      []string `json:"teamMembers,omitempty"`
	FundingAsk       string   `json:"fundingAsk,omitempty"`
	ProjectID        string   `json:"projectId,omitempty"`
}

type PitchSlide struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	SpeakerNotes string `json:"speakerNotes"`
}

type PitchDocument struct {
	Title         string       `json:"title"`
	Tagline       string       `json:"tagline"`
	ElevatorPitch string       `json:"elevatorPitch"`
	Slides        []PitchSlide `json:"slides"`
}

type PitchResult struct {
	Pitch       PitchDocument `json:"pitch"`
	DocumentURL string        `json:"documentUrl"`
}
