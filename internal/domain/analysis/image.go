package analysis

type ImageRequest struct {
	ImageData   string `json:"imageData"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
}

type DetectedProblem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
	Solutions   []string `json:"solutions"`
}

type ImageResult struct {
	Problems         []DetectedProblem `json:"problems"`
	Summary          string            `json:"summary"`
	ImageDescription string            `json:"imageDescription"`
	ImageURL         string            `json:"imageUrl"`
}
