package analysis

import (
	"strings"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/prompt"
)

// ImageSpec spots problems in a photo.
func ImageSpec() Spec[domain.ImageRequest, domain.ImageResult] {
	return Spec[domain.ImageRequest, domain.ImageResult]{
		Capability: domain.CapabilityImage,
		Validate:   validateImage,
		Prompt: func(req domain.ImageRequest) (ai.Request, error) {
			img, err := ai.DecodeDataURI(req.ImageData)
			if err != nil {
				return ai.Request{}, err
			}
			return prompt.Image(req, img), nil
		},
		Normalize: normalizeImage,
		Fallback:  fallbackImage,
	}
}

func validateImage(req *domain.ImageRequest) error {
	req.ImageData = strings.TrimSpace(req.ImageData)
	if req.ImageData == "" {
		return domain.InvalidInput("No image data provided")
	}
	return nil
}

func normalizeImage(f fields, _ domain.ImageRequest) domain.ImageResult {
	items := f.objs("problems")
	problems := make([]domain.DetectedProblem, 0, len(items))
	for i, p := range items {
		problems = append(problems, domain.DetectedProblem{
			ID:          p.id("problem", i),
			Title:       p.str("title", "Untitled Problem"),
			Description: p.str("description", "No description provided"),
			Severity:    p.str("severity", "medium"),
			Category:    p.str("category", "General"),
			Confidence:  p.num("confidence", 0.8),
			Solutions:   p.strs("solutions"),
		})
	}
	return domain.ImageResult{
		Problems:         problems,
		Summary:          f.str("summary", "Analysis completed"),
		ImageDescription: f.str("imageDescription", "Image analyzed"),
	}
}

func fallbackImage(req domain.ImageRequest) domain.ImageResult {
	notes := strings.ToLower(req.Description + " " + req.Location)
	var problems []domain.DetectedProblem

	switch {
	case containsAny(notes, "wire", "wiring", "electric", "cable", "pole"):
		problems = []domain.DetectedProblem{
			{Title: "Exposed Electrical Wiring", Description: "Live wires are hanging within reach of pedestrians.", Severity: "critical", Category: "Safety", Confidence: 0.9,
				Solutions: []string{"Report the hazard to the electricity board", "Install insulated conduits", "Add warning signage until repaired"}},
			{Title: "Poor Street Lighting", Description: "The area is dimly lit, making the hazard hard to see at night.", Severity: "high", Category: "Safety", Confidence: 0.75,
				Solutions: []string{"Solar-powered street lights", "Community lighting audit"}},
		}
	case containsAny(notes, "garbage", "waste", "trash", "litter", "plastic"):
		problems = []domain.DetectedProblem{
			{Title: "Uncollected Garbage", Description: "Waste is piling up on the roadside and is not cleared regularly.", Severity: "high", Category: "Environment", Confidence: 0.88,
				Solutions: []string{"Scheduled pickup app for households", "Segregated community bins", "Compost unit for wet waste"}},
			{Title: "Plastic Pollution", Description: "Single-use plastic is mixed with organic waste.", Severity: "medium", Category: "Environment", Confidence: 0.8,
				Solutions: []string{"Plastic buy-back kiosks", "Awareness drive in local markets"}},
		}
	case containsAny(notes, "road", "pothole", "traffic", "street", "crack"):
		problems = []domain.DetectedProblem{
			{Title: "Damaged Road Surface", Description: "Potholes and cracks make the road unsafe for two-wheelers.", Severity: "high", Category: "Infrastructure", Confidence: 0.87,
				Solutions: []string{"Crowdsourced pothole reporting map", "Cold-mix patching kits for municipal teams"}},
			{Title: "Waterlogging", Description: "Blocked drains leave standing water after rain.", Severity: "medium", Category: "Infrastructure", Confidence: 0.72,
				Solutions: []string{"Drain-cleaning schedule tracker", "Permeable paving"}},
		}
	default:
		problems = []domain.DetectedProblem{
			{Title: "Lack of Accessibility", Description: "The space has no ramps or tactile paths for people with disabilities.", Severity: "medium", Category: "Accessibility", Confidence: 0.7,
				Solutions: []string{"Portable ramps", "Accessibility rating app for public places"}},
			{Title: "Poor Maintenance", Description: "Public fixtures in the area appear neglected.", Severity: "low", Category: "General", Confidence: 0.65,
				Solutions: []string{"Adopt-a-spot volunteer program", "Maintenance request hotline"}},
		}
	}
	for i := range problems {
		problems[i].ID = seqID("problem", i)
	}

	return domain.ImageResult{
		Problems:         problems,
		Summary:          "Identified " + itoa(len(problems)) + " problems that could be addressed by a student startup.",
		ImageDescription: orDefault(req.Description, "An everyday public space"),
	}
}
