package prompt

import (
	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	"github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

const pitchSchema = `
{
  "pitch": {
    "title": "<string>",
    "tagline": "<string>",
    "elevatorPitch": "<string>",
    "slides": [
      {"id": "slide_1", "title": "<string>", "content": "<string>", "speakerNotes": "<string>"}
    ]
  }
}`

// Pitch asks for an investor pitch document.
func Pitch(req analysis.PitchRequest) ai.Request {
	return ai.Request{
		System: system(
			"You are a pitch coach who has reviewed thousands of seed-stage decks.",
			[]string{
				"Produce eight to ten slides: problem, solution, market, product, business model, competition, team, traction or roadmap, ask.",
				"Slide content is short markdown bullet points.",
				"The elevator pitch is at most three sentences.",
			},
			pitchSchema,
		),
		User: "Write the pitch and respond with the JSON per schema.\n" +
			context(
				"Project name", req.ProjectName,
				"Problem", req.ProblemStatement,
				"Solution", req.Solution,
				"Business model", req.BusinessModel,
				"Target market", req.TargetMarket,
				"Team", list(req.TeamMembers),
				"Funding ask", req.FundingAsk,
			),
	}
}
