package prompt

import (
	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	"github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

const imageSchema = `
{
  "problems": [
    {
      "id": "problem_1",
      "title": "<string>",
      "description": "<string>",
      "severity": "<critical|high|medium|low>",
      "category": "<Safety|Infrastructure|Environment|Health|Accessibility|General>",
      "confidence": 0.0,
      "solutions": ["<string>"]
    }
  ],
  "summary": "<string>",
  "imageDescription": "<string>"
}`

// Image asks the provider to spot real-world problems in a photo.
func Image(req analysis.ImageRequest, img *ai.Image) ai.Request {
	return ai.Request{
		System: system(
			"You are an expert problem spotter helping students find startup opportunities in everyday surroundings.",
			[]string{
				"List every distinct problem visible in the image, most severe first.",
				"Use lowercase severity values: critical, high, medium, low.",
				"confidence is a number between 0 and 1.",
				"Give two or three practical solution ideas per problem.",
			},
			imageSchema,
		),
		User: "Analyze the attached image and respond with the JSON per schema.\n" +
			context(
				"Student notes", req.Description,
				"Location", req.Location,
			),
		Image: img,
	}
}
