package analysis

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/prompt"
)

// PitchSpec writes an investor pitch.
func PitchSpec() Spec[domain.PitchRequest, domain.PitchResult] {
	return Spec[domain.PitchRequest, domain.PitchResult]{
		Capability: domain.CapabilityPitch,
		Validate: func(req *domain.PitchRequest) error {
			req.ProjectName = strings.TrimSpace(req.ProjectName)
			if req.ProjectName == "" {
				return domain.InvalidInput("Project name is required")
			}
			if req.TeamMembers == nil {
				req.TeamMembers = []string{}
			}
			return nil
		},
		Prompt: func(req domain.PitchRequest) (ai.Request, error) {
			return prompt.Pitch(req), nil
		},
		Normalize: normalizePitch,
		Fallback:  fallbackPitch,
	}
}

func normalizePitch(f fields, req domain.PitchRequest) domain.PitchResult {
	p := f.obj("pitch")
	items := p.objs("slides")
	slides := make([]domain.PitchSlide, 0, len(items))
	for i, s := range items {
		slides = append(slides, domain.PitchSlide{
			ID:           s.id("slide", i),
			Title:        s.str("title", fmt.Sprintf("Slide %d", i+1)),
			Content:      s.str("content", ""),
			SpeakerNotes: s.str("speakerNotes", ""),
		})
	}
	return domain.PitchResult{
		Pitch: domain.PitchDocument{
			Title:         p.str("title", req.ProjectName),
			Tagline:       p.str("tagline", ""),
			ElevatorPitch: p.str("elevatorPitch", ""),
			Slides:        slides,
		},
	}
}

func fallbackPitch(req domain.PitchRequest) domain.PitchResult {
	problem := orDefault(req.ProblemStatement, "A real problem our target users face every day")
	solution := orDefault(req.Solution, req.ProjectName+" makes it simple to solve")
	market := orDefault(req.TargetMarket, "Students and young professionals in India")
	model := orDefault(req.BusinessModel, "Freemium subscriptions with institutional licences")
	ask := orDefault(req.FundingAsk, "₹25 lakh pre-seed")
	team := "Founding team of passionate student entrepreneurs"
	if len(req.TeamMembers) > 0 {
		team = strings.Join(req.TeamMembers, ", ")
	}

	slides := []domain.PitchSlide{
		{Title: "The Problem", Content: "- " + problem, SpeakerNotes: "Open with a story the audience recognises."},
		{Title: "Our Solution", Content: "- " + solution, SpeakerNotes: "Show the product in one sentence."},
		{Title: "Market Opportunity", Content: "- Target market: " + market, SpeakerNotes: "Size the market bottom-up."},
		{Title: "Business Model", Content: "- " + model, SpeakerNotes: "Explain who pays and why."},
		{Title: "Competition", Content: "- Incumbents are offline, fragmented or expensive", SpeakerNotes: "Be honest about alternatives."},
		{Title: "Team", Content: "- " + team, SpeakerNotes: "Why this team wins."},
		{Title: "Roadmap", Content: "- Pilot on campus\n- Expand to three cities\n- Launch institutional plan", SpeakerNotes: "Milestones for the next 18 months."},
		{Title: "The Ask", Content: "- " + ask, SpeakerNotes: "State the amount and the use of funds."},
	}
	for i := range slides {
		slides[i].ID = seqID("slide", i)
	}

	return domain.PitchResult{
		Pitch: domain.PitchDocument{
			Title:         req.ProjectName,
			Tagline:       solution,
			ElevatorPitch: req.ProjectName + " helps " + strings.ToLower(market) + " with " + strings.ToLower(problem) + ".",
			Slides:        slides,
		},
	}
}

// PitchMarkdown renders the pitch as a markdown document for storage.
func PitchMarkdown(p domain.PitchDocument) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Tagline != "" {
		fmt.Fprintf(&b, "_%s_\n\n", p.Tagline)
	}
	if p.ElevatorPitch != "" {
		fmt.Fprintf(&b, "> %s\n\n", p.ElevatorPitch)
	}
	for i, s := range p.Slides {
		fmt.Fprintf(&b, "## %d. %s\n\n%s\n\n", i+1, s.Title, s.Content)
		if s.SpeakerNotes != "" {
			fmt.Fprintf(&b, "Notes: %s\n\n", s.SpeakerNotes)
		}
	}
	return []byte(b.String())
}
