package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

// parse turns a well-formed result back into provider-shaped fields.
func parse(t *testing.T, v any) fields {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	obj, err := ExtractJSON(string(b))
	require.NoError(t, err)
	return fields(obj)
}

func TestFields(t *testing.T) {
	f := fields{
		"s":     "text",
		"blank": "  ",
		"n":     float64(3),
		"pct":   "85%",
		"list":  []any{"a", "", float64(2), map[string]any{}},
		"one":   "single",
		"obj":   map[string]any{"k": "v"},
		"objs":  []any{map[string]any{"id": "x"}, "skip", map[string]any{}},
	}

	assert.Equal(t, "text", f.str("s", "def"))
	assert.Equal(t, "def", f.str("blank", "def"))
	assert.Equal(t, "3", f.str("n", "def"))
	assert.Equal(t, "def", f.str("missing", "def"))

	assert.Equal(t, 3.0, f.num("n", 0))
	assert.Equal(t, 85.0, f.num("pct", 0))
	assert.Equal(t, 0.8, f.num("s", 0.8))

	assert.Equal(t, []string{"a", "2"}, f.strs("list"))
	assert.Equal(t, []string{"single"}, f.strs("one"))
	assert.NotNil(t, f.strs("missing"))
	assert.Empty(t, f.strs("missing"))

	assert.Equal(t, "v", f.obj("obj").str("k", ""))
	assert.Empty(t, f.obj("s"))

	items := f.objs("objs")
	require.Len(t, items, 2)
	assert.Equal(t, "x", items[0].id("item", 0))
	assert.Equal(t, "item_2", items[1].id("item", 1))
}

func TestNormalize_IdempotentOnWellFormedInput(t *testing.T) {
	image := fallbackImage(domain.ImageRequest{Description: "garbage on the street"})
	assert.Equal(t, image, normalizeImage(parse(t, image), domain.ImageRequest{}))

	problem := fallbackProblem(domain.ProblemRequest{ProblemStatement: "Unsafe crossings"})
	assert.Equal(t, problem, normalizeProblem(parse(t, problem), domain.ProblemRequest{}))

	competitors := fallbackCompetitors(domain.CompetitorRequest{ProblemTitle: "x", ProblemCategory: "Health"})
	assert.Equal(t, competitors, normalizeCompetitors(parse(t, competitors), domain.CompetitorRequest{}))

	model := fallbackBusinessModel(domain.BusinessModelRequest{ProblemTitle: "p", SolutionTitle: "s"})
	assert.Equal(t, model, normalizeBusinessModel(parse(t, model), domain.BusinessModelRequest{}))

	pitch := fallbackPitch(domain.PitchRequest{ProjectName: "FixMyRoad", TeamMembers: []string{"Asha"}})
	assert.Equal(t, pitch, normalizePitch(parse(t, pitch), domain.PitchRequest{ProjectName: "FixMyRoad"}))

	entity := fallbackEntity(domain.EntityRequest{BusinessType: "edtech", Founders: 2, FundingPlans: "bootstrap"})
	assert.Equal(t, entity, normalizeEntity(parse(t, entity), domain.EntityRequest{}))

	pricing := fallbackPricing(domain.PricingRequest{EntityType: "llp", State: "delhi"})
	assert.Equal(t, pricing, normalizePricing(parse(t, pricing), domain.PricingRequest{}))
}

func TestNormalize_DefaultsOnlyTheMissingField(t *testing.T) {
	f := fields{"problems": []any{
		map[string]any{
			"id":          "p9",
			"title":       "Broken bench",
			"description": "Seat is missing",
			"category":    "Infrastructure",
			"confidence":  0.5,
			"solutions":   []any{"Replace"},
		},
		map[string]any{},
	}}

	got := normalizeImage(f, domain.ImageRequest{})

	require.Len(t, got.Problems, 2)
	assert.Equal(t, domain.DetectedProblem{
		ID:          "p9",
		Title:       "Broken bench",
		Description: "Seat is missing",
		Severity:    "medium",
		Category:    "Infrastructure",
		Confidence:  0.5,
		Solutions:   []string{"Replace"},
	}, got.Problems[0])
	assert.Equal(t, domain.DetectedProblem{
		ID:          "problem_2",
		Title:       "Untitled Problem",
		Description: "No description provided",
		Severity:    "medium",
		Category:    "General",
		Confidence:  0.8,
		Solutions:   []string{},
	}, got.Problems[1])
	assert.Equal(t, "Analysis completed", got.Summary)
}

func TestNormalize_EmptyObjectKeepsShape(t *testing.T) {
	b, err := json.Marshal(normalizeCompetitors(fields{}, domain.CompetitorRequest{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"competitors": [],
		"marketAnalysis": {"marketSize":"Unknown","growthRate":"Unknown","keyTrends":[],"barriers":[],"threats":[]},
		"opportunities": []
	}`, string(b))

	b, err = json.Marshal(normalizeBusinessModel(fields{}, domain.BusinessModelRequest{}))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "null")

	b, err = json.Marshal(normalizePricing(fields{"providers": []any{map[string]any{}}}, domain.PricingRequest{}))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "null")
}
