package projects

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status of a project. Projects are archived, never deleted.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Stage tracks how far the student got through the ideation flow.
type Stage string

const (
	StageProblem       Stage = "problem"
	StageAnalysis      Stage = "analysis"
	StageSolution      Stage = "solution"
	StageBusinessModel Stage = "business_model"
	StageEntity        Stage = "entity"
	StageCompetitors   Stage = "competitors"
	StageTeam          Stage = "team"
	StagePitch         Stage = "pitch"
)

// ValidStage reports whether s is a known stage.
func ValidStage(s Stage) bool {
	switch s {
	case StageProblem, StageAnalysis, StageSolution, StageBusinessModel,
		StageEntity, StageCompetitors, StageTeam, StagePitch:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stage       Stage     `json:"stage"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Section is one named JSON document attached to a project (e.g. the
// latest competitor analysis). Writes are upserts keyed by (project, section).
type Section struct {
	ProjectID uuid.UUID       `json:"projectId"`
	Name      string          `json:"section"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
