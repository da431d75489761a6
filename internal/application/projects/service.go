// Package projects implements the per-user project workspace.
package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/application"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/projects"
)

type CreateCommand struct {
	Name        string
	Description string
	Stage       domain.Stage
}

// UpdateCommand changes only the non-nil fields.
type UpdateCommand struct {
	Name        *string
	Description *string
	Stage       *domain.Stage
}

type Service struct {
	projects domain.Repository
	data     domain.DataRepository
	clock    application.Clock
	log      *zap.Logger
}

func NewService(repo domain.Repository, data domain.DataRepository, clock application.Clock, logger *zap.Logger) *Service {
	return &Service{projects: repo, data: data, clock: clock, log: logger.Named("projects")}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*domain.Project, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperr.Validation("Project name is required")
	}
	stage := cmd.Stage
	if stage == "" {
		stage = domain.StageProblem
	}
	if !domain.ValidStage(stage) {
		return nil, apperr.Validation("Unknown project stage")
	}

	now := s.clock.Now().UTC()
	p := &domain.Project{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(cmd.Description),
		Stage:       stage,
		Status:      domain.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*domain.Project, error) {
	list, err := s.projects.ListByUser(ctx, userID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if list == nil {
		list = []*domain.Project{}
	}
	return list, nil
}

// Get returns the project if userID owns it. Someone else's project is
// reported as not found.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, cmd UpdateCommand) (*domain.Project, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.StatusArchived {
		return nil, apperr.New(apperr.ErrConflict, "Project is archived")
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, apperr.Validation("Project name is required")
		}
		p.Name = name
	}
	if cmd.Description != nil {
		p.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Stage != nil {
		if !domain.ValidStage(*cmd.Stage) {
			return nil, apperr.Validation("Unknown project stage")
		}
		p.Stage = *cmd.Stage
	}
	p.UpdatedAt = s.clock.Now().UTC()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// Archive hides the project from default listings. Archiving twice is a
// no-op.
func (s *Service) Archive(ctx context.Context, userID, id uuid.UUID) error {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if p.Status == domain.StatusArchived {
		return nil
	}
	p.Status = domain.StatusArchived
	p.UpdatedAt = s.clock.Now().UTC()
	if err := s.projects.Update(ctx, p); err != nil {
		return fmt.Errorf("archive project: %w", err)
	}
	s.log.Info("project archived", zap.String("project_id", id.String()))
	return nil
}

func (s *Service) Sections(ctx context.Context, userID, id uuid.UUID) ([]*domain.Section, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	list, err := s.data.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	if list == nil {
		list = []*domain.Section{}
	}
	return list, nil
}

func (s *Service) Section(ctx context.Context, userID, id uuid.UUID, name string) (*domain.Section, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.data.Get(ctx, id, name)
}

// PutSection replaces one section document. data must be a JSON object or
// array.
func (s *Service) PutSection(ctx context.Context, userID, id uuid.UUID, name string, data json.RawMessage) (*domain.Section, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.StatusArchived {
		return nil, apperr.New(apperr.ErrConflict, "Project is archived")
	}
	trimmed := strings.TrimSpace(string(data))
	if !json.Valid(data) || (!strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[")) {
		return nil, apperr.Validation("Section data must be a JSON object or array")
	}

	sec := &domain.Section{
		ProjectID: id,
		Name:      name,
		Data:      json.RawMessage(trimmed),
		UpdatedAt: s.clock.Now().UTC(),
	}
	if err := s.data.Upsert(ctx, sec); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("save section: %w", err)
	}
	return sec, nil
}
