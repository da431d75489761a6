package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/domain/projects"
)

// DocumentStore keeps binary artifacts (uploaded images, rendered pitch
// documents) and returns a URL for them.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service exposes one method per capability. Every method takes the
// caller's user id, uuid.Nil for anonymous callers.
type Service struct {
	engine   *Engine
	runs     domain.RunRepository
	projects projects.Repository
	data     projects.DataRepository
	store    DocumentStore
	log      *zap.Logger

	image         *Pipeline[domain.ImageRequest, domain.ImageResult]
	problem       *Pipeline[domain.ProblemRequest, domain.ProblemResult]
	competitors   *Pipeline[domain.CompetitorRequest, domain.CompetitorResult]
	businessModel *Pipeline[domain.BusinessModelRequest, domain.BusinessModelResult]
	pitch         *Pipeline[domain.PitchRequest, domain.PitchResult]
	entity        *Pipeline[domain.EntityRequest, domain.EntityResult]
	pricing       *Pipeline[domain.PricingRequest, domain.PricingResult]
}

// NewService wires the pipelines. runs, projects, data and store may be
// nil; the corresponding side effect is then skipped.
func NewService(e *Engine, runs domain.RunRepository, pr projects.Repository, data projects.DataRepository, store DocumentStore) *Service {
	return &Service{
		engine:   e,
		runs:     runs,
		projects: pr,
		data:     data,
		store:    store,
		log:      e.Logger.Named("analysis"),

		image:         NewPipeline(e, ImageSpec()),
		problem:       NewPipeline(e, ProblemSpec()),
		competitors:   NewPipeline(e, CompetitorSpec()),
		businessModel: NewPipeline(e, BusinessModelSpec()),
		pitch:         NewPipeline(e, PitchSpec()),
		entity:        NewPipeline(e, EntitySpec()),
		pricing:       NewPipeline(e, PricingSpec()),
	}
}

func (s *Service) AnalyzeImage(ctx context.Context, userID uuid.UUID, req domain.ImageRequest) (domain.Envelope[domain.ImageResult], error) {
	env, err := s.image.Run(ctx, req)
	if err != nil {
		return env, err
	}
	if s.store != nil {
		if img, derr := ai.DecodeDataURI(req.ImageData); derr == nil {
			key := fmt.Sprintf("images/%s%s", uuid.NewString(), img.Ext())
			if url, perr := s.store.Put(ctx, key, img.Data, img.MIMEType); perr != nil {
				s.log.Warn("store image", zap.Error(perr))
			} else {
				env.Result.ImageURL = url
			}
		}
	}
	s.record(ctx, userID, req.ProjectID, domain.CapabilityImage, env.AIModel, env.AnalysisTime, env.Result)
	return env, nil
}

func (s *Service) AnalyzeProblem(ctx context.Context, userID uuid.UUID, req domain.ProblemRequest) (domain.Envelope[domain.ProblemResult], error) {
	env, err := s.problem.Run(ctx, req)
	if err != nil {
		return env, err
	}
	s.record(ctx, userID, req.ProjectID, domain.CapabilityProblem, env.AIModel, env.AnalysisTime, env.Result)
	return env, nil
}

func (s *Service) AnalyzeCompetitors(ctx context.Context, userID uuid.UUID, req domain.CompetitorRequest) (domain.Envelope[domain.CompetitorResult], error) {
	env, err := s.competitors.Run(ctx, req)
	if err != nil {
		return env, err
	}
	s.record(ctx, userID, req.ProjectID, domain.CapabilityCompetitors, env.AIModel, env.AnalysisTime, env.Result)
	return env, nil
}

func (s *Service) GenerateBusinessModel(ctx context.Context, userID uuid.UUID, req domain.BusinessModelRequest) (domain.Envelope[domain.BusinessModelResult], error) {
	env, err := s.businessModel.Run(ctx, req)
	if err != nil {
		return env, err
	}
	s.record(ctx, userID, req.ProjectID, domain.CapabilityBusinessModel, env.AIModel, env.AnalysisTime, env.Result)
	return env, nil
}

func (s *Service) GeneratePitch(ctx context.Context, userID uuid.UUID, req domain.PitchRequest) (domain.Envelope[domain.PitchResult], error) {
	env, err := s.pitch.Run(ctx, req)
	if err != nil {
		return env, err
	}
	if s.store != nil {
		key := fmt.Sprintf("pitches/%s.md", uuid.NewString())
		if url, perr := s.store.Put(ctx, key, PitchMarkdown(env.Result.Pitch), "text/markdown; charset=utf-8"); perr != nil {
			s.log.Warn("store pitch document", zap.Error(perr))
		} else {
			env.Result.DocumentURL = url
		}
	}
	s.record(ctx, userID, req.ProjectID, domain.CapabilityPitch, env.AIModel, env.AnalysisTime, env.Result)
	return env, nil
}

func (s *Service) AnalyzeBusinessEntity(ctx context.Context, userID uuid.UUID, req domain.EntityRequest) (domain.Envelope[domain.EntityResult], error) {
	env, err := s.entity.Run(ctx, req)
	if err != nil {
		return env, err
	}
	s.record(ctx, userID, req.ProjectID, domain.CapabilityEntity, env.AIModel, env.AnalysisTime, env.Result)
	return env, nil
}

func (s *Service) ProviderPricing(ctx context.Context, userID uuid.UUID, req domain.PricingRequest) (domain.Envelope[domain.PricingResult], error) {
	env, err := s.pricing.Run(ctx, req)
	if err != nil {
		return env, err
	}
	s.record(ctx, userID, req.ProjectID, domain.CapabilityPricing, env.AIModel, env.AnalysisTime, env.Result)
	return env, nil
}

// History pages through the caller's analysis runs, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, page, pageSize int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	out := domain.Page{Data: []*domain.Run{}, Page: page, PageSize: pageSize}
	if s.runs == nil {
		return out, nil
	}
	runs, err := s.runs.Paginate(ctx, userID, page, pageSize)
	if err != nil {
		return out, fmt.Errorf("list analysis runs: %w", err)
	}
	if runs != nil {
		out.Data = runs
	}
	return out, nil
}

// record writes the audit row and, when the caller owns the referenced
// project, the project's section document. Failures are only logged.
func (s *Service) record(ctx context.Context, userID uuid.UUID, projectRef string, capability domain.Capability, model string, elapsed int64, result any) {
	body, err := json.Marshal(result)
	if err != nil {
		s.log.Error("marshal analysis result", zap.String("capability", string(capability)), zap.Error(err))
		return
	}
	now := s.engine.Clock.Now().UTC()

	var projectID *uuid.UUID
	if id, ok := s.ownedProject(ctx, userID, projectRef); ok {
		projectID = &id
		if s.data != nil {
			sec := &projects.Section{ProjectID: id, Name: string(capability), Data: body, UpdatedAt: now}
			if err := s.data.Upsert(ctx, sec); err != nil {
				s.log.Warn("save project section", zap.String("project_id", id.String()), zap.Error(err))
			}
		}
	}

	if s.runs == nil {
		return
	}
	run := &domain.Run{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Capability: capability,
		AIModel:    model,
		Fallback:   model == domain.FallbackModel,
		DurationMS: elapsed,
		Result:     string(body),
		CreatedAt:  now,
	}
	if userID != uuid.Nil {
		uid := userID
		run.UserID = &uid
	}
	if err := s.runs.Save(ctx, run); err != nil {
		s.log.Warn("save analysis run", zap.String("capability", string(capability)), zap.Error(err))
	}
}

func (s *Service) ownedProject(ctx context.Context, userID uuid.UUID, ref string) (uuid.UUID, bool) {
	if ref == "" || userID == uuid.Nil || s.projects == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, false
	}
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.log.Warn("load project", zap.String("project_id", ref), zap.Error(err))
		}
		return uuid.Nil, false
	}
	if p.UserID != userID || p.Status != projects.StatusActive {
		return uuid.Nil, false
	}
	return id, true
}
