package projects

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/application"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/projects"
)

type memRepo struct {
	byID     map[uuid.UUID]*domain.Project
	sections map[uuid.UUID]map[string]*domain.Section
}

func newMemRepo() *memRepo {
	return &memRepo{
		byID:     map[uuid.UUID]*domain.Project{},
		sections: map[uuid.UUID]map[string]*domain.Section{},
	}
}

func (m *memRepo) Create(_ context.Context, p *domain.Project) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memRepo) Get(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID uuid.UUID, includeArchived bool) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range m.byID {
		if p.UserID != userID || (!includeArchived && p.Status != domain.StatusActive) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := m.byID[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memRepo) Upsert(_ context.Context, s *domain.Section) error {
	if m.sections[s.ProjectID] == nil {
		m.sections[s.ProjectID] = map[string]*domain.Section{}
	}
	m.sections[s.ProjectID][s.Name] = s
	return nil
}

func (m *memRepo) section(projectID uuid.UUID, name string) (*domain.Section, bool) {
	s, ok := m.sections[projectID][name]
	return s, ok
}

type memData struct{ *memRepo }

func (m memData) Get(_ context.Context, projectID uuid.UUID, name string) (*domain.Section, error) {
	s, ok := m.section(projectID, name)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return s, nil
}

func (m memData) List(_ context.Context, projectID uuid.UUID) ([]*domain.Section, error) {
	var out []*domain.Section
	for _, s := range m.sections[projectID] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func newService() *Service {
	repo := newMemRepo()
	return NewService(repo, memData{repo}, application.SystemClock{}, zap.NewNop())
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, CreateCommand{Name: "  Clean Water  "})
	require.NoError(t, err)
	assert.Equal(t, "Clean Water", p.Name)
	assert.Equal(t, domain.StageProblem, p.Stage)
	assert.Equal(t, domain.StatusActive, p.Status)

	_, err = svc.Create(ctx, owner, CreateCommand{Name: " "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Project name is required", apperr.Message(err))

	_, err = svc.Create(ctx, owner, CreateCommand{Name: "X", Stage: "launch"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestOwnershipIsolation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()

	p, err := svc.Create(ctx, owner, CreateCommand{Name: "Mine"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	name := "Hijacked"
	_, err = svc.Update(ctx, stranger, p.ID, UpdateCommand{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Archive(ctx, stranger, p.ID), apperr.ErrNotFound)

	_, err = svc.PutSection(ctx, stranger, p.ID, "notes", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := svc.List(ctx, stranger, true)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateAndArchive(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	owner := uuid.New()
	p, err := svc.Create(ctx, owner, CreateCommand{Name: "Idea"})
	require.NoError(t, err)

	stage := domain.StagePitch
	updated, err := svc.Update(ctx, owner, p.ID, UpdateCommand{Stage: &stage})
	require.NoError(t, err)
	assert.Equal(t, domain.StagePitch, updated.Stage)
	assert.Equal(t, "Idea", updated.Name)

	require.NoError(t, svc.Archive(ctx, owner, p.ID))
	require.NoError(t, svc.Archive(ctx, owner, p.ID))

	active, err := svc.List(ctx, owner, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := svc.List(ctx, owner, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.StatusArchived, all[0].Status)

	_, err = svc.Update(ctx, owner, p.ID, UpdateCommand{Stage: &stage})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSections(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	owner := uuid.New()
	p, err := svc.Create(ctx, owner, CreateCommand{Name: "Idea"})
	require.NoError(t, err)

	_, err = svc.PutSection(ctx, owner, p.ID, "team", json.RawMessage(`"just a string"`))
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.PutSection(ctx, owner, p.ID, "team", json.RawMessage(`{broken`))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.PutSection(ctx, owner, p.ID, "team", json.RawMessage(` {"members":["Asha"]} `))
	require.NoError(t, err)
	_, err = svc.PutSection(ctx, owner, p.ID, "team", json.RawMessage(`{"members":["Asha","Ravi"]}`))
	require.NoError(t, err)

	sec, err := svc.Section(ctx, owner, p.ID, "team")
	require.NoError(t, err)
	assert.JSONEq(t, `{"members":["Asha","Ravi"]}`, string(sec.Data))

	list, err := svc.Sections(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Section(ctx, owner, p.ID, "pitch")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
