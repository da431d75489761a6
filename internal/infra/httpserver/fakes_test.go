package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/domain/billing"
	"github.com/bryanwahyu/venture-studio/internal/domain/projects"
	"github.com/bryanwahyu/venture-studio/internal/domain/users"
)

// In-memory repositories shared by the router tests.

type memUsers struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*users.User
}

func (m *memUsers) Create(_ context.Context, u *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	m.rows[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		return u, nil
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memProjects struct {
	mu   sync.Mutex
	rows map[uuid.UUID]projects.Project
}

func (m *memProjects) Create(_ context.Context, p *projects.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.ID] = *p
	return nil
}

func (m *memProjects) Get(_ context.Context, id uuid.UUID) (*projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &p, nil
}

func (m *memProjects) ListByUser(_ context.Context, userID uuid.UUID, includeArchived bool) ([]*projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*projects.Project
	for _, p := range m.rows {
		if p.UserID == userID && (includeArchived || p.Status == projects.StatusActive) {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (m *memProjects) Update(_ context.Context, p *projects.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.ID] = *p
	return nil
}

type memSections struct {
	mu   sync.Mutex
	rows map[string]*projects.Section
}

func sectionKey(id uuid.UUID, name string) string { return id.String() + "/" + name }

func (m *memSections) Upsert(_ context.Context, s *projects.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[sectionKey(s.ProjectID, s.Name)] = s
	return nil
}

func (m *memSections) Get(_ context.Context, projectID uuid.UUID, name string) (*projects.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[sectionKey(projectID, name)]; ok {
		return s, nil
	}
	return nil, apperr.ErrNotFound
}

func (m *memSections) List(_ context.Context, projectID uuid.UUID) ([]*projects.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*projects.Section
	for _, s := range m.rows {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memSubs struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]billing.Subscription
	order []uuid.UUID
}

func (m *memSubs) Create(_ context.Context, s *billing.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.ID] = *s
	m.order = append(m.order, s.ID)
	return nil
}

func (m *memSubs) Get(_ context.Context, id uuid.UUID) (*billing.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &s, nil
}

func (m *memSubs) Latest(_ context.Context, userID uuid.UUID) (*billing.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.order) - 1; i >= 0; i-- {
		if s := m.rows[m.order[i]]; s.UserID == userID {
			return &s, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memSubs) ActiveFor(_ context.Context, userID uuid.UUID, now time.Time) (*billing.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *billing.Subscription
	for _, id := range m.order {
		s := m.rows[id]
		if s.UserID != userID || !s.ActiveAt(now) {
			continue
		}
		if best == nil || (s.EndsAt != nil && best.EndsAt != nil && s.EndsAt.After(*best.EndsAt)) {
			best = &s
		}
	}
	if best == nil {
		return nil, apperr.ErrNotFound
	}
	return best, nil
}

func (m *memSubs) Update(_ context.Context, s *billing.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.ID] = *s
	return nil
}

type memPayments struct {
	mu   sync.Mutex
	rows []billing.Payment
}

func (m *memPayments) Create(_ context.Context, p *billing.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, *p)
	return nil
}

func (m *memPayments) GetByOrder(_ context.Context, orderID string) (*billing.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.OrderID == orderID {
			return &p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memPayments) Update(_ context.Context, p *billing.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == p.ID {
			m.rows[i] = *p
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *memPayments) ListByUser(_ context.Context, userID uuid.UUID) ([]*billing.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*billing.Payment
	for _, p := range m.rows {
		if p.UserID == userID {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

type memRuns struct {
	mu   sync.Mutex
	rows []*domain.Run
}

func (m *memRuns) Save(_ context.Context, r *domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, r)
	return nil
}

func (m *memRuns) Paginate(_ context.Context, userID uuid.UUID, page, pageSize int) ([]*domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Run
	for i := len(m.rows) - 1; i >= 0; i-- {
		if r := m.rows[i]; r.UserID != nil && *r.UserID == userID {
			out = append(out, r)
		}
	}
	start := (page - 1) * pageSize
	if start >= len(out) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}
