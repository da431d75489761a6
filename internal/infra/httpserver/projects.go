package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	appprojects "github.com/bryanwahyu/venture-studio/internal/application/projects"
	"github.com/bryanwahyu/venture-studio/internal/domain/projects"
	"github.com/bryanwahyu/venture-studio/internal/middleware"
)

type createProjectBody struct {
	Name        string `json:"name" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	Stage       string `json:"stage" validate:"stage"`
}

type updateProjectBody struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Stage       *string `json:"stage" validate:"omitempty,stage"`
}

// GET /api/projects?includeArchived=true
func (r *Router) handleListProjects(w http.ResponseWriter, req *http.Request) error {
	includeArchived := req.URL.Query().Get("includeArchived") == "true"
	list, err := r.projects.List(req.Context(), middleware.UserID(req.Context()), includeArchived)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"projects": list})
}

// POST /api/projects
func (r *Router) handleCreateProject(w http.ResponseWriter, req *http.Request) error {
	var body createProjectBody
	if err := decode(w, req, &body); err != nil {
		return err
	}
	if err := middleware.Validate(body); err != nil {
		return err
	}
	p, err := r.projects.Create(req.Context(), middleware.UserID(req.Context()), appprojects.CreateCommand{
		Name:        body.Name,
		Description: body.Description,
		Stage:       projects.Stage(body.Stage),
	})
	if err != nil {
		return err
	}
	return respond(w, http.StatusCreated, map[string]any{"project": p})
}

// GET /api/projects/{id}
func (r *Router) handleGetProject(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	p, err := r.projects.Get(req.Context(), middleware.UserID(req.Context()), id)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"project": p})
}

// PUT /api/projects/{id}
func (r *Router) handleUpdateProject(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var body updateProjectBody
	if err := decode(w, req, &body); err != nil {
		return err
	}
	if err := middleware.Validate(body); err != nil {
		return err
	}

	cmd := appprojects.UpdateCommand{Name: body.Name, Description: body.Description}
	if body.Stage != nil {
		stage := projects.Stage(*body.Stage)
		cmd.Stage = &stage
	}
	p, err := r.projects.Update(req.Context(), middleware.UserID(req.Context()), id, cmd)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"project": p})
}

// DELETE /api/projects/{id}
// Projects are archived, not removed.
func (r *Router) handleArchiveProject(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	if err := r.projects.Archive(req.Context(), middleware.UserID(req.Context()), id); err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"success": true})
}

// GET /api/projects/{id}/data
func (r *Router) handleListSections(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	list, err := r.projects.Sections(req.Context(), middleware.UserID(req.Context()), id)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"sections": list})
}

// GET /api/projects/{id}/data/{section}
func (r *Router) handleGetSection(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	name := chi.URLParam(req, "section")
	if err := middleware.ValidateSection(name); err != nil {
		return err
	}
	sec, err := r.projects.Section(req.Context(), middleware.UserID(req.Context()), id, name)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"section": sec})
}

// PUT /api/projects/{id}/data/{section}
// Body: the section document itself (a JSON object or array).
func (r *Router) handlePutSection(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	name := chi.URLParam(req, "section")
	if err := middleware.ValidateSection(name); err != nil {
		return err
	}
	body, err := readBody(w, req)
	if err != nil {
		return err
	}
	sec, err := r.projects.PutSection(req.Context(), middleware.UserID(req.Context()), id, name, json.RawMessage(body))
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"section": sec})
}
