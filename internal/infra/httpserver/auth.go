package httpserver

import (
	"net/http"

	appaccounts "github.com/bryanwahyu/venture-studio/internal/application/accounts"
	"github.com/bryanwahyu/venture-studio/internal/middleware"
)

type signupBody struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginBody struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/signup
func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) error {
	var body signupBody
	if err := decode(w, req, &body); err != nil {
		return err
	}
	if err := middleware.Validate(body); err != nil {
		return err
	}

	sess, err := r.accounts.Signup(req.Context(), appaccounts.SignupCommand{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return err
	}
	r.setSession(w, sess.Token, sess.ExpiresAt)
	return respond(w, http.StatusCreated, map[string]any{"user": sess.User})
}

// POST /api/auth/login
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body loginBody
	if err := decode(w, req, &body); err != nil {
		return err
	}
	if err := middleware.Validate(body); err != nil {
		return err
	}

	sess, err := r.accounts.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	r.setSession(w, sess.Token, sess.ExpiresAt)
	return respond(w, http.StatusOK, map[string]any{"user": sess.User})
}

// POST /api/auth/logout
func (r *Router) handleLogout(w http.ResponseWriter, _ *http.Request) error {
	r.clearSession(w)
	return respond(w, http.StatusOK, map[string]any{"success": true})
}

// GET /api/auth/me
func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) error {
	u, _ := middleware.UserFromContext(req.Context())
	return respond(w, http.StatusOK, map[string]any{"user": u})
}

// DELETE /api/auth/me
// Removes the account with its projects, subscriptions and payments.
func (r *Router) handleDeleteMe(w http.ResponseWriter, req *http.Request) error {
	if err := r.accounts.Delete(req.Context(), middleware.UserID(req.Context())); err != nil {
		return err
	}
	r.clearSession(w)
	return respond(w, http.StatusOK, map[string]any{"success": true})
}
