// Package accounts implements signup, login and account management.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/application"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/domain/users"
)

var errBadCredentials = apperr.New(apperr.ErrUnauthorized, "Invalid email or password")

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, time.Time, error)
}

// Session is a freshly issued login.
type Session struct {
	User      *users.User
	Token     string
	ExpiresAt time.Time
}

type SignupCommand struct {
	Name     string
	Email    string
	Password string
}

type Service struct {
	users  users.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	clock  application.Clock
	log    *zap.Logger
}

func NewService(repo users.Repository, hasher PasswordHasher, tokens TokenIssuer, clock application.Clock, logger *zap.Logger) *Service {
	return &Service{users: repo, hasher: hasher, tokens: tokens, clock: clock, log: logger.Named("accounts")}
}

// Signup creates the account and logs it in. A taken email is ErrConflict.
func (s *Service) Signup(ctx context.Context, cmd SignupCommand) (*Session, error) {
	email := normalizeEmail(cmd.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.ErrConflict, "Email is already registered")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now().UTC()
	u := &users.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(cmd.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.New(apperr.ErrConflict, "Email is already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user signed up", zap.String("user_id", u.ID.String()))
	return s.issue(u)
}

// Login checks the credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, errBadCredentials
	}
	return s.issue(u)
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return s.users.GetByID(ctx, id)
}

// Delete removes the account and everything it owns.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *Service) issue(u *users.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
