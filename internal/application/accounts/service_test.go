package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bryanwahyu/venture-studio/internal/application"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/domain/users"
	"github.com/bryanwahyu/venture-studio/internal/infra/auth"
)

type memUsers struct {
	byID map[uuid.UUID]*users.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uuid.UUID]*users.User{}} }

func (m *memUsers) Create(_ context.Context, u *users.User) error {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func newService(repo users.Repository) (*Service, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewService(repo, auth.Hasher{Cost: bcrypt.MinCost}, tokens, application.SystemClock{}, zap.NewNop()), tokens
}

func TestSignupThenLogin(t *testing.T) {
	repo := newMemUsers()
	svc, tokens := newService(repo)
	ctx := context.Background()

	sess, err := svc.Signup(ctx, SignupCommand{Name: " Asha ", Email: "Asha@Example.com ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", sess.User.Name)
	assert.Equal(t, "asha@example.com", sess.User.Email)
	assert.NotEqual(t, "correct horse", sess.User.PasswordHash)

	id, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, id)

	again, err := svc.Login(ctx, "ASHA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, again.User.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newService(newMemUsers())
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupCommand{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupCommand{Name: "B", Email: "A@example.com", Password: "password2"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "Email is already registered", apperr.Message(err))
}

func TestLoginRejects(t *testing.T) {
	svc, _ := newService(newMemUsers())
	ctx := context.Background()
	_, err := svc.Signup(ctx, SignupCommand{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", apperr.Message(err))
}

func TestDelete(t *testing.T) {
	repo := newMemUsers()
	svc, _ := newService(repo)
	ctx := context.Background()
	sess, err := svc.Signup(ctx, SignupCommand{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sess.User.ID))
	_, err = svc.Me(ctx, sess.User.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, sess.User.ID), apperr.ErrNotFound)
}
