package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/domain/billing"
	"github.com/bryanwahyu/venture-studio/internal/domain/projects"
	"github.com/bryanwahyu/venture-studio/internal/domain/users"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestUserRepository_UniqueViolationIsConflict(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, name, email, password_hash, created_at, updated_at)\nVALUES ($1,$2,$3,$4,$5,$6)")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := NewUserRepository(db).Create(context.Background(), &users.User{ID: uuid.New(), Email: "a@b.c"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSubscriptionRepository_Latest(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()
	now := time.Now().UTC()
	ends := now.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subscriptions WHERE user_id=$1")).
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "plan_id", "status", "starts_at", "ends_at", "cancelled_at", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), user.String(), "student-monthly", "active", now, ends, nil, now, now))

	s, err := NewSubscriptionRepository(db).Latest(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, billing.SubscriptionActive, s.Status)
	require.NotNil(t, s.EndsAt)
	assert.Nil(t, s.CancelledAt)
	assert.True(t, s.ActiveAt(now))
}

func TestSubscriptionRepository_LatestNone(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM subscriptions").WillReturnError(sql.ErrNoRows)

	_, err := NewSubscriptionRepository(db).Latest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubscriptionRepository_ActiveFor(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()
	now := time.Now().UTC()
	ends := now.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id=$1 AND status='active' AND (ends_at IS NULL OR ends_at > $2)\nORDER BY ends_at DESC")).
		WithArgs(user, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "plan_id", "status", "starts_at", "ends_at", "cancelled_at", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), user.String(), "student-yearly", "active", now, ends, nil, now, now))

	s, err := NewSubscriptionRepository(db).ActiveFor(context.Background(), user, now)
	require.NoError(t, err)
	assert.Equal(t, "student-yearly", s.PlanID)
	assert.True(t, s.ActiveAt(now))
}

func TestPaymentRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	p := &billing.Payment{ID: uuid.New(), PaymentRef: "pay_1", Status: billing.PaymentPaid}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET payment_ref=$1, status=$2, updated_at=$3\nWHERE id=$4")).
		WithArgs("pay_1", "paid", sqlmock.AnyArg(), p.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPaymentRepository(db).Update(context.Background(), p))
}

func TestProjectDataRepository_UpsertCastsJSONB(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("VALUES ($1,$2,$3::jsonb,$4)\nON CONFLICT (project_id, section) DO UPDATE SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewProjectDataRepository(db).Upsert(context.Background(), projectsSection())
	require.NoError(t, err)
}

func projectsSection() *projects.Section {
	return &projects.Section{ProjectID: uuid.New(), Name: "business_model"}
}
