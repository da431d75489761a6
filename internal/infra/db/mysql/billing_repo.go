package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/venture-studio/internal/domain/billing"
)

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, plan_id, status, starts_at, ends_at, cancelled_at, created_at, updated_at`

func (r *SubscriptionRepository) Create(ctx context.Context, s *billing.Subscription) error {
	const q = `
INSERT INTO subscriptions (` + subscriptionColumns + `)
VALUES (?,?,?,?,?,?,?,?,?);
`
	s.CreatedAt = nowIfZero(s.CreatedAt)
	s.UpdatedAt = nowIfZero(s.UpdatedAt)
	_, err := r.db.ExecContext(ctx, q, s.ID, s.UserID, s.PlanID, string(s.Status),
		nullTime(s.StartsAt), nullTime(s.EndsAt), nullTime(s.CancelledAt), s.CreatedAt, s.UpdatedAt)
	return mapErr("create subscription", err)
}

func (r *SubscriptionRepository) Get(ctx context.Context, id uuid.UUID) (*billing.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id=?;`
	s, err := scanSubscription(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapErr("get subscription", err)
	}
	return s, nil
}

func (r *SubscriptionRepository) Latest(ctx context.Context, userID uuid.UUID) (*billing.Subscription, error) {
	const q = `
SELECT ` + subscriptionColumns + `
FROM subscriptions WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT 1;
`
	s, err := scanSubscription(r.db.QueryRowContext(ctx, q, userID))
	if err != nil {
		return nil, mapErr("latest subscription", err)
	}
	return s, nil
}

func (r *SubscriptionRepository) ActiveFor(ctx context.Context, userID uuid.UUID, now time.Time) (*billing.Subscription, error) {
	const q = `
SELECT ` + subscriptionColumns + `
FROM subscriptions
WHERE user_id=? AND status='active' AND (ends_at IS NULL OR ends_at > ?)
ORDER BY ends_at DESC, created_at DESC
LIMIT 1;
`
	s, err := scanSubscription(r.db.QueryRowContext(ctx, q, userID, now))
	if err != nil {
		return nil, mapErr("active subscription", err)
	}
	return s, nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *billing.Subscription) error {
	const q = `
UPDATE subscriptions SET plan_id=?, status=?, starts_at=?, ends_at=?, cancelled_at=?, updated_at=?
WHERE id=?;
`
	s.UpdatedAt = nowIfZero(s.UpdatedAt)
	res, err := r.db.ExecContext(ctx, q, s.PlanID, string(s.Status),
		nullTime(s.StartsAt), nullTime(s.EndsAt), nullTime(s.CancelledAt), s.UpdatedAt, s.ID)
	if err != nil {
		return mapErr("update subscription", err)
	}
	return expectOne("update subscription", res)
}

func scanSubscription(row rowScanner) (*billing.Subscription, error) {
	var s billing.Subscription
	var status string
	var starts, ends, cancelled sql.NullTime
	if err := row.Scan(&s.ID, &s.UserID, &s.PlanID, &status, &starts, &ends, &cancelled, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = billing.SubscriptionStatus(status)
	s.StartsAt, s.EndsAt, s.CancelledAt = timePtr(starts), timePtr(ends), timePtr(cancelled)
	return &s, nil
}

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, user_id, subscription_id, order_id, payment_ref, amount, currency, status, created_at, updated_at`

func (r *PaymentRepository) Create(ctx context.Context, p *billing.Payment) error {
	const q = `
INSERT INTO payments (` + paymentColumns + `)
VALUES (?,?,?,?,?,?,?,?,?,?);
`
	p.CreatedAt = nowIfZero(p.CreatedAt)
	p.UpdatedAt = nowIfZero(p.UpdatedAt)
	_, err := r.db.ExecContext(ctx, q, p.ID, p.UserID, p.SubscriptionID, p.OrderID, p.PaymentRef,
		p.Amount, p.Currency, string(p.Status), p.CreatedAt, p.UpdatedAt)
	return mapErr("create payment", err)
}

func (r *PaymentRepository) GetByOrder(ctx context.Context, orderID string) (*billing.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=?;`
	p, err := scanPayment(r.db.QueryRowContext(ctx, q, orderID))
	if err != nil {
		return nil, mapErr("get payment", err)
	}
	return p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *billing.Payment) error {
	const q = `
UPDATE payments SET payment_ref=?, status=?, updated_at=?
WHERE id=?;
`
	p.UpdatedAt = nowIfZero(p.UpdatedAt)
	res, err := r.db.ExecContext(ctx, q, p.PaymentRef, string(p.Status), p.UpdatedAt, p.ID)
	if err != nil {
		return mapErr("update payment", err)
	}
	return expectOne("update payment", res)
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*billing.Payment, error) {
	const q = `
SELECT ` + paymentColumns + `
FROM payments WHERE user_id=?
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, mapErr("list payments", err)
	}
	defer rows.Close()

	out := []*billing.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, mapErr("scan payment", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(row rowScanner) (*billing.Payment, error) {
	var p billing.Payment
	var status string
	if err := row.Scan(&p.ID, &p.UserID, &p.SubscriptionID, &p.OrderID, &p.PaymentRef,
		&p.Amount, &p.Currency, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = billing.PaymentStatus(status)
	return &p, nil
}
