// Package billing sells subscription plans through the payment gateway.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/application"
	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/billing"
)

// Checkout is returned to the client to open the payment widget.
type Checkout struct {
	Order        domain.Order         `json:"order"`
	Plan         domain.Plan          `json:"plan"`
	Subscription *domain.Subscription `json:"subscription"`
}

// Status is the caller's current subscription view.
type Status struct {
	Active       bool                 `json:"active"`
	Subscription *domain.Subscription `json:"subscription"`
}

type Service struct {
	subs     domain.SubscriptionRepository
	payments domain.PaymentRepository
	gateway  domain.Gateway
	clock    application.Clock
	log      *zap.Logger
}

func NewService(subs domain.SubscriptionRepository, payments domain.PaymentRepository, gateway domain.Gateway, clock application.Clock, logger *zap.Logger) *Service {
	return &Service{subs: subs, payments: payments, gateway: gateway, clock: clock, log: logger.Named("billing")}
}

func (s *Service) Plans() []domain.Plan { return domain.Plans() }

// Checkout opens a pending subscription and a gateway order for planID.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, planID string) (*Checkout, error) {
	plan, ok := domain.FindPlan(planID)
	if !ok {
		return nil, apperr.Validation("Unknown plan")
	}
	active, err := s.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, apperr.New(apperr.ErrConflict, "Subscription is already active")
	}

	now := s.clock.Now().UTC()
	sub := &domain.Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    domain.SubscriptionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	order, err := s.gateway.CreateOrder(ctx, plan.Amount, plan.Currency, sub.ID.String())
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	pay := &domain.Payment{
		ID:             uuid.New(),
		UserID:         userID,
		SubscriptionID: sub.ID,
		OrderID:        order.ID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		Status:         domain.PaymentCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.payments.Create(ctx, pay); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.Info("checkout opened",
		zap.String("user_id", userID.String()),
		zap.String("plan", plan.ID),
		zap.String("order_id", order.ID),
	)
	return &Checkout{Order: order, Plan: plan, Subscription: sub}, nil
}

// Verify checks the gateway signature for orderID and activates the
// subscription. Verifying an already paid order returns the subscription
// unchanged.
func (s *Service) Verify(ctx context.Context, userID uuid.UUID, orderID, paymentID, signature string) (*domain.Subscription, error) {
	pay, err := s.payments.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if pay.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	sub, err := s.subs.Get(ctx, pay.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if pay.Status == domain.PaymentPaid {
		return sub, nil
	}

	now := s.clock.Now().UTC()
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		pay.Status = domain.PaymentFailed
		pay.PaymentRef = paymentID
		pay.UpdatedAt = now
		if err := s.payments.Update(ctx, pay); err != nil {
			s.log.Warn("mark payment failed", zap.String("order_id", orderID), zap.Error(err))
		}
		s.log.Warn("payment signature rejected", zap.String("order_id", orderID))
		return nil, apperr.Validation("Invalid payment signature")
	}

	plan, ok := domain.FindPlan(sub.PlanID)
	if !ok {
		return nil, fmt.Errorf("subscription %s references unknown plan %q", sub.ID, sub.PlanID)
	}

	pay.Status = domain.PaymentPaid
	pay.PaymentRef = paymentID
	pay.UpdatedAt = now
	if err := s.payments.Update(ctx, pay); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	ends := now.Add(plan.Duration)
	sub.Status = domain.SubscriptionActive
	sub.StartsAt = &now
	sub.EndsAt = &ends
	sub.UpdatedAt = now
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("activate subscription: %w", err)
	}

	s.log.Info("subscription activated",
		zap.String("user_id", userID.String()),
		zap.String("subscription_id", sub.ID.String()),
		zap.Time("ends_at", ends),
	)
	return sub, nil
}

// Current returns the running subscription when there is one. Otherwise it
// returns the latest subscription, expiring it first when its period is over.
// A newer pending checkout never hides a paid one.
func (s *Service) Current(ctx context.Context, userID uuid.UUID) (Status, error) {
	now := s.clock.Now().UTC()
	sub, err := s.subs.ActiveFor(ctx, userID, now)
	switch {
	case err == nil:
		return Status{Active: true, Subscription: sub}, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return Status{}, fmt.Errorf("active subscription: %w", err)
	}

	sub, err = s.subs.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Status{}, nil
		}
		return Status{}, fmt.Errorf("latest subscription: %w", err)
	}
	if sub.Status == domain.SubscriptionActive && !sub.ActiveAt(now) {
		sub.Status = domain.SubscriptionExpired
		sub.UpdatedAt = now
		if err := s.subs.Update(ctx, sub); err != nil {
			s.log.Warn("expire subscription", zap.String("subscription_id", sub.ID.String()), zap.Error(err))
		}
	}
	return Status{Active: sub.ActiveAt(now), Subscription: sub}, nil
}

// Active reports whether userID currently has a paid subscription.
func (s *Service) Active(ctx context.Context, userID uuid.UUID) (bool, error) {
	st, err := s.Current(ctx, userID)
	if err != nil {
		return false, err
	}
	return st.Active, nil
}

// Cancel stops the active subscription immediately.
func (s *Service) Cancel(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	st, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !st.Active {
		return nil, apperr.New(apperr.ErrNotFound, "No active subscription")
	}

	now := s.clock.Now().UTC()
	sub := st.Subscription
	sub.Status = domain.SubscriptionCancelled
	sub.CancelledAt = &now
	sub.UpdatedAt = now
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("cancel subscription: %w", err)
	}
	s.log.Info("subscription cancelled", zap.String("subscription_id", sub.ID.String()))
	return sub, nil
}

func (s *Service) Payments(ctx context.Context, userID uuid.UUID) ([]*domain.Payment, error) {
	list, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if list == nil {
		list = []*domain.Payment{}
	}
	return list, nil
}
