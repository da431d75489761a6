package billing

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus enum
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "created"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Subscription struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"userId"`
	PlanID      string             `json:"planId"`
	Status      SubscriptionStatus `json:"status"`
	StartsAt    *time.Time         `json:"startsAt,omitempty"`
	EndsAt      *time.Time         `json:"endsAt,omitempty"`
	CancelledAt *time.Time         `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ActiveAt reports whether the subscription grants access at t.
func (s *Subscription) ActiveAt(t time.Time) bool {
	if s == nil || s.Status != SubscriptionActive {
		return false
	}
	return s.EndsAt == nil || t.Before(*s.EndsAt)
}

// Payment is one checkout attempt. Amount is in minor units (paise/cents).
type Payment struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"userId"`
	SubscriptionID uuid.UUID     `json:"subscriptionId"`
	OrderID        string        `json:"orderId"`
	PaymentRef     string        `json:"paymentRef,omitempty"`
	Amount         int64         `json:"amount"`
	Currency       string        `json:"currency"`
	Status         PaymentStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
