package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, s *Subscription) error
	Get(ctx context.Context, id uuid.UUID) (*Subscription, error)
	// Latest returns the most recently created subscription of the user or
	// apperr.ErrNotFound.
	Latest(ctx context.Context, userID uuid.UUID) (*Subscription, error)
	// ActiveFor returns the active subscription of the user that is still
	// running at now, the one ending last first, or apperr.ErrNotFound.
	ActiveFor(ctx context.Context, userID uuid.UUID, now time.Time) (*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByOrder(ctx context.Context, orderID string) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Payment, error)
}

// Order is what the client needs to open the checkout widget.
type Order struct {
	ID       string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Gateway is the payment provider boundary.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}
