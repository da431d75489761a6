// Package payments is the local stand-in for the hosted checkout provider.
// Orders get locally generated ids; a payment is accepted when the client
// returns an HMAC-SHA256 signature of "orderId|paymentId" made with the
// shared key secret, the same scheme hosted gateways use for callbacks.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/venture-studio/internal/domain/billing"
)

type Gateway struct {
	secret []byte
}

func NewGateway(keySecret string) *Gateway {
	return &Gateway{secret: []byte(keySecret)}
}

func (g *Gateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (billing.Order, error) {
	if amount <= 0 {
		return billing.Order{}, errors.New("order amount must be positive")
	}
	return billing.Order{
		ID:       "order_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

// Sign computes the expected signature. Exposed for clients and tests that
// simulate the checkout callback.
func (g *Gateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	if len(g.secret) == 0 || orderID == "" || paymentID == "" {
		return false
	}
	want := g.Sign(orderID, paymentID)
	return hmac.Equal([]byte(want), []byte(strings.ToLower(strings.TrimSpace(signature))))
}
