package httpserver

import (
	"net/http"

	"github.com/bryanwahyu/venture-studio/internal/middleware"
)

type checkoutBody struct {
	PlanID string `json:"planId" validate:"required"`
}

type verifyBody struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// GET /api/billing/plans
func (r *Router) handlePlans(w http.ResponseWriter, _ *http.Request) error {
	return respond(w, http.StatusOK, map[string]any{"plans": r.billing.Plans()})
}

// POST /api/billing/checkout
func (r *Router) handleCheckout(w http.ResponseWriter, req *http.Request) error {
	var body checkoutBody
	if err := decode(w, req, &body); err != nil {
		return err
	}
	if err := middleware.Validate(body); err != nil {
		return err
	}
	co, err := r.billing.Checkout(req.Context(), middleware.UserID(req.Context()), body.PlanID)
	if err != nil {
		return err
	}
	return respond(w, http.StatusCreated, co)
}

// POST /api/billing/verify
// Body: {"orderId", "paymentId", "signature"} as returned by the checkout widget.
func (r *Router) handleVerify(w http.ResponseWriter, req *http.Request) error {
	var body verifyBody
	if err := decode(w, req, &body); err != nil {
		return err
	}
	if err := middleware.Validate(body); err != nil {
		return err
	}
	sub, err := r.billing.Verify(req.Context(), middleware.UserID(req.Context()), body.OrderID, body.PaymentID, body.Signature)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"active": true, "subscription": sub})
}

// GET /api/billing/subscription
func (r *Router) handleSubscription(w http.ResponseWriter, req *http.Request) error {
	st, err := r.billing.Current(req.Context(), middleware.UserID(req.Context()))
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, st)
}

// POST /api/billing/subscription/cancel
func (r *Router) handleCancel(w http.ResponseWriter, req *http.Request) error {
	sub, err := r.billing.Cancel(req.Context(), middleware.UserID(req.Context()))
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"subscription": sub})
}

// GET /api/billing/payments
func (r *Router) handlePayments(w http.ResponseWriter, req *http.Request) error {
	list, err := r.billing.Payments(req.Context(), middleware.UserID(req.Context()))
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, map[string]any{"payments": list})
}
