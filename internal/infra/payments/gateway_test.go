package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	g := NewGateway("secret")

	o, err := g.CreateOrder(context.Background(), 29900, "INR", "rcpt_1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(o.ID, "order_"))
	assert.Equal(t, int64(29900), o.Amount)

	_, err = g.CreateOrder(context.Background(), 0, "INR", "rcpt_2")
	assert.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	g := NewGateway("secret")
	sig := g.Sign("order_1", "pay_1")

	assert.True(t, g.VerifySignature("order_1", "pay_1", sig))
	assert.True(t, g.VerifySignature("order_1", "pay_1", strings.ToUpper(sig)))
	assert.False(t, g.VerifySignature("order_1", "pay_2", sig))
	assert.False(t, g.VerifySignature("order_1", "pay_1", "deadbeef"))
	assert.False(t, NewGateway("other").VerifySignature("order_1", "pay_1", sig))
	assert.False(t, NewGateway("").VerifySignature("order_1", "pay_1", NewGateway("").Sign("order_1", "pay_1")))
}
