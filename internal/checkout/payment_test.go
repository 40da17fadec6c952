package checkout

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedPayment_ReturnsTransactionID(t *testing.T) {
	p := NewSimulatedPayment(0)

	id, err := p.Charge(context.Background(), "u1", 100000)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "TXN-"))
}

func TestSimulatedPayment_CancelledContext(t *testing.T) {
	p := NewSimulatedPayment(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	id, err := p.Charge(ctx, "u1", 100000)

	assert.Empty(t, id)
	assert.ErrorIs(t, err, context.Canceled)
}
