package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_RememberAndLookup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	ctx := context.Background()

	_, found, err := store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Remember(ctx, "key-1", "payment-a", time.Minute))

	paymentID, found, err := store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "payment-a", paymentID)
}

func TestInMemoryIdempotencyStore_FirstPaymentWins(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "key-1", "payment-a", time.Minute))
	require.NoError(t, store.Remember(ctx, "key-1", "payment-b", time.Minute))

	paymentID, found, err := store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "payment-a", paymentID)
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	ctx := context.Background()

	require.NoError(t, store.Remember(ctx, "key-1", "payment-a", -time.Second))

	_, found, err := store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, found)

	// An expired key takes a new payment ID.
	require.NoError(t, store.Remember(ctx, "key-1", "payment-b", time.Minute))

	paymentID, found, err := store.Lookup(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "payment-b", paymentID)
}
