package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/chess_academy/internal/cache"
	"github.com/fjod/chess_academy/internal/cart"
	"github.com/fjod/chess_academy/internal/checkout"
	"github.com/fjod/chess_academy/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCart_ReturnsFullCart(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()

	_, res, err := env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))
	require.NoError(t, err)
	assert.Equal(t, cart.Added, res.Outcome)

	lines, _, err := env.svc.AddToCart(ctx, user.ID, aiLine("ai-trial", 0))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, testNow, lines[1].AddedAt)
}

func TestAddToCart_DuplicateAndOwned(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()
	_, _, err := env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))
	require.NoError(t, err)

	_, _, err = env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))
	assert.ErrorIs(t, err, cart.ErrAlreadyInCart)

	_, err = env.svc.Checkout(ctx, user.ID)
	require.NoError(t, err)

	_, _, err = env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))
	assert.ErrorIs(t, err, cart.ErrAlreadyOwned)
	assert.ErrorIs(t, err, domain.ErrValidation)

	lines, err := env.svc.Cart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAddToCart_AIReplacement(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()
	_, _, err := env.svc.AddToCart(ctx, user.ID, aiLine("ai-trial", 0))
	require.NoError(t, err)

	lines, res, err := env.svc.AddToCart(ctx, user.ID, aiLine("ai-premium", 145000))

	require.NoError(t, err)
	assert.Equal(t, cart.Replaced, res.Outcome)
	assert.Equal(t, domain.ItemID("ai-trial"), res.Replaced.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, domain.ItemID("ai-premium"), lines[0].ID)
}

func TestAddToCart_UnknownAIPackageIsRejected(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()

	_, _, err := env.svc.AddToCart(ctx, user.ID, aiLine("free-stuff", 0))

	assert.ErrorIs(t, err, checkout.ErrUnknownAIPackage)
	assert.ErrorIs(t, err, domain.ErrValidation)
	lines, err := env.svc.Cart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = env.svc.Checkout(ctx, user.ID)
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	sub, err := env.svc.Subscription(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, sub.HasAIAccess)
}

func TestAddToCart_AIPriceComesFromCatalog(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()

	lines, _, err := env.svc.AddToCart(ctx, user.ID, domain.CartLine{ID: "ai-premium", Price: 0, Kind: domain.KindAI})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(145000), lines[0].Price)
	assert.Equal(t, "AI Trainer - Premium", lines[0].Title)

	res, err := env.svc.Checkout(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(145000), res.Receipt.Total)
	assert.Equal(t, []int64{145000}, env.payment.charged)
}

func TestRemoveThenAddSameItem(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()
	_, _, err := env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))
	require.NoError(t, err)
	_, err = env.svc.RemoveFromCart(ctx, user.ID, domain.IntID(4))
	require.NoError(t, err)

	lines, res, err := env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))

	require.NoError(t, err)
	assert.Equal(t, cart.Added, res.Outcome)
	assert.Len(t, lines, 1)
}

func TestAddToCart_BookingGetsGeneratedID(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")

	lines, _, err := env.svc.AddToCart(context.Background(), user.ID, domain.CartLine{
		Title: "Session with IM David Chen", Price: 100000, Kind: domain.KindBooking,
	})

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0].ID.String(), "booking-"))
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()
	_, _, err := env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))
	require.NoError(t, err)

	lines, err := env.svc.RemoveFromCart(ctx, user.ID, "99")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	lines, err = env.svc.RemoveFromCart(ctx, user.ID, "4")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestClearCartAndSignOut(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()
	_, _, err := env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))
	require.NoError(t, err)

	require.NoError(t, env.svc.SignOut(ctx, user.ID))

	lines, err := env.svc.Cart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCart_ReadThroughRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	env := newTestEnv(t, nil, cache.NewRedisCache(client, time.Minute))
	user := env.signUp(t, "u1")
	ctx := context.Background()

	_, _, err := env.svc.AddToCart(ctx, user.ID, ebookLine(4, 100000))
	require.NoError(t, err)
	assert.False(t, mr.Exists("cart:u1"))

	lines, err := env.svc.Cart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, mr.Exists("cart:u1"))

	_, err = env.svc.RemoveFromCart(ctx, user.ID, "4")
	require.NoError(t, err)
	assert.False(t, mr.Exists("cart:u1"))

	lines, err = env.svc.Cart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAddToCart_ConcurrentAddsAreNotLost(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(1); i <= 6; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _, err := env.svc.AddToCart(ctx, user.ID, videoLine(id, 1000))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	lines, err := env.svc.Cart(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 6)
	assert.Equal(t, 0, env.svc.locks.size())
}
