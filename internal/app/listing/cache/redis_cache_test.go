package cache_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/cache"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisListingCache_RoundTrip(t *testing.T) {
	mr, client := newClient(t)
	c := cache.NewRedisListingCache(client, time.Minute)
	ctx := context.Background()
	window := domain.PricingWindow{
		From:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}

	_, ok, err := c.Get(ctx, "p1", window)
	require.NoError(t, err)
	require.False(t, ok)

	in := &dto.ProductListingDTO{
		ID:       "p1",
		Name:     "Linen Shirt",
		Price:    decimal.RequireFromString("135000"),
		MinPrice: decimal.RequireFromString("135000"),
		Stock:    9,
	}
	require.NoError(t, c.Set(ctx, "p1", window, in))

	out, ok, err := c.Get(ctx, "p1", window)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Linen Shirt", out.Name)
	require.True(t, out.Price.Equal(in.Price))
	require.Equal(t, int64(9), out.Stock)

	// The following window misses even though it is within the ttl.
	next := domain.PricingWindow{From: window.Until}
	_, ok, err = c.Get(ctx, "p1", next)
	require.NoError(t, err)
	require.False(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "p1", window)
	require.NoError(t, err)
	require.False(t, ok, "entry expires with the ttl")
}

func TestRedisListingCache_Key(t *testing.T) {
	c := cache.NewRedisListingCache(nil, time.Minute)
	from := time.Unix(100, 5)

	require.Equal(t, "listing:p1:-:-", c.Key("p1", domain.PricingWindow{}))
	require.Equal(t, "listing:p1:100000000005:-", c.Key("p1", domain.PricingWindow{From: from}))
	require.NotEqual(t,
		c.Key("p1", domain.PricingWindow{From: from}),
		c.Key("p1", domain.PricingWindow{Until: from}))
}

func TestRedisListingCache_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	c := cache.NewRedisListingCache(nil, time.Minute)

	require.NoError(t, c.Set(ctx, "p1", domain.PricingWindow{}, &dto.ProductListingDTO{ID: "p1"}))
	_, ok, err := c.Get(ctx, "p1", domain.PricingWindow{})
	require.NoError(t, err)
	require.False(t, ok)

	_, client := newClient(t)
	zeroTTL := cache.NewRedisListingCache(client, 0)
	require.NoError(t, zeroTTL.Set(ctx, "p1", domain.PricingWindow{}, &dto.ProductListingDTO{ID: "p1"}))
	_, ok, err = zeroTTL.Get(ctx, "p1", domain.PricingWindow{})
	require.NoError(t, err)
	require.False(t, ok)
}
