package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	price, err := decimal.NewFromString("1.50")
	require.NoError(t, err)
	in := []Product{{ID: "p-1", Name: "Coca-Cola 500ml", Category: "Bebidas", UnitPrice: price, Active: true}}
	require.NoError(t, cache.SetJSON(ctx, "catalog:products", in))

	var out []Product
	ok, err := cache.GetJSON(ctx, "catalog:products", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, out, 1)
	require.True(t, out[0].UnitPrice.Equal(price))
}

func TestCacheMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(client, time.Minute)
	var out []Product
	ok, err := cache.GetJSON(context.Background(), "catalog:products", &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCacheDisabledWithoutClient(t *testing.T) {
	cache := NewCache(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, "catalog:products", []Product{}))
	ok, err := cache.GetJSON(ctx, "catalog:products", &[]Product{})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(client, time.Second)
	ctx := context.Background()
	require.NoError(t, cache.SetJSON(ctx, "catalog:products", []Product{{ID: "p-1"}}))

	mr.FastForward(2 * time.Second)

	var out []Product
	ok, err := cache.GetJSON(ctx, "catalog:products", &out)
	require.NoError(t, err)
	require.False(t, ok)
}
