package revocation

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestDenylist_RevokeUntilExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	d := NewDenylist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(2*time.Second)))

	ok, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = d.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, ok)

	// advance past TTL
	m.FastForward(3 * time.Second)

	ok, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDenylist_ExpiredTokenNotStored(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	d := NewDenylist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	require.NoError(t, d.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	require.Empty(t, m.Keys())
}

// Without a client the list is a no-op
func TestDenylist_NoClient_Noop(t *testing.T) {
	ctx := context.Background()
	for _, d := range []*Denylist{nil, NewDenylist(nil)} {
		require.False(t, d.Enabled())
		require.NoError(t, d.Revoke(ctx, "t", time.Now().Add(time.Hour)))
		ok, err := d.IsRevoked(ctx, "t")
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestDenylist_RedisDownSurfacesError(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	d := NewDenylist(redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1}))
	m.Close()

	_, err = d.IsRevoked(context.Background(), "jti")
	require.Error(t, err)
}
