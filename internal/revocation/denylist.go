package revocation

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "denylist:token:"

// Denylist records token ids that were logged out before their natural expiry.
// A nil *Denylist (or one without a client) is valid and never revokes anything,
// which is the stateless behavior used when Redis is not configured.
type Denylist struct {
	client *redis.Client
}

func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Enabled reports whether revocations are persisted.
func (d *Denylist) Enabled() bool { return d != nil && d.client != nil }

// Revoke stores the token id until expiresAt. Already expired tokens are skipped.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if !d.Enabled() || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked returns true when the token id is on the list.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !d.Enabled() || tokenID == "" {
		return false, nil
	}
	n, err := d.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
