package cache

import (
	"context"
	"encoding/json"
	"time"

	"photoshare/internal/model"
)

const (
	principalKeyPrefix = "principal:"
	principalTTL       = 5 * time.Minute
)

// GetPrincipal returns the cached account for an email, if any. Misses and
// redis failures both report ok=false.
func (c *Client) GetPrincipal(ctx context.Context, email string) (*model.User, bool) {
	data := c.get(ctx, principalKeyPrefix+email)
	if data == nil {
		return nil, false
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// SetPrincipal caches an account keyed by email.
func (c *Client) SetPrincipal(ctx context.Context, user *model.User) {
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	c.set(ctx, principalKeyPrefix+user.Email, data, principalTTL)
}

// InvalidatePrincipal drops the cached account after a mutation. Stale
// entries otherwise outlive bans for up to the TTL.
func (c *Client) InvalidatePrincipal(ctx context.Context, email string) {
	c.delete(ctx, principalKeyPrefix+email)
}
