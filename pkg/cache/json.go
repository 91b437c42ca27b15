package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetJSON decodes the value at key into v. It returns [ErrCacheMiss] when
// the key is absent or the stored bytes no longer decode.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit || json.Unmarshal(data, v) != nil {
		return ErrCacheMiss
	}
	return nil
}

// SetJSON stores the JSON encoding of v under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
