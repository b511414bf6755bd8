package cache

import "time"

// Store is an in-process key/value store with per-entry expiry.
type Store interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, expiration time.Duration)
	// Add stores value only if key is absent or expired.
	Add(key string, value interface{}, expiration time.Duration) error
	Del(key string)
}
