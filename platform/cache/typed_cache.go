package cache

import "time"

// TypedCache namespaces a Store and fixes the value type.
type TypedCache[T any] struct {
	store  Store
	prefix string
	ttl    time.Duration
}

func NewTypedCache[T any](store Store, prefix string, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{store: store, prefix: prefix, ttl: ttl}
}

func (tc *TypedCache[T]) Set(key string, value T) {
	tc.store.Set(tc.prefix+key, value, tc.ttl)
}

// Add fails with ErrKeyExists when key is already present.
func (tc *TypedCache[T]) Add(key string, value T) error {
	return tc.store.Add(tc.prefix+key, value, tc.ttl)
}

func (tc *TypedCache[T]) Get(key string) (T, bool) {
	var zero T
	raw, ok := tc.store.Get(tc.prefix + key)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

func (tc *TypedCache[T]) Delete(key string) {
	tc.store.Del(tc.prefix + key)
}
