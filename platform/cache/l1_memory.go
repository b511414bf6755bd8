package cache

import (
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
)

var ErrKeyExists = errors.New("cache key already exists")

type L1CacheService struct {
	client *cache.Cache
}

func InitL1Cache(defaultExpiration, cleanupInterval time.Duration) *L1CacheService {
	return &L1CacheService{
		client: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (s *L1CacheService) Get(key string) (interface{}, bool) {
	return s.client.Get(key)
}

func (s *L1CacheService) Set(key string, value interface{}, expiration time.Duration) {
	s.client.Set(key, value, expiration)
}

func (s *L1CacheService) Add(key string, value interface{}, expiration time.Duration) error {
	if err := s.client.Add(key, value, expiration); err != nil {
		return ErrKeyExists
	}
	return nil
}

func (s *L1CacheService) Del(key string) {
	s.client.Delete(key)
}

func (s *L1CacheService) Len() int {
	return s.client.ItemCount()
}
