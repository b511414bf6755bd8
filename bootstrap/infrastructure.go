package bootstrap

import (
	"time"

	"go_chat_client/platform/cache"
)

type Infrastructure struct {
	Cache *cache.L1CacheService
}

func NewInfrastructure() *Infrastructure {
	return &Infrastructure{
		Cache: cache.InitL1Cache(time.Hour, 10*time.Minute),
	}
}
