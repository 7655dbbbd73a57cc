package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// DatasetCache holds prepared merged tables keyed by the
	// fingerprints of the two source tables.
	DatasetCache *cache.Cache
	// ViewCache holds rendered view responses keyed by view name and
	// filter selection. Flushed whenever the dataset is reloaded.
	ViewCache *cache.Cache
)

const (
	datasetCacheDuration = cache.NoExpiration
	viewCacheDuration    = 10 * time.Minute

	datasetCleanupInterval = 0
	viewCleanupInterval    = 30 * time.Minute
)

func InitCache() {
	DatasetCache = cache.New(datasetCacheDuration, datasetCleanupInterval)
	ViewCache = cache.New(viewCacheDuration, viewCleanupInterval)
}

func ClearViewCache() {
	ViewCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
