package idempotency

import (
	"time"

	"encore.dev/storage/cache"

	"encore.app/transfer/model"
)

// Retention is how long a completed response is replayed for its key.
const Retention = 24 * time.Hour

var IdempotencyCluster = cache.NewCluster("transfer-idempotency", cache.ClusterConfig{
	EvictionPolicy: cache.AllKeysLRU,
})

// IdempotencyCache holds one entry per endpoint path and client key.
var IdempotencyCache = cache.NewStructKeyspace[model.IdempotencyKey, model.IdempotencyCacheEntry](
	IdempotencyCluster,
	cache.KeyspaceConfig{
		KeyPattern:    "idempotency/:Resource/:Key",
		DefaultExpiry: cache.ExpireIn(Retention),
	},
)
