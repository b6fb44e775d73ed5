package counter

import (
	"context"
	"strconv"

	"github.com/ManuelReschke/HookFox/internal/pkg/cache"
)

const (
	receivedKey  = "webhook:counters:received"
	processedKey = "webhook:counters:processed"
	failedKey    = "webhook:counters:failed"
)

// AddReceived increments the delivery counter for an event type in Redis
func AddReceived(eventType string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, receivedKey, eventType, 1).Err()
}

// AddProcessed increments the processed counter for an event type in Redis
func AddProcessed(eventType string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, processedKey, eventType, 1).Err()
}

// AddFailed increments the failed counter for an event type in Redis
func AddFailed(eventType string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, failedKey, eventType, 1).Err()
}

// Snapshot reads all per-type delivery counters. Counters are best effort:
// a missing hash or an unreachable Redis yields empty maps, never an error
// that could fail a stats request.
func Snapshot() map[string]map[string]int64 {
	ctx := context.Background()
	rdb := cache.GetClient()

	snapshot := make(map[string]map[string]int64, 3)
	for name, key := range map[string]string{
		"received":  receivedKey,
		"processed": processedKey,
		"failed":    failedKey,
	} {
		counts := make(map[string]int64)
		data, err := rdb.HGetAll(ctx, key).Result()
		if err == nil {
			for field, value := range data {
				if n, perr := strconv.ParseInt(value, 10, 64); perr == nil {
					counts[field] = n
				}
			}
		}
		snapshot[name] = counts
	}
	return snapshot
}
