package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthSnapshot is the last observed state of the backing stores: the
// interval/booking database and the Redis instances (auth cache, task queue).
type HealthSnapshot struct {
	Database  bool      `json:"database"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	healthMu   sync.RWMutex
	lastHealth HealthSnapshot
)

// CurrentHealth returns the most recent snapshot taken by the monitor.
func CurrentHealth() HealthSnapshot {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return lastHealth
}

// StartHealthMonitor probes Mongo and the given Redis clients on a fixed
// cadence, keeping an in-memory snapshot for the health endpoint.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			probeStores(redisClients, mongoClient)
		}
	}()
}

func probeStores(redisClients []*redis.Client, mongoClient *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisUp := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisUp = append(redisUp, client.Ping(ctx).Err() == nil)
	}

	snapshot := HealthSnapshot{
		Database:  mongoClient.Ping(ctx, nil) == nil,
		Redis:     redisUp,
		CheckedAt: time.Now().UTC(),
	}

	healthMu.Lock()
	lastHealth = snapshot
	healthMu.Unlock()
}
