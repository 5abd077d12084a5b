package cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

const catalogTTL = 30 * time.Second

// Init connects to Redis. The cache is optional; without REDIS_ADDR every
// lookup is a miss and the catalog is served straight from the database.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, catalog cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis, catalog cache disabled: %v", err)
		return
	}

	Client = client
	log.Println("✅ Connected to Redis")
}

func catalogKey(city string) string {
	return "catalog:" + city
}

// GetCatalog returns the cached catalog JSON for a city, or false on miss.
func GetCatalog(city string) ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	val, err := Client.Get(Ctx, catalogKey(city)).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// SetCatalog stores the catalog JSON for a city with a short TTL.
func SetCatalog(city string, payload []byte) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, catalogKey(city), payload, catalogTTL).Err(); err != nil {
		log.Printf("Failed to cache catalog for %q: %v", city, err)
	}
}

// InvalidateCatalog drops every cached catalog entry. Called when a service
// or rating changes the aggregation.
func InvalidateCatalog() {
	if Client == nil {
		return
	}
	keys, err := Client.Keys(Ctx, "catalog:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := Client.Del(Ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate catalog cache: %v", err)
	}
}
