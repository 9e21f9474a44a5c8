package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// EntityMirror pushes best-effort copies of freshly written rows into
// Redis so companion tools can read recent activity without touching the
// database. Mirror writes never block or fail the main request path.
type EntityMirror struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewEntityMirror(redisClient *redis.Client) *EntityMirror {
	return &EntityMirror{
		redis: redisClient,
		ttl:   24 * time.Hour,
	}
}

// Mirror serializes the entity under mirror:<kind>:<id> in the
// background. Errors are logged and dropped.
func (m *EntityMirror) Mirror(kind, id string, entity interface{}) {
	if m == nil || m.redis == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(entity)
		if err != nil {
			log.Printf("mirror marshal failed for %s:%s: %v", kind, id, err)
			return
		}

		key := fmt.Sprintf("mirror:%s:%s", kind, id)
		if err := m.redis.Set(ctx, key, data, m.ttl).Err(); err != nil {
			log.Printf("mirror write failed for %s: %v", key, err)
		}
	}()
}
