package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"chama-backend/internal/domain/event"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// RedisSink pushes domain events onto a Redis pub/sub channel. Delivery is
// at-most-once and best-effort: failures are logged and never surfaced to
// the caller, so a dropped notification cannot roll back a financial change.
type RedisSink struct {
	rdb     *redis.Client
	channel string
}

func NewRedisSink(rdb *redis.Client, channel string) *RedisSink {
	return &RedisSink{rdb: rdb, channel: channel}
}

func (s *RedisSink) Publish(ctx context.Context, e event.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		log.Printf("notify: marshal %s: %v", e.Name, err)
		return
	}
	// detach from the request context: the tx already committed
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.rdb.Publish(pctx, s.channel, payload).Err(); err != nil {
		log.Printf("notify: publish %s: %v", e.Name, err)
	}
}
