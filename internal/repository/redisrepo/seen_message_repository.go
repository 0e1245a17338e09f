package redisrepo

import (
	"context"
	"time"

	"legalbot-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// SeenMessageRepository deduplicates transport deliveries by WhatsApp
// message id. The transport retries webhooks, so the same message can
// arrive more than once; SETNX with a TTL makes the first delivery win.
type SeenMessageRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewSeenMessageRepository(client *redis.Client, ttl time.Duration, log logger.ILogger) *SeenMessageRepository {
	return &SeenMessageRepository{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

// MarkSeen returns true if this is the first time the message id is seen.
// With redis unavailable it fails open: a duplicate slipping through is
// still caught by the orchestrator's last-message-id guard.
func (r *SeenMessageRepository) MarkSeen(ctx context.Context, messageID string) bool {
	if r.client == nil || messageID == "" {
		return true
	}
	ok, err := r.client.SetNX(ctx, "seen:"+messageID, 1, r.ttl).Result()
	if err != nil {
		r.logger.Warn("SeenMessages", "Redis dedupe unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return true
	}
	return ok
}
