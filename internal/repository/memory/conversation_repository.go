package memory

import (
	"time"

	"legalbot-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps per-conversation dialogue state in memory.
// Entries expire after the session TTL so abandoned conversations restart
// from scratch.
type ConversationRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewConversationRepository(ttl time.Duration) *ConversationRepository {
	// Purge at the TTL cadence so eviction callbacks fire close to expiry.
	c := cache.New(ttl, ttl)
	return &ConversationRepository{
		cache: c,
		ttl:   ttl,
	}
}

// OnEvicted registers a callback invoked with the conversation id whenever
// an entry expires or is deleted. Used to release per-conversation
// resources held outside the store.
func (r *ConversationRepository) OnEvicted(fn func(conversationID string)) {
	r.cache.OnEvicted(func(key string, _ interface{}) {
		fn(key)
	})
}

func (r *ConversationRepository) Save(conversation *store.Conversation) {
	r.cache.Set(conversation.ID, conversation, cache.DefaultExpiration)
}

// Get returns the stored state for an id, or a fresh Idle conversation.
func (r *ConversationRepository) Get(conversationID string) *store.Conversation {
	if x, found := r.cache.Get(conversationID); found {
		return x.(*store.Conversation)
	}
	return store.NewConversation(conversationID)
}

func (r *ConversationRepository) Delete(conversationID string) {
	r.cache.Delete(conversationID)
}
