package redisrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{}) {}
func (nopLogger) Warn(module, message string, details map[string]interface{}) {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

func TestMarkSeenFailsOpenWithoutRedis(t *testing.T) {
	repo := NewSeenMessageRepository(nil, time.Minute, nopLogger{})

	// Without a backing store every delivery counts as first seen.
	assert.True(t, repo.MarkSeen(context.Background(), "wamid-1"))
	assert.True(t, repo.MarkSeen(context.Background(), "wamid-1"))
}

func TestMarkSeenIgnoresEmptyID(t *testing.T) {
	repo := NewSeenMessageRepository(nil, time.Minute, nopLogger{})
	assert.True(t, repo.MarkSeen(context.Background(), ""))
}
