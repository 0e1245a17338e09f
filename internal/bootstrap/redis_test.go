package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{}) {}
func (nopLogger) Warn(module, message string, details map[string]interface{}) {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

func TestNewRedisClientInvalidURL(t *testing.T) {
	assert.Nil(t, newRedisClient("::not-a-url::", nopLogger{}))
}

func TestNewRedisClientUnreachable(t *testing.T) {
	// Port 1 refuses connections; the container must fall back to a nil
	// client so the dedupe repository fails open silently.
	assert.Nil(t, newRedisClient("redis://127.0.0.1:1", nopLogger{}))
}
