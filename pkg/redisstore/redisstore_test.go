package redisstore

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidURL(t *testing.T) {
	_, err := New(Config{URL: "not-a-redis-url"})
	assert.Error(t, err)
}

func TestKeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { client.Close() })

	s := NewWithClient(client, "")
	assert.Equal(t, "customerapi:limiter:10.0.0.1", s.key("10.0.0.1"))

	s = NewWithClient(client, "test:")
	assert.Equal(t, "test:10.0.0.1", s.key("10.0.0.1"))
}

func TestEmptyKeysAreNoops(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { client.Close() })
	s := NewWithClient(client, "")

	val, err := s.Get("")
	require.NoError(t, err)
	assert.Nil(t, val)
	assert.NoError(t, s.Set("", []byte("x"), 0))
	assert.NoError(t, s.Delete(""))
}
