package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisKeyPrefix(t *testing.T) {
	c := NewAnswerCache(nil, time.Hour)
	assert.Equal(t, "faq:how long is the warranty?", c.redisKey("how long is the warranty?"))
}

func TestNewAnswerCacheDefaultTTL(t *testing.T) {
	c := NewAnswerCache(nil, 0)
	assert.Equal(t, time.Hour, c.ttl)

	c = NewAnswerCache(nil, 10*time.Minute)
	assert.Equal(t, 10*time.Minute, c.ttl)
}
