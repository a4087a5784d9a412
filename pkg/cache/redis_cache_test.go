package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubCache struct{}

func (stubCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (stubCache) Get(context.Context, string) (string, error)              { return "", ErrMiss }
func (stubCache) Del(context.Context, string) error                        { return nil }

func TestPing_NonRedisCacheIsAlwaysUp(t *testing.T) {
	assert.NoError(t, Ping(context.Background(), stubCache{}))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	c := NewRedisCache(RedisOptions{Addr: "127.0.0.1:1"})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, Ping(ctx, c))

	_, err := c.Get(ctx, "flight:search:abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
