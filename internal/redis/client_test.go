package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/redis"
)

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestPing(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := redis.NewClient(mr.Addr(), &redis.Options{MaxRetries: 0})
	require.NoError(t, err)
	assert.NoError(t, redis.Ping(context.Background(), client, time.Second))

	mr.Close()
	err = redis.Ping(context.Background(), client, 200*time.Millisecond)
	assert.True(t, errors.IsUnavailable(err))
}
