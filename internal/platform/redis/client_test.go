package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycaml/internal/platform/config"
)

func TestOptions(t *testing.T) {
	t.Run("tuning values override defaults", func(t *testing.T) {
		opts, err := options(config.RedisConfig{
			URL:          "redis://cache.internal:6380/2",
			PoolSize:     8,
			MinIdleConns: 2,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: 2 * time.Second,
		})
		require.NoError(t, err)

		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 8, opts.PoolSize)
		assert.Equal(t, 2, opts.MinIdleConns)
		assert.Equal(t, 3*time.Second, opts.DialTimeout)
		assert.Equal(t, time.Second, opts.ReadTimeout)
		assert.Equal(t, 2*time.Second, opts.WriteTimeout)
	})

	t.Run("unsupported scheme is rejected", func(t *testing.T) {
		_, err := options(config.RedisConfig{URL: "http://localhost:6379"})
		assert.ErrorContains(t, err, "parse redis URL")
	})
}
