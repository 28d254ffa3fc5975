package di

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"employee_backend/internal/platform/cache"
	"employee_backend/internal/platform/config"
	"employee_backend/internal/platform/metrics"
)

func TestNewEmployeeRepository(t *testing.T) {
	t.Parallel()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	t.Run("without redis returns the plain repository", func(t *testing.T) {
		t.Parallel()

		repo := NewEmployeeRepository(gdb, nil, m, config.CacheConfig{})

		_, cached := repo.(*cache.CachingEmployeeRepository)
		assert.False(t, cached)
	})

	t.Run("with redis wraps the repository in the cache", func(t *testing.T) {
		t.Parallel()

		mr, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(mr.Close)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		repo := NewEmployeeRepository(gdb, rdb, m, config.CacheConfig{TTL: time.Minute, Namespace: "emp"})

		_, cached := repo.(*cache.CachingEmployeeRepository)
		assert.True(t, cached)
	})

	t.Run("nil metrics is accepted", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, NewEmployeeRepository(gdb, nil, nil, config.CacheConfig{}))
	})
}

func TestNewDBConfig(t *testing.T) {
	t.Parallel()

	got := NewDBConfig(config.DatabaseConfig{
		Host: "h", Port: "1", User: "u", Password: "p", Name: "n",
		SSLMode: "require", InstanceName: "i", MaxConns: 4,
	})

	assert.Equal(t, "h", got.Host)
	assert.Equal(t, "1", got.Port)
	assert.Equal(t, "u", got.User)
	assert.Equal(t, "p", got.Password)
	assert.Equal(t, "n", got.Name)
	assert.Equal(t, "require", got.SSLMode)
	assert.Equal(t, "i", got.InstanceName)
	assert.Equal(t, int32(4), got.MaxConns)
}
