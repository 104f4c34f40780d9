package bootstrap

import (
	"context"
	"testing"

	"socialnet/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRuntime_SQLite(t *testing.T) {
	cfg := &config.Config{
		Env:        "test",
		DBDriver:   config.DriverSQLite,
		SQLitePath: "file:bootstrap_runtime?mode=memory&cache=shared",
	}

	store, rdb, err := InitRuntime(cfg, Options{SkipRedis: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	assert.Nil(t, rdb)
	assert.Equal(t, "sqlite", store.Backend)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(&config.Config{Env: "test"}, "socialnet-test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
