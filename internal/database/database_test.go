package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"socialnet/internal/config"
	"socialnet/internal/middleware"
	"socialnet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	pg, err := Dialector(&config.Config{DBDriver: config.DriverPostgres, DBHost: "db", DBPort: "5432"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", pg.Name())

	lite, err := Dialector(&config.Config{DBDriver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", lite.Name())

	_, err = Dialector(&config.Config{DBDriver: config.DriverMongo})
	assert.Error(t, err)
}

func TestOpen_MigratesSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite}
	db, err := Open(sqlite.Open(fmt.Sprintf("file:db_open_%d?mode=memory&cache=shared", time.Now().UnixNano())), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Thought{}))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "idx_users_username"))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "idx_users_email"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Pool settings only apply to server databases; sqlite is pinned to one connection.
	require.NoError(t, configurePool(db, &config.Config{DBMaxOpenConns: 10}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestCustomGormLogger_LogMode(t *testing.T) {
	l := NewGormLogger(middleware.Logger)
	silent := l.LogMode(logger.Silent).(*CustomGormLogger)

	assert.Equal(t, logger.Silent, silent.Config.LogLevel)
	assert.Equal(t, logger.Warn, l.Config.LogLevel, "LogMode must not mutate the receiver")

	// Silent trace must not invoke the SQL callback.
	called := false
	silent.Trace(context.Background(), time.Now(), func() (string, int64) {
		called = true
		return "", 0
	}, nil)
	assert.False(t, called)
}
