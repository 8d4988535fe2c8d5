package database_test

import (
	"path/filepath"
	"testing"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/config"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   filepath.Join(t.TempDir(), "handyhands.db"),
		MaxOpenConns: 1,
	}

	db, err := database.NewDatabase(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable("submissions"))
	assert.NoError(t, database.HealthCheck(db))

	stats, err := database.HealthCheckWithStats(db)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := database.NewDatabase(&config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}
