package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"studentresults/internal/config"
)

func TestOpenSQLite(t *testing.T) {
	db, err := Open(&config.Config{Backend: config.BackendSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpenMemoryBackendHasNoDatabase(t *testing.T) {
	_, err := Open(&config.Config{Backend: config.BackendMemory})
	assert.Error(t, err)
}

func TestDSNs(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBUser:     "registrar",
		DBPassword: "secret",
		DBName:     "results",
		DBPort:     "5432",
	}

	assert.Equal(t, "host=db user=registrar password=secret dbname=results port=5432 sslmode=disable", PostgresDSN(cfg))

	cfg.DBPort = "3306"
	assert.Equal(t, "registrar:secret@tcp(db:3306)/results?charset=utf8mb4&parseTime=True&loc=Local", MySQLDSN(cfg))
}
