package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "catalogo-api", cfg.App.Name)
	assert.Equal(t, config.StorePostgres, cfg.App.Store)
	assert.Equal(t, 6, cfg.Catalog.PageSize)
	assert.Equal(t, 8, cfg.Catalog.BulkWorkers)
	assert.Equal(t, 15*time.Second, cfg.Media.Timeout)
	assert.False(t, cfg.Media.Enabled())
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_STORE", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("MEDIA_CLOUD_NAME", "demo")
	t.Setenv("MEDIA_API_KEY", "k")
	t.Setenv("MEDIA_API_SECRET", "s")
	t.Setenv("MEDIA_FOLDER", "/prueba/")
	t.Setenv("CATALOG_PAGE_SIZE", "10")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.App.Store)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Media.Enabled())
	assert.Equal(t, "prueba", cfg.Media.Folder)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
}

func TestLoad_StoreInvalido(t *testing.T) {
	t.Setenv("APP_STORE", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PoolMenorQueWorkers(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("CATALOG_BULK_WORKERS", "8")
	_, err := config.Load()
	assert.ErrorContains(t, err, "DB_MAX_CONNS")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "catalogo", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/catalogo?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
