package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/pkg/config"
)

// chdir cambia el directorio de trabajo y lo restaura al terminar el test
// (equivalente a t.Chdir, disponible solo desde Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir()) // sin .env en el directorio de trabajo
	t.Setenv("STORE_DRIVER", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "crm-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "crm", cfg.Redis.Prefix)
	assert.Equal(t, "crm.db", cfg.SQLite.Path)
	assert.Equal(t, "./docs/swagger.json", cfg.Docs.SwaggerFile)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverRedis, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "crm", Password: "p@ss", DBName: "crm", SSLMode: "disable"}
	assert.Equal(t, "postgres://crm:p%40ss@db:5432/crm?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
