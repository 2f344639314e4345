package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, 3600, cfg.JWTMaxAge)
	assert.Equal(t, time.Hour, cfg.JWTTTL())
	assert.Equal(t, "sfm-backend-cookie", cfg.AuthCookieName)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("JWT_MAX_AGE", "60")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("DB_HOST", "db")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
	assert.Equal(t, time.Minute, cfg.JWTTTL())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "postgres://postgres:password@db:5432/team_roster?sslmode=disable", cfg.PostgresDSN())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := Config{JWTSecret: "s", JWTMaxAge: 1, StoreDriver: "sqlite"}
	assert.Error(t, cfg.Validate())
}
