package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{
		EnvKeyMTDBType, EnvKeyMTDbPath, EnvKeyMTDbDSN, EnvKeyMTHttpHostPort, EnvKeyMTGrpcHostPort,
		EnvKeyMTSessionSecret, EnvKeyMTSessionTTL, EnvKeyMTDefaultRate, EnvKeyMTDefaultBurst, EnvKeyGoEnv,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(EnvKeyGoEnv, "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.DBType)
	assert.Equal(t, "maintenance.db", cfg.DBPath)
	assert.Equal(t, ":5000", cfg.HTTPHostPort)
	assert.Equal(t, "", cfg.GRPCHostPort)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5.0, cfg.DefaultRate)
	assert.Equal(t, 10, cfg.DefaultBurst)
	assert.Equal(t, DevelopmentSessionSecret, cfg.SessionSecret)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(EnvKeyMTDBType, "mysql")
	t.Setenv(EnvKeyMTDbDSN, "root@tcp(127.0.0.1:3306)/maint?parseTime=true")
	t.Setenv(EnvKeyMTSessionTTL, "30m")
	t.Setenv(EnvKeyMTDefaultRate, "2.5")
	t.Setenv(EnvKeyMTDefaultBurst, "4")
	t.Setenv(EnvKeyMTGrpcHostPort, " :5001 ")
	t.Setenv(EnvKeyMTSessionSecret, "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DBType)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2.5, cfg.DefaultRate)
	assert.Equal(t, 4, cfg.DefaultBurst)
	assert.Equal(t, ":5001", cfg.GRPCHostPort)
	assert.Equal(t, "from-env", cfg.SessionSecret)
}

func TestLoadConfig_EdgeCases(t *testing.T) {
	{
		clearConfigEnv(t)
		t.Setenv(EnvKeyMTDBType, "postgres")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown MT_DB_TYPE")
	}

	{
		clearConfigEnv(t)
		t.Setenv(EnvKeyMTDBType, "mysql")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MT_DB_DSN is required")
	}

	{
		clearConfigEnv(t)
		t.Setenv(EnvKeyMTDefaultBurst, "many")
		t.Setenv(EnvKeyMTSessionTTL, "forever")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MT_DEFAULT_BURST")
		assert.Contains(t, err.Error(), "MT_SESSION_TTL")
	}

	{
		clearConfigEnv(t)
		t.Setenv(EnvKeyGoEnv, "production")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MT_SESSION_SECRET")
	}
}

func TestLoadConfig_SessionSecret(t *testing.T) {
	// only an explicit development environment gets the built-in secret
	for _, env := range []string{"", "staging", "production", "Development"} {
		clearConfigEnv(t)
		t.Setenv(EnvKeyGoEnv, env)
		cfg, err := LoadConfig()
		require.Error(t, err, "GO_ENV=%q", env)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "MT_SESSION_SECRET is required")
	}

	{
		clearConfigEnv(t)
		t.Setenv(EnvKeyGoEnv, "staging")
		t.Setenv(EnvKeyMTSessionSecret, "s3cret")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.SessionSecret)
	}

	{
		clearConfigEnv(t)
		cfg, err := LoadStoreConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.SessionSecret)
		assert.Equal(t, "file", cfg.DBType)
	}
}
