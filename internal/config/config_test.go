package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test. cleanenv treats a set but
// empty variable as a value, so defaults only apply to unset keys.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

var allKeys = []string{
	"PORT", "MONGO_URI", "DB_NAME", "JWT_SECRET", "TOKEN_TTL", "CORS_ORIGIN",
	"REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "GIN_MODE",
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, allKeys...)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "SDP", cfg.DBName)
	require.Equal(t, 20*time.Minute, cfg.TokenTTL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
	require.Equal(t, ":5000", cfg.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("PORT", "8081")
	t.Setenv("MONGO_URI", " mongodb://mongo:27017 ")
	t.Setenv("DB_NAME", "coffee")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("REQUEST_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8081", cfg.Port)
	require.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
	require.Equal(t, "coffee", cfg.DBName)
	require.Equal(t, "secret", cfg.JWTSecret)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, 2*time.Second, cfg.RequestTimeout)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:           "5000",
		MongoURI:       "mongodb://localhost:27017",
		DBName:         "SDP",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		RequestTimeout: time.Second,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }},
		{name: "missing mongo uri", mutate: func(c *Config) { c.MongoURI = "" }},
		{name: "missing db name", mutate: func(c *Config) { c.DBName = "" }},
		{name: "missing port", mutate: func(c *Config) { c.Port = "" }},
		{name: "zero token ttl", mutate: func(c *Config) { c.TokenTTL = 0 }},
		{name: "zero request timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
