package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"CONFEITARIA_APP_NAME":              os.Getenv("CONFEITARIA_APP_NAME"),
		"CONFEITARIA_APP_ENV":               os.Getenv("CONFEITARIA_APP_ENV"),
		"CONFEITARIA_APP_PORT":              os.Getenv("CONFEITARIA_APP_PORT"),
		"CONFEITARIA_DATABASE_HOST":         os.Getenv("CONFEITARIA_DATABASE_HOST"),
		"CONFEITARIA_DATABASE_PORT":         os.Getenv("CONFEITARIA_DATABASE_PORT"),
		"CONFEITARIA_DATABASE_USER":         os.Getenv("CONFEITARIA_DATABASE_USER"),
		"CONFEITARIA_DATABASE_PASSWORD":     os.Getenv("CONFEITARIA_DATABASE_PASSWORD"),
		"CONFEITARIA_DATABASE_DBNAME":       os.Getenv("CONFEITARIA_DATABASE_DBNAME"),
		"CONFEITARIA_DATABASE_SSLMODE":      os.Getenv("CONFEITARIA_DATABASE_SSLMODE"),
		"CONFEITARIA_PRICING_MARKUP_FACTOR": os.Getenv("CONFEITARIA_PRICING_MARKUP_FACTOR"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "confeitaria", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "confeitaria", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 3.0, cfg.Pricing.MarkupFactor)
		assert.Equal(t, 0.01, cfg.Pricing.PriceEpsilon)
	})

	t.Run("loads values from environment variables with CONFEITARIA prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONFEITARIA_APP_NAME", "test-app")
		os.Setenv("CONFEITARIA_APP_PORT", "9000")
		os.Setenv("CONFEITARIA_DATABASE_HOST", "testdb.local")
		os.Setenv("CONFEITARIA_DATABASE_PORT", "5433")
		os.Setenv("CONFEITARIA_DATABASE_USER", "testuser")
		os.Setenv("CONFEITARIA_DATABASE_PASSWORD", "testpass")
		os.Setenv("CONFEITARIA_DATABASE_DBNAME", "testdb")
		os.Setenv("CONFEITARIA_PRICING_MARKUP_FACTOR", "2.5")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, 2.5, cfg.Pricing.MarkupFactor)
	})

	t.Run("rejects missing password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("CONFEITARIA_APP_ENV", "production")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "baker",
		Password: "p@ss/word",
		DBName:   "confeitaria",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.Addr())
}
