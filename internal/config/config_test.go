package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "http://localhost:3333/api", cfg.TransactionsAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.TransactionsAPI.Timeout)
	assert.False(t, cfg.Auth.AuthEnabled())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Security.TrustProxyHeaders)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("TRANSACTIONS_API_URL", "https://api.example.com/v1/")
	t.Setenv("TRANSACTIONS_API_TIMEOUT", "3s")
	t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("RATE_LIMIT_PER_SECOND", "not-a-number")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "https://api.example.com/v1", cfg.TransactionsAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.TransactionsAPI.Timeout)
	assert.True(t, cfg.Auth.AuthEnabled())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSAllowOrigins)
	assert.Equal(t, 20, cfg.Security.RateLimitPerSecond)
	assert.True(t, cfg.Security.TrustProxyHeaders)
}

func TestDatabaseConfig_ConnectionStrings(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "tx", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tx sslmode=disable", db.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/tx?sslmode=disable", db.URL())
}
