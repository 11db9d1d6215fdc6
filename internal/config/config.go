package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server          ServerConfig
	Database        DatabaseConfig
	TransactionsAPI TransactionsAPIConfig
	Auth            AuthConfig
	Security        SecurityConfig
	CircuitBreaker  CircuitBreakerConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	SQLitePath      string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// TransactionsAPIConfig points the dashboard at the transactions REST service
type TransactionsAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AuthConfig controls the service tokens exchanged between dashboard and API.
// An empty TokenSecret disables authentication.
type AuthConfig struct {
	TokenSecret string
	TokenIssuer string
	TokenTTL    time.Duration
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
	// TrustProxyHeaders reads client addresses from X-Forwarded-For
	TrustProxyHeaders bool
}

type CircuitBreakerConfig struct {
	MaxFailures     int
	ResetTimeout    time.Duration
	HalfOpenMaxSucc int
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "transactions.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "transactions_user"),
			Password:        getEnv("DB_PASSWORD", "transactions_password"),
			Name:            getEnv("DB_NAME", "transactions_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		TransactionsAPI: TransactionsAPIConfig{
			BaseURL: strings.TrimRight(getEnv("TRANSACTIONS_API_URL", "http://localhost:3333/api"), "/"),
			Timeout: getDurationEnv("TRANSACTIONS_API_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			TokenSecret: os.Getenv("AUTH_TOKEN_SECRET"),
			TokenIssuer: getEnv("AUTH_TOKEN_ISSUER", "transactions-dashboard"),
			TokenTTL:    getDurationEnv("AUTH_TOKEN_TTL", time.Minute),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 40),
			TrustProxyHeaders:  getBoolEnv("TRUST_PROXY_HEADERS", false),
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxFailures:     getIntEnv("CIRCUIT_BREAKER_MAX_FAILURES", 5),
			ResetTimeout:    getDurationEnv("CIRCUIT_BREAKER_RESET_TIMEOUT", 30*time.Second),
			HalfOpenMaxSucc: getIntEnv("CIRCUIT_BREAKER_HALF_OPEN_SUCCESSES", 3),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	if config.Auth.TokenSecret == "" && config.IsProduction() {
		log.Println("WARNING: AUTH_TOKEN_SECRET not set in production environment, service tokens are disabled")
	}

	return config
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the connection string in URL form, as lib/pq and golang-migrate expect it
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// Address returns host:port for the HTTP listener
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// AuthEnabled reports whether service tokens are issued and required
func (c *AuthConfig) AuthEnabled() bool {
	return c.TokenSecret != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			log.Println("WARNING: CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*' (all origins). Consider setting specific origins for security.")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	return origins
}

// AutoMigrateEnabled reports whether AUTO_MIGRATE is set
func AutoMigrateEnabled() bool {
	return getBoolEnv("AUTO_MIGRATE", false)
}

// SeedEnabled reports whether SEED_DATABASE is set
func SeedEnabled() bool {
	return getBoolEnv("SEED_DATABASE", false)
}
