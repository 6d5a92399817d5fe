package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/crucial707/equipment-registry/internal/db"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Env is "dev" (default) or "prod".
	Env string

	DBHost    string
	DBPort    string
	DBName    string
	DBUser    string
	DBPass    string
	DBSSLMode string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
	// LogLevel is debug, info (default), warn or error.
	LogLevel string

	// MaxBodyBytes caps form submissions (default 64 KiB).
	MaxBodyBytes int64
	// WriteRatePerMin is the number of create/update/delete submissions allowed per client IP per minute.
	WriteRatePerMin int

	// MigrateOnStart applies pending migrations before the server starts listening.
	MigrateOnStart bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory, when present, fills in variables that are not already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8000"),
		Env:  getEnv("ENV", "dev"),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBName:    getEnv("DB_NAME", "inventory"),
		DBUser:    getEnv("DB_USER", "inventory"),
		DBPass:    getEnv("DB_PASS", "inventory"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),

		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 64<<10)),
		WriteRatePerMin: getEnvInt("WRITE_RATE_PER_MIN", 60),

		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),
	}
}

// TLSEnabled reports whether both certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DBOptions returns the connection settings for db.Connect and db.Migrate.
func (c Config) DBOptions() db.Options {
	return db.Options{
		Host:         c.DBHost,
		Port:         c.DBPort,
		Name:         c.DBName,
		User:         c.DBUser,
		Password:     c.DBPass,
		SSLMode:      c.DBSSLMode,
		MaxOpenConns: c.DBMaxOpenConns,
		MaxIdleConns: c.DBMaxIdleConns,
	}
}
