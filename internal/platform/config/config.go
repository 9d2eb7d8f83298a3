package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultAddr            = ":8080"
	DefaultGeoIPTimeout    = 3 * time.Second
	DefaultEUContinent     = "EU"
	DefaultTokenTTL        = 15 * time.Minute
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
)

// Server captures process-level configuration for the consent service.
type Server struct {
	Addr        string
	LogLevel    slog.Level
	DatabaseURL string

	// JWTSigningKey verifies bearer tokens issued by the authentication
	// layer. The core never issues tokens itself.
	JWTSigningKey string
	TokenTTL      time.Duration

	// EncryptionKey is the 32-byte key for the field codec applied to
	// consumer personal data at the persistence boundary.
	EncryptionKey string

	// GDPR applicability settings. When the controller is established in
	// the EU, consent collection is required regardless of request origin.
	ControllerEstablishedInEU bool
	EUContinentCode           string

	GeoIPBaseURL string
	GeoIPTimeout time.Duration

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// MigrateOnStart applies the embedded schema migrations before the
	// server starts accepting requests.
	MigrateOnStart bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:                      envOr("ASSENT_ADDR", DefaultAddr),
		LogLevel:                  parseLevel(os.Getenv("ASSENT_LOG_LEVEL")),
		DatabaseURL:               os.Getenv("ASSENT_DATABASE_URL"),
		JWTSigningKey:             os.Getenv("ASSENT_JWT_SIGNING_KEY"),
		TokenTTL:                  envDuration("ASSENT_TOKEN_TTL", DefaultTokenTTL),
		EncryptionKey:             os.Getenv("ASSENT_ENCRYPTION_KEY"),
		ControllerEstablishedInEU: os.Getenv("ASSENT_GDPR_ESTABLISHED_IN_EU") == "true",
		EUContinentCode:           envOr("ASSENT_EU_CONTINENT_CODE", DefaultEUContinent),
		GeoIPBaseURL:              os.Getenv("ASSENT_GEOIP_BASE_URL"),
		GeoIPTimeout:              envDuration("ASSENT_GEOIP_TIMEOUT", DefaultGeoIPTimeout),
		DBMaxOpenConns:            envInt("ASSENT_DB_MAX_OPEN_CONNS", defaultMaxOpenConns),
		DBMaxIdleConns:            envInt("ASSENT_DB_MAX_IDLE_CONNS", defaultMaxIdleConns),
		DBConnMaxLifetime:         envDuration("ASSENT_DB_CONN_MAX_LIFETIME", defaultConnMaxLifetime),
		MigrateOnStart:            os.Getenv("ASSENT_DB_MIGRATE") == "true",
	}
	if cfg.JWTSigningKey == "" {
		// Development fallback, must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
