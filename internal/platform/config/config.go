package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "verifid/pkg/platform/strings"
)

// Config captures process-level configuration for the verification service.
type Config struct {
	Server   Server
	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Upload   UploadConfig
	Capture  CaptureConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
}

// RedisConfig controls the shared Redis client used by the artifact cache
// and the progress store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig controls the durable progress store. Empty DSN disables it.
type PostgresConfig struct {
	DSN string
}

// KafkaConfig controls the audit event publisher. Empty brokers disable it.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// UploadConfig points at the document intake service.
type UploadConfig struct {
	BaseURL        string
	SelfieCheckURL string
	Timeout        time.Duration
}

// CaptureConfig tunes the device session and detector behavior.
type CaptureConfig struct {
	StreamSetupTimeout time.Duration
	DetectionInterval  time.Duration
	MaxRetryAttempts   int
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:          envOr("VERIFID_ADDR", ":8080"),
			JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("POSTGRES_DSN"),
		},
		Kafka: KafkaConfig{
			Brokers:    splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "verifid.audit"),
		},
		Upload: UploadConfig{
			BaseURL:        envOr("DOCUMENT_UPLOAD_URL", "http://localhost:8090"),
			SelfieCheckURL: os.Getenv("SELFIE_CHECK_URL"),
			Timeout:        envDuration("UPLOAD_TIMEOUT", 30*time.Second),
		},
		Capture: CaptureConfig{
			StreamSetupTimeout: envDuration("STREAM_SETUP_TIMEOUT", 15*time.Second),
			DetectionInterval:  envDuration("DETECTION_INTERVAL", 1500*time.Millisecond),
			MaxRetryAttempts:   envInt("CAPTURE_MAX_RETRIES", 3),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// splitNonEmpty parses a comma-separated broker list, dropping blanks and
// duplicates.
func splitNonEmpty(s string) []string {
	parts := pstrings.DedupeAndTrim(strings.Split(s, ","))
	if len(parts) == 0 {
		return nil
	}
	return parts
}
