package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration. Credentials and database ride in the URL
	// (redis://:pass@host:6379/0).
	RedisURL string

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Admin gate
	AdminKey     string
	AdminKeyHash string

	// Registration rules
	AllowedEmailDomain string
	DefaultMaxMembers  int

	// Upload handling
	MaxUploadBytes   int64
	ImageMaxWidth    int
	ImageJPEGQuality int

	// Draft persistence
	DraftTTL time.Duration

	// Rate limiting
	ScanRateLimit  int
	LoginRateLimit int
	RateWindow     time.Duration

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "localhost:6379"),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Admin gate: ADMIN_KEY_HASH (bcrypt) wins over the plain ADMIN_KEY
		AdminKey:     getEnv("ADMIN_KEY", "avatar2005"),
		AdminKeyHash: getEnv("ADMIN_KEY_HASH", ""),

		// Registration
		AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", "klu.ac.in"),
		DefaultMaxMembers:  getEnvAsInt("DEFAULT_MAX_MEMBERS", 4),

		// Uploads
		MaxUploadBytes:   int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5242880)),
		ImageMaxWidth:    getEnvAsInt("IMAGE_MAX_WIDTH", 1280),
		ImageJPEGQuality: getEnvAsInt("IMAGE_JPEG_QUALITY", 80),

		// Drafts
		DraftTTL: getEnvAsDuration("DRAFT_TTL", "168h"),

		// Rate limits
		ScanRateLimit:  getEnvAsInt("SCAN_RATE_LIMIT", 60),
		LoginRateLimit: getEnvAsInt("LOGIN_RATE_LIMIT", 10),
		RateWindow:     getEnvAsDuration("RATE_WINDOW", "1m"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
