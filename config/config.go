package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MailerConfig holds the email provider settings.
type MailerConfig struct {
	Provider       string // "ses" or "noop"
	FromAddress    string
	FromName       string
	AdminEmail     string
	SESRegion      string
	SESAccessKeyID string
	SESSecretKey   string
}

// StorageConfig holds the S3-compatible object store settings for logo assets.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}

// Enabled reports whether an object store is configured.
func (s StorageConfig) Enabled() bool { return s.Endpoint != "" }

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string

	MongoURI  string
	MongoDB   string
	RedisAddr string
	CacheTTL  time.Duration

	CORSAllowedOrigins []string
	JWTSecret          string
	TokenExpiry        time.Duration

	// Rate limit for the public submission and mail endpoints, per client IP.
	RateLimitRPS   float64
	RateLimitBurst int

	LocationsURL string

	Mailer  MailerConfig
	Storage StorageConfig
}

// Load loads configuration from environment variables.
// It attempts to load from a .env file when not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               getEnv("PORT", "8080"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:            getEnv("MONGO_DB", "serraturismo"),
		RedisAddr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		CacheTTL:           getDuration("CACHE_TTL", 30*time.Second),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenExpiry:        getDuration("TOKEN_EXPIRY", 12*time.Hour),
		RateLimitRPS:       getFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 5),
		LocationsURL:       os.Getenv("LOCATIONS_URL"),
		Mailer: MailerConfig{
			Provider:       getEnv("MAIL_PROVIDER", "noop"),
			FromAddress:    os.Getenv("MAIL_FROM_ADDRESS"),
			FromName:       getEnv("MAIL_FROM_NAME", "Serra Turismo"),
			AdminEmail:     os.Getenv("MAIL_ADMIN_RECIPIENT"),
			SESRegion:      getEnv("SES_REGION", "us-east-1"),
			SESAccessKeyID: os.Getenv("SES_ACCESS_KEY_ID"),
			SESSecretKey:   os.Getenv("SES_SECRET_ACCESS_KEY"),
		},
		Storage: StorageConfig{
			Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
			AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
			Bucket:    getEnv("STORAGE_BUCKET", "serraturismo-assets"),
			Region:    os.Getenv("STORAGE_REGION"),
			UseSSL:    getBool("STORAGE_USE_SSL", true),
			PublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
