package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Mode       string
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret       string
	JWTTTL          time.Duration
	ResetSecret     string
	ResetTokenTTL   time.Duration
	AuthRateLimit   float64
	CORSAllowOrigin []string

	// Optional integrations. Empty values disable the component.
	RabbitURL     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	StorageDriver   string
	UploadDir       string
	UploadURLPrefix string
	AWSRegion       string
	AWSAccessKeyID  string
	AWSSecretKey    string
	AWSBucket       string
	AWSBaseURL      string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	ResetURL     string

	LogFile string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	cfg := &Config{
		Mode:       getEnv("APP_MODE", ModeDevelopment),
		ServerPort: getEnv("SERVER_PORT", "5000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "real_estate_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:       getEnv("JWT_SECRET", "your_jwt_secret_key"),
		JWTTTL:          getDuration("JWT_EXPIRES_IN", 24*time.Hour),
		ResetSecret:     getEnv("RESET_TOKEN_SECRET", "your_reset_secret_key"),
		ResetTokenTTL:   getDuration("RESET_TOKEN_TTL", 15*time.Minute),
		AuthRateLimit:   getFloat("AUTH_RATE_LIMIT", 5),
		CORSAllowOrigin: strings.Split(getEnv("CORS_ALLOW_ORIGINS", "*"), ","),

		RabbitURL:     getEnv("RABBITMQ_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),

		StorageDriver:   getEnv("STORAGE_DRIVER", StorageLocal),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads/properties"),
		UploadURLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads/properties"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		AWSAccessKeyID:  getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSBucket:       getEnv("AWS_S3_BUCKET", ""),
		AWSBaseURL:      getEnv("AWS_S3_BASE_URL", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@realestate.local"),
		ResetURL:     getEnv("RESET_PASSWORD_URL", "http://localhost:3000/reset-password"),

		LogFile: getEnv("LOG_FILE", ""),
	}

	return cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go durations ("15m", "24h") plus a day suffix ("7d").
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if strings.HasSuffix(raw, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
