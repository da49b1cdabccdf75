// Env loader
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string
	SwaggerHost string

	AlQuranBaseURL string
	AladhanBaseURL string
	TafsirBaseURL  string

	UpstreamTimeout    time.Duration
	UpstreamMaxRetries int
	UpstreamRateLimit  float64

	CacheTTL       time.Duration
	WarmupInterval time.Duration
	DefaultCity    string
	DefaultCountry string
}

// LoadConfig loads environment variables from the .env file
func LoadConfig() *Config {

	appEnv := os.Getenv("APP_ENV")

	switch appEnv {
	case "production":
		if err := godotenv.Load(".env.production"); err == nil {
			fmt.Println("Loaded .env.production")
		}
	default:
		if err := godotenv.Load(".env.development"); err == nil {
			fmt.Println("Loaded .env.development")
		}
	}

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "5000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		SwaggerHost: getEnv("SWAGGER_HOST", "localhost:5000"),

		AlQuranBaseURL: getEnv("ALQURAN_BASE_URL", "https://api.alquran.cloud/v1"),
		AladhanBaseURL: getEnv("ALADHAN_BASE_URL", "https://api.aladhan.com/v1"),
		TafsirBaseURL:  getEnv("TAFSIR_BASE_URL", "http://api.quran-tafseer.com"),

		UpstreamTimeout:    getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamMaxRetries: getInt("UPSTREAM_MAX_RETRIES", 2),
		UpstreamRateLimit:  getFloat("UPSTREAM_RATE_LIMIT", 10),

		CacheTTL:       getDuration("CACHE_TTL", 6*time.Hour),
		WarmupInterval: getDuration("WARMUP_INTERVAL", time.Hour),
		DefaultCity:    getEnv("DEFAULT_CITY", "London"),
		DefaultCountry: getEnv("DEFAULT_COUNTRY", "United Kingdom"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
			getEnv("BLUEPRINT_DB_USERNAME", "postgres"),
			getEnv("BLUEPRINT_DB_PASSWORD", ""),
			getEnv("BLUEPRINT_DB_HOST", "localhost"),
			getEnv("BLUEPRINT_DB_PORT", "5432"),
			getEnv("BLUEPRINT_DB_DATABASE", "quran_verse"),
			getEnv("BLUEPRINT_DB_SCHEMA", "public"),
		)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
