package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Load when no model credential is configured.
var ErrMissingAPIKey = errors.New("missing model credential: set GEMINI_API_KEY (or GOOGLE_API_KEY)")

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Raster  RasterConfig
	Session SessionConfig
	Report  ReportConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	RateLimit   float64
	RateBurst   int
}

type StorageConfig struct {
	MaxFileSize int64
}

type RasterConfig struct {
	Backend      string
	Workers      int
	PdftoppmPath string
	DPI          int
	JPEGQuality  int
	Timeout      time.Duration
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type ReportConfig struct {
	ChromePath     string
	Timeout        time.Duration
	MaxConcurrency int
}

// Load reads the environment (and an optional .env file). It fails fast when
// the model credential is absent.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.3),
			RateLimit:   getEnvAsFloat64("GEMINI_RATE_LIMIT", 0),
			RateBurst:   getEnvAsInt("GEMINI_RATE_BURST", 1),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Raster: RasterConfig{
			Backend:      getEnv("RASTER_BACKEND", "pdfium"),
			Workers:      getEnvAsInt("RASTER_WORKERS", 2),
			PdftoppmPath: getEnv("PDFTOPPM_PATH", "pdftoppm"),
			DPI:          getEnvAsInt("RASTER_DPI", 150),
			JPEGQuality:  getEnvAsInt("JPEG_QUALITY", 90),
			Timeout:      getEnvAsDuration("RASTER_TIMEOUT", "30s"),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("SESSION_TTL", "1h"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "5m"),
		},
		Report: ReportConfig{
			ChromePath:     getEnv("CHROME_PATH", ""),
			Timeout:        getEnvAsDuration("REPORT_TIMEOUT", "60s"),
			MaxConcurrency: getEnvAsInt("REPORT_MAX_CONCURRENCY", 2),
		},
	}

	if cfg.Gemini.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
