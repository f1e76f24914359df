package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names accepted by the BACKEND switch.
const (
	BackendMemory     = "memory"
	BackendPostgres   = "postgres"
	BackendClickHouse = "clickhouse"
)

type Config struct {
	Port    string
	Backend string

	// Postgres (BACKEND=postgres)
	DatabaseURL string

	// ClickHouse (BACKEND=clickhouse)
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string

	MaxUploadBytes int64
}

// LoadConfig loads the environment variables and returns the config.
// Backend selection is resolved here, once at startup, never per-request.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Backend:            getEnv("BACKEND", BackendMemory),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		ClickHouseAddr:     getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "pdf_scan"),
		ClickHouseUser:     getEnv("CLICKHOUSE_USER", "default"),
		ClickHousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),
		MaxUploadBytes:     getEnvInt64("MAX_UPLOAD_BYTES", 10*1024*1024),
	}

	switch cfg.Backend {
	case BackendMemory, BackendClickHouse:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			log.Fatal("DATABASE_URL not set")
		}
	default:
		log.Fatalf("unknown BACKEND %q (want memory, postgres or clickhouse)", cfg.Backend)
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt64(key string, def int64) int64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
