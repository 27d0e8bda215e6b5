package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultEngineAPIURL = "https://stockfish.online/api/v2/analyze"

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"https://localhost:5173",
	"https://federacionajedrezolavarria.onrender.com",
}

// ObjectStoreConfig описывает S3-совместимое хранилище (Cloudflare R2, Backblaze B2, MinIO ...).
type ObjectStoreConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL        string
	ServerPort         int
	AllowedOrigins     []string
	RedisURL           string
	CacheTTL           time.Duration
	RateLimitPerMinute int
	EngineAPIURL       string

	Images ObjectStoreConfig
	PGN    ObjectStoreConfig
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	port, err := intFromEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	rateLimit, err := intFromEnv("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return nil, err
	}
	if rateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", rateLimit)
	}

	cacheTTL := 5 * time.Minute
	if ttlStr := os.Getenv("CACHE_TTL"); ttlStr != "" {
		cacheTTL, err = time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL environment variable: %w", err)
		}
	}

	origins := defaultAllowedOrigins
	if originsStr := os.Getenv("CORS_ALLOWED_ORIGINS"); originsStr != "" {
		origins = splitList(originsStr)
	}

	engineURL := os.Getenv("ENGINE_API_URL")
	if engineURL == "" {
		engineURL = defaultEngineAPIURL
	}

	images, err := objectStoreFromEnv("IMAGES")
	if err != nil {
		return nil, err
	}
	pgn, err := objectStoreFromEnv("PGN")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		ServerPort:         port,
		AllowedOrigins:     origins,
		RedisURL:           os.Getenv("REDIS_URL"),
		CacheTTL:           cacheTTL,
		RateLimitPerMinute: rateLimit,
		EngineAPIURL:       engineURL,
		Images:             images,
		PGN:                pgn,
	}

	return cfg, nil
}

func objectStoreFromEnv(prefix string) (ObjectStoreConfig, error) {
	get := func(name string) string { return os.Getenv(prefix + "_S3_" + name) }

	cfg := ObjectStoreConfig{
		Endpoint:        get("ENDPOINT"),
		Region:          get("REGION"),
		AccessKeyID:     get("ACCESS_KEY_ID"),
		SecretAccessKey: get("SECRET_ACCESS_KEY"),
		BucketName:      get("BUCKET"),
		PublicBaseURL:   get("PUBLIC_BASE_URL"),
	}
	if cfg.Region == "" {
		cfg.Region = "auto"
	}

	missing := make([]string, 0)
	for name, v := range map[string]string{
		"ENDPOINT":          cfg.Endpoint,
		"ACCESS_KEY_ID":     cfg.AccessKeyID,
		"SECRET_ACCESS_KEY": cfg.SecretAccessKey,
		"BUCKET":            cfg.BucketName,
		"PUBLIC_BASE_URL":   cfg.PublicBaseURL,
	} {
		if v == "" {
			missing = append(missing, prefix+"_S3_"+name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return ObjectStoreConfig{}, fmt.Errorf("object storage is not configured, missing: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func intFromEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
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
