package config

import (
	"os"
	"strconv"
	"time"

	"todo_webapp/internal/logger"

	"github.com/joho/godotenv"
)

// Mode selects which backing stores the coordinator writes to.
const (
	ModeDocument   = "document"
	ModeRelational = "relational"
	ModeDual       = "dual"
)

// RateLimit is one route-class limit: at most Max requests per Window.
type RateLimit struct {
	Max    int
	Window time.Duration
}

type Config struct {
	AppPort      string
	DatabaseMode string

	PostgresURL string

	SurrealURL       string
	SurrealNamespace string
	SurrealDatabase  string
	SurrealUser      string
	SurrealPass      string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Route-class rate limits, applied in routes.go
	GeneralLimit RateLimit
	AuthLimit    RateLimit
	TokenLimit   RateLimit
	CRUDLimit    RateLimit
	StrictLimit  RateLimit
}

// Load reads configuration from env (and .env when present).
func Load() *Config {
	_ = godotenv.Load()

	mode := os.Getenv("DATABASE_MODE")
	switch mode {
	case ModeDocument, ModeRelational, ModeDual:
	case "":
		mode = ModeDual
	default:
		logger.Fatal("invalid DATABASE_MODE", "mode", mode)
	}

	pgURL := os.Getenv("DATABASE_URL")
	if pgURL == "" && mode != ModeDocument {
		logger.Fatal("DATABASE_URL is not set")
	}

	surrealURL := os.Getenv("SURREALDB_URL")
	if surrealURL == "" && mode != ModeRelational {
		logger.Fatal("SURREALDB_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	jwtTTL := time.Hour
	if v := os.Getenv("JWT_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			jwtTTL = time.Duration(n) * time.Second
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:      port,
		DatabaseMode: mode,

		PostgresURL: pgURL,

		SurrealURL:       surrealURL,
		SurrealNamespace: envOr("SURREALDB_NAMESPACE", "todo"),
		SurrealDatabase:  envOr("SURREALDB_DATABASE", "todo"),
		SurrealUser:      envOr("SURREALDB_USER", "root"),
		SurrealPass:      envOr("SURREALDB_PASS", "root"),

		JWTSecret: jwtSecret,
		JWTTTL:    jwtTTL,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  envOr("GOOGLE_CALLBACK_URL", "http://localhost:8080/oauth/google/callback"),

		GeneralLimit: limitOr("GENERAL", 100, 15*time.Minute),
		AuthLimit:    limitOr("AUTH", 5, 15*time.Minute),
		TokenLimit:   limitOr("TOKEN", 10, time.Hour),
		CRUDLimit:    limitOr("CRUD", 50, 10*time.Minute),
		StrictLimit:  limitOr("STRICT", 3, 5*time.Minute),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// limitOr reads <PREFIX>_RATE_LIMIT / <PREFIX>_RATE_WINDOW_SECONDS with
// safe defaults.
func limitOr(prefix string, max int, window time.Duration) RateLimit {
	if v := os.Getenv(prefix + "_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			max = n
		}
	}
	if v := os.Getenv(prefix + "_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			window = time.Duration(n) * time.Second
		}
	}
	return RateLimit{Max: max, Window: window}
}
