package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	StoreDriver      string // memory|mysql|firestore
	MySQLDSN         string
	FirestoreProject string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	BundledCatalogPath string

	JWTSecret string
	JWTTTL    time.Duration

	IdentityBase string
	IdentityKey  string
	IdentityRPS  int

	KafkaBroker string
	KafkaTopic  string

	AllowedOrigins []string
	SeedWorkers    int
}

// Load reads the environment, after merging a .env file if one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env present but unreadable")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:             env("APP_ENV", "prod"),
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		MetricsAddr:        env("METRICS_ADDR", ""),
		StoreDriver:        strings.ToLower(env("STORE_DRIVER", "memory")),
		MySQLDSN:           env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travelnest?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		FirestoreProject:   env("FIRESTORE_PROJECT", ""),
		RedisAddr:          env("REDIS_ADDR", ""),
		RedisPass:          env("REDIS_PASSWORD", ""),
		RedisDB:            atoi("REDIS_DB", 0),
		CacheTTL:           time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		BundledCatalogPath: env("BUNDLED_CATALOG_PATH", ""),
		JWTSecret:          env("JWT_SECRET", ""),
		JWTTTL:             duration("JWT_TTL", 24*time.Hour),
		IdentityBase:       env("IDENTITY_BASE_URL", "https://identitytoolkit.googleapis.com/v1"),
		IdentityKey:        env("IDENTITY_API_KEY", ""),
		IdentityRPS:        atoi("IDENTITY_RPS", 5),
		KafkaBroker:        env("KAFKA_BROKER", ""),
		KafkaTopic:         env("KAFKA_TOPIC", "bookings.updated"),
		AllowedOrigins:     list("ALLOWED_ORIGINS", []string{"*"}),
		SeedWorkers:        atoi("SEED_WORKERS", 4),
	}
	if c.JWTSecret == "" && c.IsDev() {
		c.JWTSecret = devJWTSecret
		log.Warn().Msg("JWT_SECRET is empty, using an insecure development secret")
	}
	if c.IdentityKey == "" {
		log.Info().Msg("IDENTITY_API_KEY is empty, credentials are kept in the document store")
	}
	return c
}

const devJWTSecret = "dev-secret"

// IsDev reports whether APP_ENV selects the development profile.
func (c Config) IsDev() bool { return c.AppEnv == "dev" || c.AppEnv == "development" }

// Validate reports settings the API cannot run with. Outside dev a signing
// secret must be provided.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", c.AppEnv)
	}
	if !c.IsDev() && c.JWTSecret == devJWTSecret {
		return fmt.Errorf("JWT_SECRET uses the development value under APP_ENV=%s", c.AppEnv)
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// duration accepts Go duration syntax ("90m") or plain seconds.
func duration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Warn().Str("key", k).Str("value", v).Msg("not a duration, using default")
	return def
}

func list(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
