package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	APIBase     string
	APIRPS      int
	MetricsAddr string
	StubAddr    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	SessionFile string
	AdminUser   string
	AdminPass   string
	SeedWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		APIBase:     env("AGENCY_API_BASE", "http://localhost:4000/api"),
		APIRPS:      atoi("AGENCY_API_RPS", 10),
		MetricsAddr: env("METRICS_ADDR", ""),
		StubAddr:    env("STUB_ADDR", ":4000"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SessionFile: env("SESSION_FILE", ".atlas/session.json"),
		AdminUser:   env("ADMIN_USERNAME", "admin"),
		AdminPass:   env("ADMIN_PASSWORD", ""),
		SeedWorkers: atoi("SEED_WORKERS", 4),
	}
	if c.AdminPass == "" {
		log.Warn().Msg("ADMIN_PASSWORD is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
