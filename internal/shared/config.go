package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	TranslateBase string
	TranslateUA   string
	TranslateRPS  int
	BackfillDelay time.Duration
	Scheme        string
	CacheTTL      time.Duration
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
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/millcreek?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		TranslateBase: env("TRANSLATE_BASE_URL", "https://api.mymemory.translated.net"),
		// The public endpoint rejects non-browser clients in some regions.
		TranslateUA:  env("TRANSLATE_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"),
		TranslateRPS: atoi("TRANSLATE_RPS", 1),

		BackfillDelay: time.Duration(atoi("BACKFILL_DELAY_MS", 1000)) * time.Millisecond,
		Scheme:        env("SENTIMENT_SCHEME", "5"),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.Scheme != "2" && c.Scheme != "5" {
		log.Warn().Str("scheme", c.Scheme).Msg("unknown SENTIMENT_SCHEME, falling back to 5-bucket")
		c.Scheme = "5"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
