package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// InsecureDevSecret is the signing-secret fallback used when JWT_SECRET is
// unset. It exists so a fresh checkout runs; it must never reach production.
const InsecureDevSecret = "change_me_secret"

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	JWTSecret  string
	BcryptCost int
	// AccessTokenTTL of zero disables the exp claim entirely; issued tokens
	// then never expire, which is the documented base behavior.
	AccessTokenTTL time.Duration

	// Infrastructure
	DBAddr string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// Load reads configuration from the environment once at startup.
// A .env file is optional; real env vars win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":"+getEnv("PORT", "3001")),
	}

	cfg.JWTSecret = getEnv("JWT_SECRET", InsecureDevSecret)

	cost, err := getInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	if cost < 10 {
		return nil, fmt.Errorf("BCRYPT_COST must be >= 10, got %d", cost)
	}
	cfg.BcryptCost = cost

	ttl, err := getDuration("ACCESS_TOKEN_TTL", 0)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = ttl

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

// UsingInsecureSecret reports whether the dev fallback secret is in use.
// Bootstrap logs a loud warning when it is.
func (c *Config) UsingInsecureSecret() bool {
	return c.JWTSecret == InsecureDevSecret
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
