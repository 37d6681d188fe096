package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	//App
	Env string // dev / staging / prod
	//HTTP
	HTTPAddr string
	//Auth / Security
	JWTSecret      string
	AccessTokenTTL time.Duration

	// Infrastructure
	DBAddr    string
	RedisAddr string
	RabbitURL string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Email verification flow
	VerifyEmailBaseURL  string
	VerifyEmailTokenTTL time.Duration

	// Abuse protection (hits per window on register / login)
	RateLimitRegister int
	RateLimitLogin    int
	RateLimitWindow   time.Duration

	// HTTP hardening
	CORSAllowedOrigins []string
	BodyMaxBytes       int64

	// Optional dev seed account
	SeedAdminEmail    string
	SeedAdminPassword string
}

func (c *Config) IsDev() bool { return c.Env == "dev" }

func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}
	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	// optional with defaults
	ttl, err := getDuration("ACCESS_TOKEN_TTL", 60*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = ttl

	// Must include `token=` because the service appends the token.
	cfg.VerifyEmailBaseURL = os.Getenv("VERIFY_EMAIL_BASE_URL")
	if cfg.VerifyEmailBaseURL == "" {
		return nil, fmt.Errorf("missing required env var: VERIFY_EMAIL_BASE_URL")
	}
	if !strings.Contains(cfg.VerifyEmailBaseURL, "token=") {
		return nil, fmt.Errorf("VERIFY_EMAIL_BASE_URL must contain `token=`")
	}

	vet, err := getDuration("VERIFY_EMAIL_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.VerifyEmailTokenTTL = vet

	// Infrastructure dependencies.
	// The database is required at startup in every environment; the service
	// cannot operate without it. Redis and RabbitMQ stay optional in dev so
	// a laptop boot does not need the full compose stack.

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" && !cfg.IsDev() {
		return nil, fmt.Errorf("missing required env var: REDIS_ADDR")
	}

	cfg.RabbitURL = os.Getenv("RABBIT_URL")
	if cfg.RabbitURL == "" && !cfg.IsDev() {
		return nil, fmt.Errorf("missing required env var: RABBIT_URL")
	}

	//Timeout values are optional and have a default value if not
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

	reg, err := getInt("RATE_LIMIT_REGISTER", 5)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitRegister = reg

	lgn, err := getInt("RATE_LIMIT_LOGIN", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitLogin = lgn

	rlw, err := getDuration("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow = rlw

	// Comma-separated origin list. "*" is fine for dev; deployments set the
	// real frontend origins.
	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	body, err := getInt64("REQUEST_BODY_MAX_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}
	cfg.BodyMaxBytes = body

	// Dev seed account. Both vars must be set together.
	cfg.SeedAdminEmail = os.Getenv("SEED_ADMIN_EMAIL")
	cfg.SeedAdminPassword = os.Getenv("SEED_ADMIN_PASSWORD")
	if (cfg.SeedAdminEmail == "") != (cfg.SeedAdminPassword == "") {
		return nil, fmt.Errorf("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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

func getInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
