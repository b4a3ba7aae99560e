// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Lang   string

	Host string
	Port int

	TLSCertFile string
	TLSKeyFile  string

	CORSAllowedOrigins []string
	StrictSecurity     bool
	MaxBodySize        int64

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	RateLimit RateLimitConfig
	Redis     RedisConfig
}

type RateLimitConfig struct {
	Disabled bool
	RPS      float64
	Burst    int
}

// RedisConfig is optional. When empty, rate limits are kept in process.
type RedisConfig struct {
	URL      string // e.g. rediss://default:<token>@host:port
	Addr     string // host:port
	User     string
	Password string
}

func (r RedisConfig) Enabled() bool { return r.URL != "" || r.Addr != "" }

// Load reads .env files (missing files are fine) and then the environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and validates it.
func FromEnv(getenv func(string) string) (Config, error) {
	e := env{get: getenv}
	cfg := Config{
		AppEnv: e.str("APP_ENV", "development"),
		Lang:   e.str("APP_LANG", "id"),

		Host: e.str("HOST", ""),
		Port: e.integer("PORT", 9000),

		TLSCertFile: e.str("TLS_CERT_FILE", ""),
		TLSKeyFile:  e.str("TLS_KEY_FILE", ""),

		CORSAllowedOrigins: e.csv("CORS_ALLOWED_ORIGINS"),
		StrictSecurity:     e.flag("STRICT_SECURITY"),
		MaxBodySize:        int64(e.integer("MAX_BODY_SIZE", 1<<20)),

		ReadTimeout:     e.duration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    e.duration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),

		RateLimit: RateLimitConfig{
			Disabled: e.flag("RATE_LIMIT_DISABLED"),
			RPS:      e.number("RATE_LIMIT_RPS", 20),
			Burst:    e.integer("RATE_LIMIT_BURST", 40),
		},
		Redis: RedisConfig{
			URL:      e.str("UPSTASH_REDIS_URL", ""),
			Addr:     e.str("REDIS_ADDR", ""),
			User:     e.str("REDIS_USER", ""),
			Password: e.str("REDIS_PASSWORD", ""),
		},
	}
	if err := errors.Join(e.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address, e.g. ":9000".
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) TLSEnabled() bool { return c.TLSCertFile != "" }

// Validate fails fast on settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %d out of range", c.Port))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.MaxBodySize <= 0 {
		errs = append(errs, errors.New("MAX_BODY_SIZE must be > 0"))
	}
	if !c.RateLimit.Disabled {
		if c.RateLimit.RPS <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_RPS must be > 0"))
		}
		if c.RateLimit.Burst < 1 {
			errs = append(errs, errors.New("RATE_LIMIT_BURST must be >= 1"))
		}
	}
	switch strings.ToLower(c.Lang) {
	case "id", "en":
	default:
		errs = append(errs, fmt.Errorf("APP_LANG: %q is not one of id, en", c.Lang))
	}
	if c.Redis.URL == "" && c.Redis.Addr != "" && c.Redis.Password != "" && c.Redis.User == "" {
		errs = append(errs, errors.New("REDIS_PASSWORD set without REDIS_USER"))
	}
	return errors.Join(errs...)
}

// Warnings returns non-fatal notes worth logging on startup.
func (c Config) Warnings() []string {
	var warns []string
	prod := strings.EqualFold(c.AppEnv, "production")

	if prod && !c.TLSEnabled() {
		warns = append(warns, "TLS is off in production; terminate TLS upstream or set TLS_CERT_FILE/TLS_KEY_FILE")
	}
	for _, o := range c.CORSAllowedOrigins {
		if o == "*" && prod {
			warns = append(warns, "CORS_ALLOWED_ORIGINS=* in production allows any origin")
		}
	}
	if c.RateLimit.Disabled && prod {
		warns = append(warns, "RATE_LIMIT_DISABLED=1 in production")
	}
	if strings.HasPrefix(c.Redis.URL, "redis://") {
		warns = append(warns, "UPSTASH_REDIS_URL uses redis:// (no TLS). Prefer rediss://")
	}
	if c.Redis.Addr != "" && c.Redis.Password == "" && prod {
		warns = append(warns, "REDIS_ADDR provided without REDIS_PASSWORD; require auth in production")
	}
	if c.WriteTimeout < c.ReadTimeout {
		warns = append(warns, fmt.Sprintf("WRITE_TIMEOUT=%s is shorter than READ_TIMEOUT=%s", c.WriteTimeout, c.ReadTimeout))
	}
	return warns
}

// --- helpers ---

type env struct {
	get  func(string) string
	errs []error
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.get(key)); v != "" {
		return v
	}
	return def
}

func (e *env) integer(key string, def int) int {
	s := strings.TrimSpace(e.get(key))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: not a number: %q", key, s))
		return def
	}
	return n
}

func (e *env) number(key string, def float64) float64 {
	s := strings.TrimSpace(e.get(key))
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: not a number: %q", key, s))
		return def
	}
	return f
}

func (e *env) flag(key string) bool {
	switch strings.ToLower(strings.TrimSpace(e.get(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	s := strings.TrimSpace(e.get(key))
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid duration %q", key, s))
		return def
	}
	return d
}

func (e *env) csv(key string) []string {
	var out []string
	for _, p := range strings.Split(e.get(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
