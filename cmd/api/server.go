package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mw "github.com/5w1tchy/bookshelf-api/internal/api/middlewares"
	"github.com/5w1tchy/bookshelf-api/internal/api/router"
	"github.com/5w1tchy/bookshelf-api/internal/config"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	storebooks "github.com/5w1tchy/bookshelf-api/internal/store/books"
	"github.com/5w1tchy/bookshelf-api/internal/validate"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		log.Fatalf("[server] config: %v", err)
	}
	for _, w := range cfg.Warnings() {
		log.Printf("[server] WARNING: %s", w)
	}

	tr, err := i18n.New(cfg.Lang)
	if err != nil {
		log.Fatalf("[server] i18n: %v", err)
	}

	store := storebooks.New()
	mux := router.Router(router.Deps{
		Store:      store,
		Validator:  validate.New(),
		Translator: tr,
	})

	limiter, closeLimiter := newLimiter(cfg)
	defer closeLimiter()

	handler := router.Secure(mux, tr, router.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		StrictSecurity: cfg.StrictSecurity,
		MaxBodySize:    cfg.MaxBodySize,
		Limiter:        limiter,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s (env=%s, lang=%s, tls=%t)", cfg.Addr(), cfg.AppEnv, cfg.Lang, cfg.TLSEnabled())
		if cfg.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] %v", err)
		}
	case <-ctx.Done():
		log.Printf("[server] shutting down (%d books in memory)", store.Len())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}
}

// newLimiter picks the shared Redis bucket when Redis is configured and
// reachable, and the in-process bucket otherwise.
func newLimiter(cfg config.Config) (mw.Limiter, func()) {
	noop := func() {}
	if cfg.RateLimit.Disabled {
		log.Println("[RateLimit] disabled")
		return nil, noop
	}
	if !cfg.Redis.Enabled() {
		log.Printf("[RateLimit] in-process token bucket (%.1f rps, burst %d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		return mw.NewLocalTokenBucket(cfg.RateLimit.RPS, cfg.RateLimit.Burst), noop
	}

	rdb, err := newRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("[RateLimit] %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[RateLimit] Redis unreachable (%v); using in-process token bucket", err)
		_ = rdb.Close()
		return mw.NewLocalTokenBucket(cfg.RateLimit.RPS, cfg.RateLimit.Burst), noop
	}
	log.Println("[RateLimit] connected to Redis")
	return mw.NewRedisTokenBucket(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst), func() { _ = rdb.Close() }
}

func newRedisClient(rc config.RedisConfig) (*redis.Client, error) {
	if rc.URL != "" {
		opt, err := redis.ParseURL(rc.URL) // rediss://default:<token>@host:port
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTASH_REDIS_URL: %w", err)
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return redis.NewClient(opt), nil
	}

	opt := &redis.Options{
		Addr:         rc.Addr,
		Username:     rc.User,
		Password:     rc.Password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	// Managed Redis with credentials speaks TLS.
	if rc.Password != "" {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opt), nil
}
