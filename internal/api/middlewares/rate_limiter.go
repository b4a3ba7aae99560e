package middlewares

import (
	"context"
	"errors"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/i18n"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// --------- Key helpers ---------

type KeyFunc func(r *http.Request) string

// PerIPKey buckets requests by client address.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For may hold a list: client, proxy1, proxy2...
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// --------- Limiter ---------

// ErrUnexpectedReply means the token bucket script answered in an unknown shape.
var ErrUnexpectedReply = errors.New("rate limiter: unexpected reply")

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Policy() string
}

// RateLimit rejects requests over the limit with 429. Limiter errors fail open.
func RateLimit(l Limiter, keyFn KeyFunc, tr *i18n.Translator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			d, err := l.Allow(r.Context(), key)
			if err != nil {
				log.Printf("[RateLimit] %s error: %v (allowing request)", l.Policy(), err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Policy", l.Policy())
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, d.Remaining)))

			if !d.Allowed {
				sec := int64(math.Ceil(d.RetryAfter.Seconds()))
				if sec < 1 {
					sec = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(sec, 10))
				log.Printf("[RateLimit] Blocked request from %s (key=%s). Retry after %ds", r.RemoteAddr, key, sec)

				httpx.Fail(w, http.StatusTooManyRequests, tr.Text(r.Header.Get("Accept-Language"), i18n.TooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --------- Token Bucket (Redis + Lua) ---------

const tokenBucketLua = `
-- KEYS[1] = bucket key (hash with fields: tokens, ts)
-- ARGV[1] = rate per second (float)
-- ARGV[2] = capacity (int)
-- Returns: {allowed (1/0), remaining_tokens (int), retry_after_ms (int)}
local key   = KEYS[1]
local rate  = tonumber(ARGV[1])
local cap   = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = cap
  ts = now_ms
end

local delta_ms = now_ms - ts
if delta_ms > 0 then
  tokens = math.min(cap, tokens + (delta_ms / 1000.0) * rate)
end

local allowed = 0
local retry_after_ms = 0
if tokens >= 1.0 then
  tokens = tokens - 1.0
  allowed = 1
else
  retry_after_ms = math.ceil((1.0 - tokens) * 1000.0 / rate)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil((cap / rate) * 1000.0))

return {allowed, math.floor(tokens), retry_after_ms}
`

// RedisTokenBucket shares one bucket per key across every API instance.
type RedisTokenBucket struct {
	rdb      redis.Scripter
	ratePerS float64
	burst    int
	script   *redis.Script
}

func NewRedisTokenBucket(rdb redis.Scripter, ratePerSecond float64, burst int) *RedisTokenBucket {
	return &RedisTokenBucket{
		rdb:      rdb,
		ratePerS: ratePerSecond,
		burst:    burst,
		script:   redis.NewScript(tokenBucketLua),
	}
}

func (tb *RedisTokenBucket) Policy() string { return "token-bucket" }

func (tb *RedisTokenBucket) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := tb.script.Run(ctx, tb.rdb, []string{key},
		strconv.FormatFloat(tb.ratePerS, 'f', -1, 64),
		strconv.Itoa(tb.burst),
	).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	if len(res) != 3 {
		return Decision{}, ErrUnexpectedReply
	}
	return Decision{
		Allowed:    res[0] == 1,
		Limit:      tb.burst,
		Remaining:  int(res[1]),
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}

// --------- Token Bucket (in process) ---------

const (
	localSweepEvery = 1024
	localIdleTTL    = 10 * time.Minute
)

type localEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// LocalTokenBucket keeps one x/time/rate limiter per key in memory.
type LocalTokenBucket struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	limit   rate.Limit
	burst   int
	calls   int
	now     func() time.Time
}

func NewLocalTokenBucket(ratePerSecond float64, burst int) *LocalTokenBucket {
	return &LocalTokenBucket{
		entries: make(map[string]*localEntry),
		limit:   rate.Limit(ratePerSecond),
		burst:   burst,
		now:     time.Now,
	}
}

func (tb *LocalTokenBucket) Policy() string { return "token-bucket-local" }

func (tb *LocalTokenBucket) Allow(_ context.Context, key string) (Decision, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	tb.calls++
	if tb.calls%localSweepEvery == 0 {
		for k, e := range tb.entries {
			if now.Sub(e.seen) > localIdleTTL {
				delete(tb.entries, k)
			}
		}
	}

	e, ok := tb.entries[key]
	if !ok {
		e = &localEntry{lim: rate.NewLimiter(tb.limit, tb.burst)}
		tb.entries[key] = e
	}
	e.seen = now

	d := Decision{Limit: tb.burst, Allowed: e.lim.AllowN(now, 1)}
	tokens := e.lim.TokensAt(now)
	d.Remaining = int(math.Floor(tokens))
	if !d.Allowed && tb.limit > 0 {
		d.RetryAfter = time.Duration((1 - tokens) / float64(tb.limit) * float64(time.Second))
	}
	return d, nil
}
