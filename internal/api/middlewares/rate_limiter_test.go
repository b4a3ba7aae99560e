package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "github.com/5w1tchy/bookshelf-api/internal/api/middlewares"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (mw.Decision, error) {
	return mw.Decision{}, errors.New("redis down")
}
func (failingLimiter) Policy() string { return "broken" }

func TestLocalTokenBucket_Burst(t *testing.T) {
	tb := mw.NewLocalTokenBucket(0.001, 2)
	ctx := context.Background()

	d, err := tb.Allow(ctx, "ip:1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Limit)
	assert.Equal(t, 1, d.Remaining)

	d, _ = tb.Allow(ctx, "ip:1")
	assert.True(t, d.Allowed)

	d, _ = tb.Allow(ctx, "ip:1")
	assert.False(t, d.Allowed)
	assert.Positive(t, d.RetryAfter)

	// Keys are independent.
	d, _ = tb.Allow(ctx, "ip:2")
	assert.True(t, d.Allowed)
}

func TestRateLimit_Blocks(t *testing.T) {
	h := mw.RateLimit(mw.NewLocalTokenBucket(0.001, 1), mw.PerIPKey("tb"), translator(t))(okHandler())

	first := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/books", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	h.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/books", nil)
	req.RemoteAddr = "10.0.0.1:5678"
	req.Header.Set("Accept-Language", "en")
	h.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "Too many requests")

	// Another client still has its own bucket.
	other := httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/books", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2, 10.0.0.254")
	h.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h := mw.RateLimit(failingLimiter{}, mw.PerIPKey("tb"), translator(t))(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/books", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPerIPKey(t *testing.T) {
	key := mw.PerIPKey("tb")

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	assert.Equal(t, "tb:192.0.2.1", key(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "tb:198.51.100.7", key(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "tb:203.0.113.5", key(req))
}

type noScriptError struct{}

func (noScriptError) Error() string { return "NOSCRIPT No matching script. Please use EVAL." }
func (noScriptError) RedisError()   {}

// scriptStub answers the token bucket script with a canned reply. The
// embedded Scripter is nil; only Eval and EvalSha are called.
type scriptStub struct {
	redis.Scripter
	reply    any
	err      error
	noScript bool
	evals    int
	keys     []string
	args     []any
}

func (s *scriptStub) answer(ctx context.Context, keys []string, args []any) *redis.Cmd {
	s.keys, s.args = keys, args
	cmd := redis.NewCmd(ctx)
	if s.err != nil {
		cmd.SetErr(s.err)
		return cmd
	}
	cmd.SetVal(s.reply)
	return cmd
}

func (s *scriptStub) EvalSha(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	if s.noScript {
		cmd := redis.NewCmd(ctx)
		cmd.SetErr(noScriptError{})
		return cmd
	}
	return s.answer(ctx, keys, args)
}

func (s *scriptStub) Eval(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	s.evals++
	return s.answer(ctx, keys, args)
}

func TestRedisTokenBucket_Allow(t *testing.T) {
	tests := []struct {
		name    string
		stub    *scriptStub
		want    mw.Decision
		wantErr error
	}{
		{
			name: "allowed",
			stub: &scriptStub{reply: []any{int64(1), int64(39), int64(0)}},
			want: mw.Decision{Allowed: true, Limit: 40, Remaining: 39},
		},
		{
			name: "blocked",
			stub: &scriptStub{reply: []any{int64(0), int64(0), int64(1500)}},
			want: mw.Decision{Allowed: false, Limit: 40, Remaining: 0, RetryAfter: 1500 * time.Millisecond},
		},
		{
			name: "script not cached falls back to eval",
			stub: &scriptStub{noScript: true, reply: []any{int64(1), int64(5), int64(0)}},
			want: mw.Decision{Allowed: true, Limit: 40, Remaining: 5},
		},
		{
			name:    "short reply",
			stub:    &scriptStub{reply: []any{int64(1), int64(5)}},
			wantErr: mw.ErrUnexpectedReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := mw.NewRedisTokenBucket(tt.stub, 20, 40)

			d, err := tb.Allow(context.Background(), "rl:10.0.0.1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, []string{"rl:10.0.0.1"}, tt.stub.keys)
			assert.Equal(t, []any{"20", "40"}, tt.stub.args)
			if tt.stub.noScript {
				assert.Equal(t, 1, tt.stub.evals)
			}
		})
	}
}

func TestRedisTokenBucket_ErrorsFailOpen(t *testing.T) {
	stub := &scriptStub{err: errors.New("dial tcp: connection refused")}
	tb := mw.NewRedisTokenBucket(stub, 1, 1)

	_, err := tb.Allow(context.Background(), "rl:x")
	require.Error(t, err)

	stub.err = nil
	stub.reply = []any{"not", "a", "number"}
	_, err = tb.Allow(context.Background(), "rl:x")
	require.Error(t, err)

	h := mw.RateLimit(tb, mw.PerIPKey("rl"), translator(t))(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/books", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
