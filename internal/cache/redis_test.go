package cache

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis answers GET/SET/PING from a map inside a client hook, so the
// client never dials.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string][]any
	err  error
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(context.Context, string, string) (net.Conn, error) {
		return nil, errors.New("dial not expected")
	}
}

func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.err != nil {
			return f.err
		}
		args := cmd.Args()
		switch cmd.Name() {
		case "ping":
			cmd.(*redis.StatusCmd).SetVal("PONG")
		case "get":
			v, ok := f.data[args[1].(string)]
			if !ok {
				return redis.Nil
			}
			cmd.(*redis.StringCmd).SetVal(v)
		case "set":
			key := args[1].(string)
			f.data[key] = string(args[2].([]byte))
			f.ttls[key] = args[3:]
			cmd.(*redis.StatusCmd).SetVal("OK")
		default:
			return errors.New("unexpected command " + cmd.Name())
		}
		return nil
	}
}

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newFakeRedis(t *testing.T, prefix string) (*Redis, *fakeRedis) {
	t.Helper()
	r := NewRedis(RedisOptions{Addr: "127.0.0.1:1", KeyPrefix: prefix})
	f := &fakeRedis{data: map[string]string{}, ttls: map[string][]any{}}
	r.cli.AddHook(f)
	t.Cleanup(func() { _ = r.Close() })
	return r, f
}

func TestRedis_GetSet(t *testing.T) {
	ctx := context.Background()
	r, f := newFakeRedis(t, "")

	if v, ok, err := r.Get(ctx, "bars:SPY:2025-09-01:2025-09-12"); err != nil || ok || v != nil {
		t.Fatalf("missing key must be a clean miss, got %q %v %v", v, ok, err)
	}

	if err := r.Set(ctx, "bars:SPY:2025-09-01:2025-09-12", []byte(`[{"t":1,"v":2}]`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := f.data["volseason:bars:SPY:2025-09-01:2025-09-12"]; !ok {
		t.Fatalf("key not stored under the default prefix: %v", f.data)
	}
	if ttl := f.ttls["volseason:bars:SPY:2025-09-01:2025-09-12"]; len(ttl) != 2 || ttl[0] != "ex" {
		t.Fatalf("expected an expiring SET, got %v", ttl)
	}

	v, ok, err := r.Get(ctx, "bars:SPY:2025-09-01:2025-09-12")
	if err != nil || !ok || string(v) != `[{"t":1,"v":2}]` {
		t.Fatalf("get: %q %v %v", v, ok, err)
	}
}

func TestRedis_NonPositiveTTLIsNoop(t *testing.T) {
	r, f := newFakeRedis(t, "test:")
	if err := r.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(f.data) != 0 {
		t.Fatalf("nothing should be written, got %v", f.data)
	}
}

func TestRedis_Errors(t *testing.T) {
	ctx := context.Background()
	r, f := newFakeRedis(t, "test:")

	if err := r.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	f.err = errors.New("connection refused")
	if _, ok, err := r.Get(ctx, "k"); err == nil || ok {
		t.Fatalf("backend failure must surface as an error, got ok=%v err=%v", ok, err)
	}
	if err := r.Set(ctx, "k", []byte("v"), time.Minute); err == nil {
		t.Fatalf("expected set error")
	}
	if err := r.Ping(ctx); err == nil || !strings.Contains(err.Error(), "refused") {
		t.Fatalf("expected ping error, got %v", err)
	}
}
