package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	client := &Client{store: fake}

	allowed, count, err := client.FixedWindowAllow(ctx, "webhook", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 1 {
		t.Fatalf("first hit should pass with count 1, got allowed=%v count=%d", allowed, count)
	}
	if len(fake.expireCalls) != 1 {
		t.Fatalf("first increment should stamp the window TTL")
	}

	allowed, count, err = client.FixedWindowAllow(ctx, "webhook", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 2 {
		t.Fatalf("second hit should pass with count 2, got allowed=%v count=%d", allowed, count)
	}
	if len(fake.expireCalls) != 1 {
		t.Fatalf("TTL must only be stamped once per window")
	}

	allowed, _, err = client.FixedWindowAllow(ctx, "webhook", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("third hit should exceed the limit of 2")
	}
}

func TestIdempotencyLifecycle(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	client := &Client{store: fake}

	key := client.IdempotencyKey("orders", "req-1")
	first, err := client.SetNX(ctx, key, "pending", time.Minute)
	if err != nil {
		t.Fatalf("setnx failed: %v", err)
	}
	if !first {
		t.Fatalf("first claim should win")
	}

	second, err := client.SetNX(ctx, key, "pending", time.Minute)
	if err != nil {
		t.Fatalf("setnx failed: %v", err)
	}
	if second {
		t.Fatalf("duplicate claim should lose")
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	cases := map[string]string{
		client.IdempotencyKey("orders", "id"): "fc:idempotency:orders:id",
		client.RateLimitKey("webhook"):        "fc:rate_limit:webhook",
		client.CounterKey("hits"):             "fc:counter:hits",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("key %q, want %q", got, want)
		}
	}
}

// fakeRedis implements commandRunner over plain maps.
type fakeRedis struct {
	data        map[string]string
	counters    map[string]int64
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data:     make(map[string]string),
		counters: make(map[string]int64),
	}
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, exists := f.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counters[key]++
	return redis.NewIntResult(f.counters[key], nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expireCalls = append(f.expireCalls, expireCall{key: key, ttl: ttl})
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
