package cache

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}

	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	for _, err := range []error{netErr, io.EOF} {
		got := classify(err)
		if !IsRetryable(got) {
			t.Errorf("classify(%v) should be retryable", err)
		}
		if !errors.Is(got, ErrNetwork) || !errors.Is(got, err) {
			t.Errorf("classify(%v) = %v, should wrap ErrNetwork and the cause", err, got)
		}
	}

	plain := errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	if IsRetryable(classify(plain)) {
		t.Error("server errors should not be retried")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisCache should reject an invalid url")
	}
}

// TestRedisCache runs against a live server when COLGRAPH_TEST_REDIS_URL is set.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("COLGRAPH_TEST_REDIS_URL")
	if url == "" {
		t.Skip("COLGRAPH_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}

	key := "colgraph:test:" + t.Name()

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, _, err := c.Get(ctx, key); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close error = %v, want ErrClosed", err)
	}
}
