package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errPermanent = errors.New("permanent")

func init() {
	DefaultBackoff.Delay = time.Millisecond
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashTable(t *testing.T) {
	base := HashTable([]string{"a", "b"}, [][]string{{"1", "2"}})

	tests := []struct {
		name   string
		header []string
		body   [][]string
	}{
		{"cell changed", []string{"a", "b"}, [][]string{{"1", "3"}}},
		{"cells merged", []string{"a", "b"}, [][]string{{"12"}}},
		{"no header", nil, [][]string{{"a", "b"}, {"1", "2"}}},
		{"extra row", []string{"a", "b"}, [][]string{{"1", "2"}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HashTable(tt.header, tt.body); got == base {
				t.Errorf("HashTable collided with base table")
			}
		})
	}

	if again := HashTable([]string{"a", "b"}, [][]string{{"1", "2"}}); again != base {
		t.Error("HashTable should be deterministic")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ArtifactKeyOpts{Format: "cq", FontSize: 16, Padding: [2]int{20, 10}}
	ak1 := k.ArtifactKey("hash123", base)
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey should be prefixed: %s", ak1)
	}
	if ak1 != k.ArtifactKey("hash123", base) {
		t.Error("ArtifactKey should be deterministic")
	}

	variants := map[string]func(o *ArtifactKeyOpts){
		"format":  func(o *ArtifactKeyOpts) { o.Format = "png" },
		"padding": func(o *ArtifactKeyOpts) { o.Padding = [2]int{5, 5} },
		"align":   func(o *ArtifactKeyOpts) { o.Align = "r" },
		"palette": func(o *ArtifactKeyOpts) { o.Palette[0] = "#000000" },
		"stock":   func(o *ArtifactKeyOpts) { o.StockMode = true },
	}
	for name, mutate := range variants {
		opts := base
		mutate(&opts)
		if k.ArtifactKey("hash123", opts) == ak1 {
			t.Errorf("changing %s should change the key", name)
		}
	}

	if k.ArtifactKey("hash456", base) == ak1 {
		t.Error("different table hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "bot:1:")

	opts := ArtifactKeyOpts{Format: "cq"}
	want := "bot:1:" + inner.ArtifactKey("h", opts)
	if got := scoped.ArtifactKey("h", opts); got != want {
		t.Errorf("ScopedKeyer ArtifactKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerPrefix(t *testing.T) {
	inner := NewDefaultKeyer()
	if got := NewScopedKeyer(inner, ""); got != inner {
		t.Error("empty prefix should return the inner keyer")
	}
	scoped, ok := NewScopedKeyer(inner, "bot").(*ScopedKeyer)
	if !ok {
		t.Fatal("non-empty prefix should return *ScopedKeyer")
	}
	if scoped.Prefix() != "bot:" {
		t.Errorf("Prefix() = %q, want %q", scoped.Prefix(), "bot:")
	}
}

func TestArtifactMatch(t *testing.T) {
	key := NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{})
	scoped := NewScopedKeyer(nil, "bot").ArtifactKey("h", ArtifactKeyOpts{})

	tests := []struct {
		prefix, key string
	}{
		{"", key},
		{"bot", scoped},
		{"bot:", scoped},
	}
	for _, tt := range tests {
		match := ArtifactMatch(tt.prefix)
		if ok, _ := filepath.Match(match, tt.key); !ok {
			t.Errorf("ArtifactMatch(%q) = %q does not match %q", tt.prefix, match, tt.key)
		}
	}
	if ok, _ := filepath.Match(ArtifactMatch(""), scoped); ok {
		t.Error("unprefixed pattern should not match scoped keys")
	}
}

func TestRedisCachePurgeCanceledContext(t *testing.T) {
	c, err := NewRedisCache("redis://127.0.0.1:1/0")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if n, err := c.(*RedisCache).Purge(ctx, ArtifactMatch("")); err == nil || n != 0 {
		t.Errorf("Purge with canceled context = %d, %v", n, err)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{})
	if !strings.HasPrefix(key, "prefix:artifact:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("png bytes"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get(key) = hit %v, err %v", hit, err)
	}
	if string(data) != "png bytes" {
		t.Errorf("Get(key) = %q", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("key should be gone after Delete")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}

	if fc, ok := c.(*FileCache); !ok || fc.Dir() != dir {
		t.Errorf("Dir() should report %s", dir)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	path := fc.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("bad"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("corrupt entry should be a silent miss, got hit %v err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestNewRedisCacheInvalidURL(t *testing.T) {
	for _, url := range []string{"", "http://localhost:6379", "localhost:6379"} {
		if _, err := NewRedisCache(url); err == nil {
			t.Errorf("NewRedisCache(%q) should fail", url)
		}
	}
}

func TestRedisCacheCanceledContext(t *testing.T) {
	c, err := NewRedisCache("redis://127.0.0.1:1/0")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, hit, err := c.Get(ctx, "key"); err == nil || hit {
		t.Errorf("Get with canceled context = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "key", []byte("v"), time.Minute); err == nil {
		t.Error("Set with canceled context should fail")
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestBackoffExhaustsAttempts(t *testing.T) {
	b := Backoff{Attempts: 4, Delay: time.Microsecond, Max: 2 * time.Microsecond}
	calls := 0
	err := b.Do(context.Background(), func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Do() error = %v, want ErrNetwork", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}

	calls = 0
	_ = Backoff{}.Do(context.Background(), func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if calls != 1 {
		t.Errorf("zero Backoff should try once, got %d calls", calls)
	}
}
