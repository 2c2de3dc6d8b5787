package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tablecast/pkg/errors"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestClearCacheDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ab/one.art", "ab/two.art", "cd/three.art"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	count, err := clearCacheDir(dir)
	if err != nil {
		t.Fatalf("clearCacheDir: %v", err)
	}
	if count != 3 {
		t.Errorf("cleared %d entries, want 3", count)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache dir should survive: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestCacheClearFollowsConfiguredBackend(t *testing.T) {
	isolate(t)
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(dir, "ab", "one.art")
	if err := os.MkdirAll(filepath.Dir(entry), 0755); err != nil {
		t.Fatal(err)
	}
	writeEntry := func() {
		if err := os.WriteFile(entry, []byte("artifact"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("redis from theme file", func(t *testing.T) {
		writeEntry()
		cfg := writeInput(t, "config.toml", "[cache]\nredis = \"redis:///0\"\n")
		if _, err := runCLI(t, "cache", "clear", "--config", cfg); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("cache clear error = %v, want INVALID_INPUT from the redis backend", err)
		}
		if _, err := os.Stat(entry); err != nil {
			t.Error("local cache should be untouched when redis is configured")
		}
	})

	t.Run("local directory", func(t *testing.T) {
		writeEntry()
		out, err := runCLI(t, "cache", "clear")
		if err != nil {
			t.Fatalf("cache clear: %v", err)
		}
		if !strings.Contains(out, "Cleared 1 cached artifacts") {
			t.Errorf("output = %q", out)
		}
		if _, err := os.Stat(entry); !os.IsNotExist(err) {
			t.Error("local entry should be removed")
		}
	})
}
