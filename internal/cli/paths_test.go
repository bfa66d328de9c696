package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

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
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	path := defaultConfigPath()
	expected := filepath.Join("/tmp/custom-config", appName, appName+".toml")
	if path != expected {
		t.Errorf("defaultConfigPath() = %q, want %q", path, expected)
	}
}

func TestOpenCache(t *testing.T) {
	t.Run("no-cache", func(t *testing.T) {
		c, err := openCache(true, "")
		if err != nil {
			t.Fatalf("openCache: %v", err)
		}
		defer c.Close()
	})

	t.Run("explicit dir", func(t *testing.T) {
		dir := t.TempDir()
		c, err := openCache(false, dir)
		if err != nil {
			t.Fatalf("openCache: %v", err)
		}
		defer c.Close()
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("cache dir missing: %v", err)
		}
	})
}

func TestOpenOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.svg")

	f, err := openOutput(path)
	if err != nil {
		t.Fatalf("openOutput: %v", err)
	}
	if _, err := f.WriteString("<svg/>"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("unexpected content %q", data)
	}
}
