package fonts

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hctsai/roomcal/pkg/cache"
	"github.com/hctsai/roomcal/pkg/errors"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestBasicSource(t *testing.T) {
	src := Basic()
	if src.Name() != "basicfont" {
		t.Errorf("Name() = %q, want basicfont", src.Name())
	}
	if src.Face(12) == nil {
		t.Errorf("Face() returned nil")
	}
	// The built-in face ignores the requested size.
	if src.Face(12) != src.Face(24) {
		t.Errorf("basic source should hand out the same face at any size")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("definitely not a font"), "garbage")
	if err == nil {
		t.Fatal("expected an error for non-font data")
	}
	if !errors.Is(err, errors.ErrCodeFontUnavailable) {
		t.Errorf("expected FONT_UNAVAILABLE, got %v", err)
	}
}

func TestLoadFallsBackToBasic(t *testing.T) {
	// No candidates, no download URL, empty cache: Load must still produce a
	// usable source rather than fail.
	cfg := Config{}
	src := Load(context.Background(), cfg, cache.NewNullCache(), quietLogger())
	if src == nil {
		t.Fatal("Load returned nil source")
	}
	if src.Name() != "basicfont" {
		t.Errorf("expected basicfont fallback, got %q", src.Name())
	}
	if src.Face(14) == nil {
		t.Errorf("fallback face is nil")
	}
}

func TestLoadDropsCorruptCacheEntry(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "font:fallback", []byte("corrupt"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	src := Load(ctx, Config{}, c, quietLogger())
	if src.Name() != "basicfont" {
		t.Errorf("corrupt cache entry should not produce a font source, got %q", src.Name())
	}

	// The unparseable entry must be evicted so a later run can re-fetch.
	if _, hit, _ := c.Get(ctx, "font:fallback"); hit {
		t.Errorf("corrupt cache entry was not deleted")
	}
}

func TestLoadNilCache(t *testing.T) {
	src := Load(context.Background(), Config{}, nil, quietLogger())
	if src == nil || src.Name() != "basicfont" {
		t.Fatalf("Load with nil cache should fall back to basicfont, got %v", src)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Candidates) == 0 {
		t.Error("default config has no font candidates")
	}
	if cfg.DownloadURL == "" {
		t.Error("default config has no download URL")
	}
	if cfg.DownloadTimeout <= 0 {
		t.Error("default config has no download timeout")
	}
}
