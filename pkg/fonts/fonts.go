// Package fonts acquires a CJK-capable font face for raster rendering.
//
// Acquisition is best effort and never fails a render. The search order is:
//
//  1. Fonts installed on the host, located with go-findfont across the
//     configured candidate names.
//  2. A previously downloaded font asset in the local file cache.
//  3. A bounded-time HTTP download of the configured fallback font, stored
//     in the cache for subsequent renders.
//  4. The built-in basicfont face, which renders ASCII only; CJK glyphs
//     degrade to tofu but the calendar stays usable.
//
// Concurrent first use may race to populate the cache; the download is
// idempotent, so duplicate fetches are wasteful but harmless.
package fonts

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/hctsai/roomcal/pkg/cache"
	"github.com/hctsai/roomcal/pkg/errors"
	"github.com/hctsai/roomcal/pkg/httputil"
)

// Source produces font faces at arbitrary pixel sizes. Sinks request one
// face per text size they draw.
type Source interface {
	// Face returns a face for the given pixel size.
	Face(px float64) font.Face
	// Name identifies where the font came from, for logging.
	Name() string
}

// Config controls font acquisition.
type Config struct {
	// Candidates are font names or filenames tried against the host system,
	// in order.
	Candidates []string
	// DownloadURL points at a TTF asset fetched when no candidate is
	// installed. Empty disables downloading.
	DownloadURL string
	// DownloadTimeout bounds the fetch. Zero means 15 seconds.
	DownloadTimeout time.Duration
}

// DefaultConfig returns the stock candidate list: common Traditional Chinese
// faces on macOS, Windows and Linux, then a downloadable Noto fallback.
func DefaultConfig() Config {
	return Config{
		Candidates: []string{
			"NotoSansCJK-Regular.ttc",
			"NotoSansTC-Regular.otf",
			"msjh.ttc", // Microsoft JhengHei
			"msjh.ttf",
			"STHeiti Medium.ttc",
			"Heiti TC",
		},
		DownloadURL:     "https://github.com/google/fonts/raw/main/ofl/notosanstc/NotoSansTC%5Bwght%5D.ttf",
		DownloadTimeout: 15 * time.Second,
	}
}

// CacheKey identifies the downloaded font asset in the file cache.
const CacheKey = "font:fallback"

// Load acquires a font Source per the search order above. It never returns
// an error; every degradation is logged and the basicfont face is the final
// fallback.
func Load(ctx context.Context, cfg Config, c cache.Cache, logger *log.Logger) Source {
	if src := loadLocal(cfg, logger); src != nil {
		return src
	}
	if src := loadCached(ctx, c, logger); src != nil {
		return src
	}
	if src := download(ctx, cfg, c, logger); src != nil {
		return src
	}
	logger.Warn("no CJK font available; falling back to built-in face")
	return basicSource{}
}

func loadLocal(cfg Config, logger *log.Logger) Source {
	for _, name := range cfg.Candidates {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Debugf("font %s unreadable: %v", path, err)
			continue
		}
		src, err := Parse(data, name)
		if err != nil {
			logger.Debugf("font %s unparseable: %v", path, err)
			continue
		}
		logger.Debugf("using system font %s (%s)", name, path)
		return src
	}
	return nil
}

func loadCached(ctx context.Context, c cache.Cache, logger *log.Logger) Source {
	if c == nil {
		return nil
	}
	data, hit, err := c.Get(ctx, CacheKey)
	if err != nil || !hit {
		return nil
	}
	src, err := Parse(data, "cached fallback")
	if err != nil {
		// Corrupt cache entry; drop it so the next run re-fetches.
		_ = c.Delete(ctx, CacheKey)
		return nil
	}
	logger.Debug("using cached fallback font")
	return src
}

func download(ctx context.Context, cfg Config, c cache.Cache, logger *log.Logger) Source {
	if cfg.DownloadURL == "" {
		return nil
	}
	src, err := Fetch(ctx, cfg, c)
	if err != nil {
		logger.Warnf("font download failed: %v", errors.UserMessage(err))
		return nil
	}
	logger.Debug("downloaded fallback font")
	return src
}

// LocalCandidate returns the first configured candidate installed on the
// host system.
func LocalCandidate(cfg Config) (name, path string, ok bool) {
	for _, candidate := range cfg.Candidates {
		if p, err := findfont.Find(candidate); err == nil {
			return candidate, p, true
		}
	}
	return "", "", false
}

// Fetch downloads the fallback font asset and stores it in the cache. Unlike
// Load it surfaces failures, so callers can report them.
func Fetch(ctx context.Context, cfg Config, c cache.Cache) (Source, error) {
	if cfg.DownloadURL == "" {
		return nil, errors.New(errors.ErrCodeFontUnavailable, "no download URL configured")
	}
	timeout := cfg.DownloadTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := &http.Client{Timeout: timeout}
	data, err := httputil.FetchBytes(fetchCtx, client, cfg.DownloadURL)
	if err != nil {
		return nil, err
	}
	src, err := Parse(data, "downloaded fallback")
	if err != nil {
		return nil, err
	}
	if c != nil {
		_ = c.Set(ctx, CacheKey, data, 0)
	}
	return src, nil
}

// Parse builds a Source from raw TrueType data.
func Parse(data []byte, name string) (Source, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontUnavailable, err, "parse font %s", name)
	}
	return &ttfSource{font: f, name: name}, nil
}

// Basic returns the built-in degraded face source.
func Basic() Source {
	return basicSource{}
}

type ttfSource struct {
	font *truetype.Font
	name string
}

func (s *ttfSource) Face(px float64) font.Face {
	return truetype.NewFace(s.font, &truetype.Options{Size: px, DPI: 72})
}

func (s *ttfSource) Name() string { return s.name }

type basicSource struct{}

func (basicSource) Face(px float64) font.Face { return basicfont.Face7x13 }

func (basicSource) Name() string { return "basicfont" }
