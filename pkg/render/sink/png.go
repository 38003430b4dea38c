// Package sink renders computed calendar layouts to concrete formats.
//
// Sinks translate the normalized grid coordinates of a layout into pixels
// and apply a theme; they make no layout decisions of their own, so every
// sink reproduces the same geometry.
package sink

import (
	"bytes"
	"strings"

	"github.com/fogleman/gg"

	"github.com/hctsai/roomcal/pkg/errors"
	"github.com/hctsai/roomcal/pkg/fonts"
	"github.com/hctsai/roomcal/pkg/render"
)

const (
	// unitPx is the pixel edge of one grid cell at scale 1.0.
	unitPx = 240.0

	// lineSpacing is the multi-line text advance as a multiple of font size.
	lineSpacing = 1.35
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	theme render.Theme
	font  fonts.Source
}

// WithScale sets the PNG scale factor (default 2.0 for a high-resolution
// raster).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithTheme sets the color theme (default light).
func WithTheme(t render.Theme) PNGOption {
	return func(r *pngRenderer) { r.theme = t }
}

// WithFont sets the font source (default basicfont; callers normally pass
// the result of fonts.Load).
func WithFont(f fonts.Source) PNGOption {
	return func(r *pngRenderer) {
		if f != nil {
			r.font = f
		}
	}
}

// RenderPNG rasterizes a layout to PNG bytes.
func RenderPNG(l render.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, theme: render.Light(), font: fonts.Basic()}
	for _, opt := range opts {
		opt(&r)
	}

	unit := unitPx * r.scale
	width := int(7 * unit)
	height := int((float64(l.Weeks) + render.TopPad) * unit)

	dc := gg.NewContext(width, height)
	dc.SetHexColor(r.theme.Background)
	dc.Clear()

	// Grid coordinates grow upward; pixel rows grow downward.
	py := func(y float64) float64 {
		return (float64(l.Weeks) + render.TopPad - y) * unit
	}

	for _, cmd := range l.Commands {
		switch c := cmd.(type) {
		case render.Rect:
			dc.SetHexColor(r.theme.Grid)
			dc.SetLineWidth(max(1, r.scale))
			dc.DrawRectangle(c.X*unit, py(c.Y+c.H), c.W*unit, c.H*unit)
			dc.Stroke()

		case render.Text:
			r.drawText(dc, c, unit, py)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawText(dc *gg.Context, c render.Text, unit float64, py func(float64) float64) {
	// One layout point equals one pixel per 240px cell, matching the
	// original figure proportions (12pt text in a ~240pt cell).
	fontPx := c.Size * unit / 240

	dc.SetFontFace(r.font.Face(fontPx))
	dc.SetHexColor(r.theme.Text)

	ax := 0.0
	if c.HAlign == render.AlignCenter {
		ax = 0.5
	}

	lines := strings.Split(c.Content, "\n")
	x := c.X * unit
	y := py(c.Y)
	advance := fontPx * lineSpacing

	// ay=1 anchors the first line's top at y; ay=0 anchors its bottom.
	ay := 1.0
	if c.VAlign == render.AlignBottom {
		ay = 0.0
	}

	for i, line := range lines {
		ly := y + float64(i)*advance
		dc.DrawStringAnchored(line, x, ly, ax, ay)
		if c.Bold {
			// Faux bold: restrike with a sub-pixel offset.
			dc.DrawStringAnchored(line, x+0.6*r.scale, ly, ax, ay)
		}
	}
}
