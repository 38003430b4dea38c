package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/hctsai/roomcal/pkg/render"
)

// svgFontFamily lists CJK-capable families for SVG viewers; the actual face
// is resolved by the viewer, unlike the PNG sink which embeds rendering.
const svgFontFamily = `'Noto Sans TC', 'Microsoft JhengHei', 'Heiti TC', sans-serif`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme render.Theme
}

// WithSVGTheme sets the color theme (default light).
func WithSVGTheme(t render.Theme) SVGOption {
	return func(r *svgRenderer) { r.theme = t }
}

// RenderSVG serializes a layout as a standalone SVG document. The geometry
// matches the PNG sink at scale 1.
func RenderSVG(l render.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{theme: render.Light()}
	for _, opt := range opts {
		opt(&r)
	}

	width := 7 * unitPx
	height := (float64(l.Weeks) + render.TopPad) * unitPx
	py := func(y float64) float64 {
		return (float64(l.Weeks) + render.TopPad - y) * unitPx
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, r.theme.Background)

	for _, cmd := range l.Commands {
		switch c := cmd.(type) {
		case render.Rect:
			fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
				c.X*unitPx, py(c.Y+c.H), c.W*unitPx, c.H*unitPx, r.theme.Grid)

		case render.Text:
			r.writeText(&buf, c, py)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) writeText(buf *bytes.Buffer, c render.Text, py func(float64) float64) {
	fontPx := c.Size * unitPx / 240

	anchor := "start"
	if c.HAlign == render.AlignCenter {
		anchor = "middle"
	}
	baseline := "hanging"
	if c.VAlign == render.AlignBottom {
		baseline = "alphabetic"
	}
	weight := ""
	if c.Bold {
		weight = ` font-weight="bold"`
	}

	x := c.X * unitPx
	y := py(c.Y)
	advance := fontPx * lineSpacing

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="%s" fill="%s" text-anchor="%s" dominant-baseline="%s"%s>`,
		x, y, fontPx, svgFontFamily, r.theme.Text, anchor, baseline, weight)

	lines := strings.Split(c.Content, "\n")
	if len(lines) == 1 {
		buf.WriteString(escapeXML(lines[0]))
	} else {
		buf.WriteString("\n")
		for i, line := range lines {
			fmt.Fprintf(buf, `    <tspan x="%.1f" y="%.1f">%s</tspan>`+"\n", x, y+float64(i)*advance, escapeXML(line))
		}
		buf.WriteString("  ")
	}
	buf.WriteString("</text>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
