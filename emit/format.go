package emit

import (
	"fmt"
	"strings"

	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
)

// formatReal prints a real with the four-decimal-place fixed notation
// ISO 8632-4 clear text uses for every real and VDC-as-real value.
func formatReal(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// formatVDC prints a VDC as a real when the context's VDC type is
// real, or as a plain decimal integer otherwise.
func formatVDC(ctx *context.Context, v float64) string {
	if ctx.VDCType == context.VDCReal {
		return formatReal(v)
	}
	return fmt.Sprintf("%d", int64(v))
}

// formatPoint prints a point as "(x,y)", with a special rule: when y
// formats to exactly zero and x is negative, an explicit leading minus
// is inserted on the y field so that parsers recovering signed zero
// from the text see the sign x's negativity implies.
func formatPoint(ctx *context.Context, p command.Point) string {
	x := formatVDC(ctx, p.X)
	y := formatVDC(ctx, p.Y)
	zero := formatVDC(ctx, 0)
	sign := ""
	if y == zero && p.X < 0 {
		sign = "-"
	}
	return fmt.Sprintf("(%s,%s%s)", x, sign, y)
}

func formatPoints(ctx *context.Context, pts []command.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = formatPoint(ctx, p)
	}
	return strings.Join(parts, " ")
}

// formatBool prints on/off, the form ISO 8632-4 uses for enable-style
// booleans (visibility, transparency).
func formatBool(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// sanitiseString drops every byte outside 0x20-0x7E plus TAB, CR and
// LF, following the clear-text character repertoire.
func sanitiseString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\t' || c == '\r' || c == '\n' || (c >= 0x20 && c <= 0x7E) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// formatString sanitises and single-quotes a string token.
func formatString(s string) string {
	return "'" + sanitiseString(s) + "'"
}

// formatColour prints a colour per the context's colour selection
// mode: a plain index, or an RGB triple for direct colour.
func formatColour(ctx *context.Context, c command.Colour) string {
	if ctx.ColourSelectionMode == context.ColourIndexed {
		return fmt.Sprintf("%d", c.Index)
	}
	return fmt.Sprintf("%d %d %d", c.RGB.R, c.RGB.G, c.RGB.B)
}

func formatEnum(v int64, names ...string) string {
	if v >= 0 && int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%d", v)
}
