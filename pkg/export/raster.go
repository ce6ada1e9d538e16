package export

import (
	"bytes"

	"git.sr.ht/~sbinet/gg"

	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

// Raster rasterizes a render.Command slice to a PNG, supplementing SVG
// export with a fixed-resolution preview image. Text metrics are
// approximated with gg's default face; precise glyph metrics are a
// consumer-renderer concern per the SVG text-metrics open question, which
// applies equally here.
func Raster(cmds []render.Command, widthPx, heightPx int, th theme.Theme) ([]byte, error) {
	dc := gg.NewContext(widthPx, heightPx)
	bg := th.Resolve(theme.Background)
	dc.SetRGBA255(int(bg.R), int(bg.G), int(bg.B), int(bg.A))
	dc.Clear()

	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case render.DrawRect:
			fill := th.Resolve(c.FillToken)
			dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
			dc.DrawRectangle(float64(c.Rect.X), float64(c.Rect.Y), float64(c.Rect.W), float64(c.Rect.H))
			dc.Fill()
			if c.HasBorder {
				border := th.Resolve(c.BorderToken)
				dc.SetRGBA255(int(border.R), int(border.G), int(border.B), int(border.A))
				dc.SetLineWidth(1)
				dc.DrawRectangle(float64(c.Rect.X), float64(c.Rect.Y), float64(c.Rect.W), float64(c.Rect.H))
				dc.Stroke()
			}
			if c.Label != "" && c.Rect.W > 20 {
				text := th.Resolve(theme.TextPrimary)
				dc.SetRGBA255(int(text.R), int(text.G), int(text.B), int(text.A))
				dc.DrawStringAnchored(c.Label, float64(c.Rect.X)+2, float64(c.Rect.Y)+float64(c.Rect.H)/2, 0, 0.5)
			}
		case render.DrawText:
			col := th.Resolve(c.Token)
			dc.SetRGBA255(int(col.R), int(col.G), int(col.B), int(col.A))
			dc.DrawString(c.Text, float64(c.Pos.X), float64(c.Pos.Y))
		case render.DrawLine:
			col := th.Resolve(c.Token)
			dc.SetRGBA255(int(col.R), int(col.G), int(col.B), int(col.A))
			dc.SetLineWidth(float64(c.Width))
			dc.DrawLine(float64(c.From.X), float64(c.From.Y), float64(c.To.X), float64(c.To.Y))
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, spanerr.NewExportError(spanerr.SerializationFailed, err)
	}
	return buf.Bytes(), nil
}
