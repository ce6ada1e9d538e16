package export

import (
	"bytes"
	"fmt"
	"image/color"

	svg "github.com/ajstarks/svgo"

	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

// SVG translates a render.Command slice produced by a view transform into
// a stand-alone SVG document: rects to <rect>, text to <text>, lines to
// <line>, clips to <clipPath>, transforms to <g transform>, and groups to
// <g id>, per §4.9.
func SVG(cmds []render.Command, widthPx, heightPx int, th theme.Theme) ([]byte, error) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(widthPx, heightPx)

	clipID := 0
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case render.DrawRect:
			style := fmt.Sprintf("fill:%s", rgbaCSS(th.Resolve(c.FillToken)))
			if c.HasBorder {
				style += fmt.Sprintf(";stroke:%s", rgbaCSS(th.Resolve(c.BorderToken)))
			}
			canvas.Rect(int(c.Rect.X), int(c.Rect.Y), int(c.Rect.W), int(c.Rect.H), style)
			if c.Label != "" {
				canvas.Text(int(c.Rect.X)+2, int(c.Rect.Y)+int(c.Rect.H)-2, c.Label, "font-size:10px")
			}
		case render.DrawText:
			canvas.Text(int(c.Pos.X), int(c.Pos.Y), c.Text, fmt.Sprintf("fill:%s", rgbaCSS(th.Resolve(c.Token))))
		case render.DrawLine:
			canvas.Line(int(c.From.X), int(c.From.Y), int(c.To.X), int(c.To.Y), fmt.Sprintf("stroke:%s", rgbaCSS(th.Resolve(c.Token))))
		case render.SetClip:
			clipID++
			canvas.ClipPath(fmt.Sprintf("id=\"clip%d\"", clipID))
			canvas.Rect(int(c.Rect.X), int(c.Rect.Y), int(c.Rect.W), int(c.Rect.H))
			canvas.ClipEnd()
			canvas.Gstyle(fmt.Sprintf("clip-path:url(#clip%d)", clipID))
		case render.ClearClip:
			canvas.Gend()
		case render.PushTransform:
			canvas.Gtransform(fmt.Sprintf("translate(%g,%g) scale(%g,%g)", c.TranslateX, c.TranslateY, c.ScaleX, c.ScaleY))
		case render.PopTransform:
			canvas.Gend()
		case render.BeginGroup:
			canvas.Gid(c.ID)
		case render.EndGroup:
			canvas.Gend()
		}
	}

	canvas.End()
	if buf.Len() == 0 {
		return nil, spanerr.NewExportError(spanerr.SerializationFailed, nil)
	}
	return buf.Bytes(), nil
}

func rgbaCSS(c color.RGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}
