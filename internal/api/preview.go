package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pista-data/trackgen/internal/httputil"
	"github.com/pista-data/trackgen/internal/lfdl"
	"github.com/pista-data/trackgen/internal/track"
)

// previewArcSamples keeps the preview payload small; the SVG renderer
// uses a finer sampling.
const previewArcSamples = 24

// handlePreview renders a quick interactive plot (HTML) of the track
// path using go-echarts. This is a debugging-only endpoint to visually
// inspect a document without the editor UI. The document is passed in
// the "src" query parameter.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	src := r.URL.Query().Get("src")
	if src == "" {
		httputil.BadRequest(w, "missing src query parameter")
		return
	}

	parsed := lfdl.Parse(src)
	if !parsed.Valid {
		httputil.BadRequest(w, "track has no drawable commands")
		return
	}
	path := track.Build(parsed.Config, parsed.Commands)

	// Flatten the segments into one polyline. The y axis is flipped so
	// the preview matches the screen orientation of the canvas.
	data := make([]opts.LineData, 0, len(path.Segments)*previewArcSamples)
	for _, seg := range path.Segments {
		for _, pt := range seg.Sample(previewArcSamples) {
			data = append(data, opts.LineData{Value: []interface{}{pt.X, path.Canvas.Height - pt.Y}})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Track Preview",
			Theme:     "dark",
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Track Path",
			Subtitle: fmt.Sprintf("commands=%d length=%d points", len(path.Segments), len(data)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: -30, Max: path.Canvas.Width + 30, Name: "X (mm)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: -30, Max: path.Canvas.Height + 30, Name: "Y (mm)"}),
	)
	line.AddSeries("track", data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
