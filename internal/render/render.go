// Package render draws a built track path with gonum/plot. It is the
// reference consumer of the geometric primitives contract: lines map to
// plotter.Line, arcs are sampled into polylines, and the tick marks and
// canvas rectangle are drawn as short line series. Output is SVG or PNG.
package render

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pista-data/trackgen/internal/track"
)

// arcSamples is the number of polyline points per arc primitive.
const arcSamples = 48

// canvasMargin matches the original scene margin around the track rectangle.
const canvasMargin = 30.0

// Options controls the rendered output.
type Options struct {
	// ShowLabels draws each segment's source line number at its label anchor.
	ShowLabels bool
	// LineWidthMM is the track line width; the stroke is scaled from it.
	// Zero means the RoboCore 19mm width.
	LineWidthMM float64
}

func (o Options) strokeWidth() vg.Length {
	w := o.LineWidthMM
	if w == 0 {
		w = 19
	}
	return vg.Points(w / 10)
}

// flipY converts the screen-oriented track coordinates (y down) to the
// plot's y-up frame.
func flipY(p *track.Path, y float64) float64 {
	return p.Canvas.Height - y
}

func buildPlot(p *track.Path, opts Options) (*plot.Plot, error) {
	plt := plot.New()
	plt.HideAxes()
	plt.X.Min = -canvasMargin
	plt.X.Max = p.Canvas.Width + canvasMargin
	plt.Y.Min = -canvasMargin
	plt.Y.Max = p.Canvas.Height + canvasMargin

	stroke := opts.strokeWidth()

	// Declared track rectangle.
	rect := plotter.XYs{
		{X: 0, Y: flipY(p, 0)},
		{X: p.Canvas.Width, Y: flipY(p, 0)},
		{X: p.Canvas.Width, Y: flipY(p, p.Canvas.Height)},
		{X: 0, Y: flipY(p, p.Canvas.Height)},
		{X: 0, Y: flipY(p, 0)},
	}
	rectLine, err := plotter.NewLine(rect)
	if err != nil {
		return nil, fmt.Errorf("failed to build canvas rectangle: %w", err)
	}
	rectLine.Width = vg.Points(0.5)
	rectLine.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	plt.Add(rectLine)

	for _, seg := range p.Segments {
		pts := seg.Sample(arcSamples)
		xys := make(plotter.XYs, len(pts))
		for i, pt := range pts {
			xys[i] = plotter.XY{X: pt.X, Y: flipY(p, pt.Y)}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to build segment at line %d: %w", seg.Line, err)
		}
		line.Width = stroke
		plt.Add(line)
	}

	for _, m := range p.Marks {
		tick, err := plotter.NewLine(plotter.XYs{
			{X: m.From.X, Y: flipY(p, m.From.Y)},
			{X: m.To.X, Y: flipY(p, m.To.Y)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build mark at line %d: %w", m.Line, err)
		}
		tick.Width = stroke
		plt.Add(tick)
	}

	if opts.ShowLabels && len(p.Segments) > 0 {
		xys := make(plotter.XYs, len(p.Segments))
		texts := make([]string, len(p.Segments))
		for i, seg := range p.Segments {
			xys[i] = plotter.XY{X: seg.Label.X, Y: flipY(p, seg.Label.Y)}
			texts[i] = strconv.Itoa(seg.Line)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, fmt.Errorf("failed to build labels: %w", err)
		}
		plt.Add(labels)
	}

	return plt, nil
}

// canvasSize maps the track rectangle (plus margins) to drawing lengths,
// preserving the aspect ratio.
func canvasSize(p *track.Path) (vg.Length, vg.Length) {
	return vg.Points(p.Canvas.Width + 2*canvasMargin), vg.Points(p.Canvas.Height + 2*canvasMargin)
}

// WriteImage renders the path to w. Format is "svg" or "png".
func WriteImage(w io.Writer, p *track.Path, format string, opts Options) error {
	plt, err := buildPlot(p, opts)
	if err != nil {
		return err
	}
	width, height := canvasSize(p)
	wt, err := plt.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("failed to create %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}
	return nil
}

// SaveFile renders the path to a file; the format is taken from the
// file extension as in plot.Plot.Save.
func SaveFile(path string, p *track.Path, opts Options) error {
	plt, err := buildPlot(p, opts)
	if err != nil {
		return err
	}
	width, height := canvasSize(p)
	if err := plt.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
