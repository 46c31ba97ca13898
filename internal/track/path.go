// Package track walks a parsed command list with a turtle-style pose and
// produces absolute drawing primitives: line segments, arc descriptions
// (center, radius, start/sweep angles), and the tick marks drawn at
// command boundaries. The output is plain data consumable by any
// rendering backend.
//
// Coordinates are screen-oriented: y grows downward, while headings are
// given in a conventional mathematical frame (counter-clockwise
// positive), hence the y-axis sign flips in the formulas below.
package track

import (
	"math"

	"github.com/pista-data/trackgen/internal/lfdl"
	"github.com/pista-data/trackgen/internal/units"
)

// Tick mark geometry, in canvas millimetres.
const (
	MarkSize   = 4.0
	MarkOffset = 4.0
)

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pose is the turtle state carried between commands: position plus
// heading in degrees. It is recomputed from the start pose on every
// build; nothing is persisted between builds.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// Kind discriminates the two primitive shapes.
type Kind string

const (
	KindLine Kind = "line"
	KindArc  Kind = "arc"
)

// Segment is one drawing primitive. Line is the 1-based source line of
// the originating command, so a consumer can emphasise the primitive
// under the editor cursor. Label is the anchor point for the segment's
// line-number label (midpoint of a line, angular midpoint of an arc).
// Center, Radius, StartAngle and SweepAngle are meaningful for arcs only.
type Segment struct {
	Kind Kind `json:"kind"`
	Line int  `json:"line"`

	From Pose `json:"from"`
	To   Pose `json:"to"`

	Center     Point   `json:"center"`
	Radius     float64 `json:"radius,omitempty"`
	StartAngle float64 `json:"start_angle,omitempty"`
	SweepAngle float64 `json:"sweep_angle,omitempty"`

	Label Point `json:"label"`
}

// Mark is the short perpendicular tick drawn at a command boundary.
// The mark at the final pose is inverted relative to interior marks so
// renderers can distinguish the track end from interior joints.
type Mark struct {
	From  Point `json:"from"`
	To    Point `json:"to"`
	Line  int   `json:"line"`
	Final bool  `json:"final"`
}

// Path is the full geometric output for one document: the declared
// canvas, the start pose, one segment per command in source order, one
// mark per command boundary, and the pose after the last command.
type Path struct {
	Canvas   lfdl.Size `json:"canvas"`
	Start    Pose      `json:"start"`
	Segments []Segment `json:"segments"`
	Marks    []Mark    `json:"marks"`
	End      Pose      `json:"end"`
}

// Build replays the command list from the configured start pose. It is a
// pure function of its inputs and can be re-run at any time (for example
// after a zoom change). An empty command list yields End == Start and no
// primitives.
func Build(cfg lfdl.TrackConfig, cmds []lfdl.Command) *Path {
	pose := Pose{X: cfg.Start.X, Y: cfg.Start.Y, Theta: cfg.Start.Angle}
	p := &Path{Canvas: cfg.Size, Start: pose, End: pose}

	for i, cmd := range cmds {
		var seg Segment
		switch c := cmd.(type) {
		case lfdl.Straight:
			seg, pose = straightSegment(pose, c)
		case lfdl.Arc:
			seg, pose = arcSegment(pose, c)
		default:
			// Command is a closed union; nothing else can appear here.
			continue
		}
		p.Segments = append(p.Segments, seg)
		p.Marks = append(p.Marks, markAt(pose, cmd.SourceLine(), i == len(cmds)-1))
	}

	p.End = pose
	return p
}

func straightSegment(from Pose, c lfdl.Straight) (Segment, Pose) {
	theta := units.DegToRad(from.Theta)
	to := Pose{
		X:     from.X + c.Distance*math.Cos(theta),
		Y:     from.Y - c.Distance*math.Sin(theta),
		Theta: from.Theta,
	}
	seg := Segment{
		Kind:  KindLine,
		Line:  c.Line,
		From:  from,
		To:    to,
		Label: Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2},
	}
	return seg, to
}

// arcSegment computes the arc center from the current pose, then places
// the end pose in closed form from the end angle around that center.
// This avoids accumulating integration error along the sweep.
func arcSegment(from Pose, c lfdl.Arc) (Segment, Pose) {
	centerTurn := 90.0
	sweep := -c.Angle
	if c.Side == lfdl.SideLeft {
		centerTurn = -90.0
		sweep = c.Angle
	}

	cx := from.X + c.Radius*math.Cos(units.DegToRad(from.Theta-centerTurn))
	cy := from.Y - c.Radius*math.Sin(units.DegToRad(from.Theta-centerTurn))

	startAngle := from.Theta + centerTurn
	endAngle := from.Theta + sweep + centerTurn
	to := Pose{
		X:     cx + c.Radius*math.Cos(units.DegToRad(endAngle)),
		Y:     cy - c.Radius*math.Sin(units.DegToRad(endAngle)),
		Theta: from.Theta + sweep,
	}

	mid := units.DegToRad(startAngle + sweep/2)
	seg := Segment{
		Kind:       KindArc,
		Line:       c.Line,
		From:       from,
		To:         to,
		Center:     Point{X: cx, Y: cy},
		Radius:     c.Radius,
		StartAngle: startAngle,
		SweepAngle: sweep,
		Label:      Point{X: cx + c.Radius*math.Cos(mid), Y: cy - c.Radius*math.Sin(mid)},
	}
	return seg, to
}

func markAt(p Pose, line int, final bool) Mark {
	n := units.DegToRad(p.Theta + 90)
	dx0 := MarkOffset * math.Cos(n)
	dy0 := MarkOffset * math.Sin(n)
	dx1 := dx0 + MarkSize*math.Cos(n)
	dy1 := dy0 + MarkSize*math.Sin(n)
	if final {
		dx0, dy0, dx1, dy1 = -dx0, -dy0, -dx1, -dy1
	}
	return Mark{
		From:  Point{X: p.X + dx0, Y: p.Y - dy0},
		To:    Point{X: p.X + dx1, Y: p.Y - dy1},
		Line:  line,
		Final: final,
	}
}

// Sample returns n points along the segment, endpoints included, for
// consumers that draw polylines instead of true arcs.
func (s Segment) Sample(n int) []Point {
	if n < 2 {
		n = 2
	}
	pts := make([]Point, 0, n)
	switch s.Kind {
	case KindLine:
		for i := 0; i < n; i++ {
			t := float64(i) / float64(n-1)
			pts = append(pts, Point{
				X: s.From.X + t*(s.To.X-s.From.X),
				Y: s.From.Y + t*(s.To.Y-s.From.Y),
			})
		}
	case KindArc:
		for i := 0; i < n; i++ {
			a := units.DegToRad(s.StartAngle + s.SweepAngle*float64(i)/float64(n-1))
			pts = append(pts, Point{
				X: s.Center.X + s.Radius*math.Cos(a),
				Y: s.Center.Y - s.Radius*math.Sin(a),
			})
		}
	}
	return pts
}
