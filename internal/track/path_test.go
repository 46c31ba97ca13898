package track

import (
	"math"
	"testing"

	"github.com/pista-data/trackgen/internal/lfdl"
)

const tol = 1e-9

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestBuildEmptyCommandList(t *testing.T) {
	cfg := lfdl.DefaultConfig()
	p := Build(cfg, nil)

	if len(p.Segments) != 0 || len(p.Marks) != 0 {
		t.Fatalf("expected no primitives, got %d segments, %d marks", len(p.Segments), len(p.Marks))
	}
	if p.End != p.Start {
		t.Errorf("End = %+v, want Start %+v", p.End, p.Start)
	}
	if p.Start != (Pose{X: 100, Y: 200, Theta: 0}) {
		t.Errorf("Start = %+v", p.Start)
	}
}

func TestBuildStraightFromOrigin(t *testing.T) {
	cfg := lfdl.TrackConfig{Size: lfdl.Size{Width: 600, Height: 400}}
	p := Build(cfg, []lfdl.Command{lfdl.Straight{Distance: 100, Line: 2}})

	if len(p.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(p.Segments))
	}
	seg := p.Segments[0]
	if seg.Kind != KindLine || seg.Line != 2 {
		t.Errorf("segment = %+v", seg)
	}
	approx(t, "From.X", seg.From.X, 0)
	approx(t, "From.Y", seg.From.Y, 0)
	approx(t, "To.X", seg.To.X, 100)
	approx(t, "To.Y", seg.To.Y, 0)
	approx(t, "Label.X", seg.Label.X, 50)
}

func TestBuildStraightKeepsHeading(t *testing.T) {
	for _, theta := range []float64{0, 30, 90, -45, 180, 270} {
		cfg := lfdl.TrackConfig{Start: lfdl.Start{X: 10, Y: 20, Angle: theta}}
		p := Build(cfg, []lfdl.Command{lfdl.Straight{Distance: 123, Line: 1}})
		if p.End.Theta != theta {
			t.Errorf("theta %v: heading changed to %v", theta, p.End.Theta)
		}
	}
}

// Screen coordinates: y grows downward, so a +90° heading moves up-screen.
func TestBuildStraightHeadingUp(t *testing.T) {
	cfg := lfdl.TrackConfig{Start: lfdl.Start{X: 100, Y: 200, Angle: 90}}
	p := Build(cfg, []lfdl.Command{lfdl.Straight{Distance: 50, Line: 1}})

	approx(t, "End.X", p.End.X, 100)
	approx(t, "End.Y", p.End.Y, 150)
}

func TestBuildArcRight(t *testing.T) {
	cfg := lfdl.DefaultConfig() // start (100, 200, 0)
	p := Build(cfg, []lfdl.Command{lfdl.Arc{Side: lfdl.SideRight, Radius: 100, Angle: 90, Line: 1}})

	if len(p.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(p.Segments))
	}
	seg := p.Segments[0]
	if seg.Kind != KindArc {
		t.Fatalf("kind = %q", seg.Kind)
	}
	approx(t, "Center.X", seg.Center.X, 100)
	approx(t, "Center.Y", seg.Center.Y, 300)
	approx(t, "StartAngle", seg.StartAngle, 90)
	approx(t, "SweepAngle", seg.SweepAngle, -90)
	approx(t, "End.X", p.End.X, 200)
	approx(t, "End.Y", p.End.Y, 300)
	approx(t, "End.Theta", p.End.Theta, -90)
}

func TestBuildArcLeft(t *testing.T) {
	cfg := lfdl.TrackConfig{Start: lfdl.Start{X: 100, Y: 200, Angle: 0}}
	p := Build(cfg, []lfdl.Command{lfdl.Arc{Side: lfdl.SideLeft, Radius: 100, Angle: 90, Line: 1}})

	seg := p.Segments[0]
	// Left turn: center is on the opposite side, up-screen.
	approx(t, "Center.X", seg.Center.X, 100)
	approx(t, "Center.Y", seg.Center.Y, 100)
	approx(t, "SweepAngle", seg.SweepAngle, 90)
	approx(t, "End.X", p.End.X, 200)
	approx(t, "End.Y", p.End.Y, 100)
	approx(t, "End.Theta", p.End.Theta, 90)
}

func TestBuildFullCircleClosure(t *testing.T) {
	for _, side := range []lfdl.Side{lfdl.SideLeft, lfdl.SideRight} {
		cfg := lfdl.TrackConfig{Start: lfdl.Start{X: 37, Y: 91, Angle: 23}}
		p := Build(cfg, []lfdl.Command{lfdl.Arc{Side: side, Radius: 150, Angle: 360, Line: 1}})

		approx(t, "End.X", p.End.X, 37)
		approx(t, "End.Y", p.End.Y, 91)
		if mod := math.Mod(p.End.Theta-23, 360); math.Abs(mod) > tol {
			t.Errorf("side %s: heading off by %v", side, mod)
		}
	}
}

func TestBuildChainsPoses(t *testing.T) {
	cfg := lfdl.TrackConfig{Start: lfdl.Start{X: 0, Y: 0, Angle: 0}}
	cmds := []lfdl.Command{
		lfdl.Straight{Distance: 100, Line: 1},
		lfdl.Arc{Side: lfdl.SideLeft, Radius: 50, Angle: 90, Line: 2},
		lfdl.Straight{Distance: 100, Line: 3},
	}
	p := Build(cfg, cmds)

	if len(p.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(p.Segments))
	}
	// Each segment starts where the previous one ended.
	for i := 1; i < len(p.Segments); i++ {
		if p.Segments[i].From != p.Segments[i-1].To {
			t.Errorf("segment %d does not start at previous end", i)
		}
	}
	// straight 100 then quarter left turn then straight 100 heading +90:
	// end at (150, -150) up-screen.
	approx(t, "End.X", p.End.X, 150)
	approx(t, "End.Y", p.End.Y, -150)
	approx(t, "End.Theta", p.End.Theta, 90)
}

func TestBuildMarks(t *testing.T) {
	cfg := lfdl.TrackConfig{Start: lfdl.Start{X: 0, Y: 0, Angle: 0}}
	cmds := []lfdl.Command{
		lfdl.Straight{Distance: 100, Line: 1},
		lfdl.Straight{Distance: 100, Line: 2},
	}
	p := Build(cfg, cmds)

	if len(p.Marks) != 2 {
		t.Fatalf("expected one mark per command boundary, got %d", len(p.Marks))
	}
	if p.Marks[0].Final {
		t.Error("interior mark flagged final")
	}
	if !p.Marks[1].Final {
		t.Error("last mark not flagged final")
	}
	if p.Marks[0].Line != 1 || p.Marks[1].Line != 2 {
		t.Errorf("mark lines = %d, %d", p.Marks[0].Line, p.Marks[1].Line)
	}

	// Heading 0: the normal points up-screen, ticks offset in y.
	m := p.Marks[0]
	approx(t, "mark From.X", m.From.X, 100)
	approx(t, "mark From.Y", m.From.Y, -MarkOffset)
	approx(t, "mark To.Y", m.To.Y, -(MarkOffset + MarkSize))

	// The final mark is mirrored across the pose.
	f := p.Marks[1]
	approx(t, "final From.Y", f.From.Y, MarkOffset)
	approx(t, "final To.Y", f.To.Y, MarkOffset+MarkSize)
}

func TestSampleEndpoints(t *testing.T) {
	cfg := lfdl.TrackConfig{Start: lfdl.Start{X: 100, Y: 200, Angle: 0}}
	cmds := []lfdl.Command{
		lfdl.Straight{Distance: 80, Line: 1},
		lfdl.Arc{Side: lfdl.SideRight, Radius: 120, Angle: 45, Line: 2},
	}
	p := Build(cfg, cmds)

	for _, seg := range p.Segments {
		pts := seg.Sample(16)
		if len(pts) != 16 {
			t.Fatalf("expected 16 points, got %d", len(pts))
		}
		first, last := pts[0], pts[len(pts)-1]
		approx(t, "first.X", first.X, seg.From.X)
		approx(t, "first.Y", first.Y, seg.From.Y)
		approx(t, "last.X", last.X, seg.To.X)
		approx(t, "last.Y", last.Y, seg.To.Y)
	}
}

func TestArcLabelOnCurve(t *testing.T) {
	cfg := lfdl.DefaultConfig()
	p := Build(cfg, []lfdl.Command{lfdl.Arc{Side: lfdl.SideLeft, Radius: 100, Angle: 180, Line: 1}})

	seg := p.Segments[0]
	dx := seg.Label.X - seg.Center.X
	dy := seg.Label.Y - seg.Center.Y
	approx(t, "label radius", math.Hypot(dx, dy), 100)
}
