// Package lfdl implements the line-follower track description language:
// a line-oriented text format of configuration directives (@size, @start)
// and drawing commands (straight, arc). Parsing never fails as a whole;
// malformed lines are skipped and reported as diagnostics.
package lfdl

// Size is the declared track canvas in millimetres.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Start is the initial pose of the track: position in millimetres and
// heading in degrees (0° along +x, counter-clockwise positive).
type Start struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// TrackConfig is the track-level configuration assembled from directives.
// It is built once per parse and not mutated afterwards.
type TrackConfig struct {
	Size  Size  `json:"size"`
	Start Start `json:"start"`
}

// DefaultConfig returns the configuration used when a document declares
// no @size or @start directive.
func DefaultConfig() TrackConfig {
	return TrackConfig{
		Size:  Size{Width: 600, Height: 400},
		Start: Start{X: 100, Y: 200, Angle: 0},
	}
}

// Side selects the turn direction of an arc command.
type Side string

const (
	SideLeft  Side = "l"
	SideRight Side = "r"
)

// Command is the closed set of drawing commands. The only implementations
// are Straight and Arc; consumers switch exhaustively on the two.
type Command interface {
	// SourceLine reports the 1-based line the command was parsed from.
	SourceLine() int
	command()
}

// Straight moves the pose forward by Distance millimetres.
type Straight struct {
	Distance float64
	Line     int
}

func (s Straight) SourceLine() int { return s.Line }
func (Straight) command()          {}

// Arc turns the pose along a circular arc of the given radius (mm) and
// sweep magnitude (degrees), to the side given by Side.
type Arc struct {
	Side   Side
	Radius float64
	Angle  float64
	Line   int
}

func (a Arc) SourceLine() int { return a.Line }
func (Arc) command()          {}

// Diagnostic describes one skipped source line.
type Diagnostic struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ParseResult is the complete outcome of interpreting one document.
// Valid is true when at least one command parsed; a document with zero
// commands is unusable by renderers even if no line failed.
type ParseResult struct {
	Config      TrackConfig  `json:"config"`
	Commands    []Command    `json:"-"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Valid       bool         `json:"is_valid"`
}
