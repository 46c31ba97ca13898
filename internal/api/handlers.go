package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/pista-data/trackgen/internal/httputil"
	"github.com/pista-data/trackgen/internal/lfdl"
	"github.com/pista-data/trackgen/internal/render"
	"github.com/pista-data/trackgen/internal/rules"
	"github.com/pista-data/trackgen/internal/track"
)

// commandJSON is the wire form of one parsed command. Distance is set
// for straights; side, radius, and angle for arcs.
type commandJSON struct {
	Kind     string  `json:"kind"`
	Line     int     `json:"line"`
	Distance float64 `json:"distance,omitempty"`
	Side     string  `json:"side,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Angle    float64 `json:"angle,omitempty"`
}

func encodeCommands(cmds []lfdl.Command) []commandJSON {
	out := make([]commandJSON, 0, len(cmds))
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case lfdl.Straight:
			out = append(out, commandJSON{Kind: "straight", Line: c.Line, Distance: c.Distance})
		case lfdl.Arc:
			out = append(out, commandJSON{Kind: "arc", Line: c.Line, Side: string(c.Side), Radius: c.Radius, Angle: c.Angle})
		}
	}
	return out
}

type parseResponse struct {
	TrackID     string                 `json:"track_id"`
	Config      lfdl.TrackConfig       `json:"config"`
	Commands    []commandJSON          `json:"commands"`
	Diagnostics []lfdl.Diagnostic      `json:"diagnostics"`
	IsValid     bool                   `json:"is_valid"`
	Validation  rules.ValidationResult `json:"validation"`
	Path        *track.Path            `json:"path"`
}

// readSource extracts the LFDL document from the request: the "src"
// form value or query parameter if present, otherwise the raw body.
func readSource(r *http.Request) (string, error) {
	if src := r.FormValue("src"); src != "" {
		return src, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	return string(body), nil
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	src, err := readSource(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	parsed := lfdl.Parse(src)
	validation := rules.ValidateWith(s.limits, parsed)
	if units := r.URL.Query().Get("units"); units != "" {
		validation.Stats = rules.ConvertStats(validation.Stats, units)
	}

	resp := parseResponse{
		TrackID:     uuid.NewString(),
		Config:      parsed.Config,
		Commands:    encodeCommands(parsed.Commands),
		Diagnostics: parsed.Diagnostics,
		IsValid:     parsed.Valid,
		Validation:  validation,
		Path:        track.Build(parsed.Config, parsed.Commands),
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []lfdl.Diagnostic{}
	}
	httputil.WriteJSONOK(w, resp)
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	src, err := readSource(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if src == "" {
		httputil.BadRequest(w, "missing track source")
		return
	}

	parsed := lfdl.Parse(src)
	if !parsed.Valid {
		httputil.BadRequest(w, "track has no drawable commands")
		return
	}

	path := track.Build(parsed.Config, parsed.Commands)
	opts := render.Options{
		ShowLabels:  r.URL.Query().Get("labels") != "false",
		LineWidthMM: s.limits.LineWidth,
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteImage(w, path, "svg", opts); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render track: %v", err))
	}
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, s.limits)
}
