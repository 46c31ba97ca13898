package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pista-data/trackgen/internal/lfdl"
	"github.com/pista-data/trackgen/internal/rules"
)

func newTestServer() *httptest.Server {
	return httptest.NewServer(NewServer(rules.DefaultLimits()).ServeMux())
}

const demoTrack = "@start 250 100 0\n@size 600 400\nstraight 100\narc r 100 180\nstraight 100\narc r 100 180"

func TestHandleParse(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/track/parse", "text/plain", strings.NewReader(demoTrack))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got parseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	_, err = uuid.Parse(got.TrackID)
	assert.NoError(t, err, "track_id should be a uuid")
	assert.True(t, got.IsValid)
	assert.Len(t, got.Commands, 4)
	assert.Empty(t, got.Diagnostics)
	assert.Equal(t, 4, got.Validation.Stats.TotalCommands)
	require.NotNil(t, got.Path)
	assert.Len(t, got.Path.Segments, 4)
	assert.Equal(t, 600.0, got.Path.Canvas.Width)
}

func TestHandleParseReportsDiagnostics(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/track/parse", "text/plain", strings.NewReader("straight 100\nbogus"))
	require.NoError(t, err)
	defer resp.Body.Close()

	var got parseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, 2, got.Diagnostics[0].Line)
	assert.Len(t, got.Commands, 1)
}

func TestHandleParseUnitsQuery(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/track/parse?units=m", "text/plain", strings.NewReader("straight 1000"))
	require.NoError(t, err)
	defer resp.Body.Close()

	var got parseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1.0, got.Validation.Stats.TotalLength)
}

func TestHandleParseMethodNotAllowed(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/track/parse")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleRenderSVG(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/track/render.svg?src=" + url.QueryEscape(demoTrack))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
}

func TestHandleRenderSVGRejectsEmptyTrack(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/track/render.svg?src=" + url.QueryEscape("# only comments"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleConfig(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/config")
	require.NoError(t, err)
	defer resp.Body.Close()

	var lim rules.Limits
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lim))
	assert.Equal(t, rules.DefaultLimits(), lim)
}

func TestHandlePreview(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/debug/track/preview?src=" + url.QueryEscape(demoTrack))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestHandlePreviewRequiresSrc(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/debug/track/preview")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEncodeCommands(t *testing.T) {
	cmds := encodeCommands(lfdl.Parse(demoTrack).Commands)
	require.Len(t, cmds, 4)
	assert.Equal(t, commandJSON{Kind: "straight", Line: 3, Distance: 100}, cmds[0])
	assert.Equal(t, commandJSON{Kind: "arc", Line: 4, Side: "r", Radius: 100, Angle: 180}, cmds[1])
}
