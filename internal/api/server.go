// Package api exposes the track pipeline over HTTP: one endpoint parses,
// validates, and builds the geometry for an LFDL document in a single
// synchronous pass; further endpoints render the result as SVG or as an
// interactive preview page.
package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pista-data/trackgen/internal/rules"
)

// ANSI escape codes for request logging.
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// Server holds the active rule set. The pipeline itself is stateless:
// every request re-parses its document from scratch.
type Server struct {
	limits rules.Limits
}

// NewServer creates a Server validating against the given limits.
func NewServer(limits rules.Limits) *Server {
	return &Server{limits: limits}
}

// ServeMux returns the route table for the track API.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/track/parse", s.handleParse)
	mux.HandleFunc("/api/track/render.svg", s.handleRenderSVG)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/debug/track/preview", s.handlePreview)
	return mux
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
