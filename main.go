package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pista-data/trackgen/internal/api"
	"github.com/pista-data/trackgen/internal/config"
	"github.com/pista-data/trackgen/internal/rules"
	"github.com/pista-data/trackgen/internal/version"
)

var (
	//go:embed static/*
	staticFiles embed.FS
	devMode     = flag.Bool("dev", false, "serve ./static from disk instead of the embedded copy")
	listen      = flag.String("listen", ":8080", "listen address")
	rulesFile   = flag.String("rules", "", "optional JSON file overriding the RoboCore rule defaults")
)

// resolveLimits returns the active rule set: the RoboCore defaults,
// overlaid with the overrides file when one is given.
func resolveLimits(path string) (rules.Limits, error) {
	lim := rules.DefaultLimits()
	if path == "" {
		return lim, nil
	}
	cfg, err := config.LoadRulesConfig(path)
	if err != nil {
		return lim, err
	}
	return cfg.Apply(lim), nil
}

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("listen address is required")
	}

	limits, err := resolveLimits(*rulesFile)
	if err != nil {
		log.Fatalf("failed to load rules config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()

	// API routes carry their own /api prefix.
	apiMux := api.NewServer(limits).ServeMux()
	mux.Handle("/api/", apiMux)
	mux.Handle("/debug/", apiMux)

	// The editor page comes from the embedded filesystem in production,
	// or from ./static in dev for easier iteration without restarting.
	var staticHandler http.Handler
	if *devMode {
		staticHandler = http.FileServer(http.Dir("./static"))
	} else {
		sub, err := fs.Sub(staticFiles, "static")
		if err != nil {
			log.Fatalf("failed to open embedded static files: %v", err)
		}
		staticHandler = http.FileServer(http.FS(sub))
	}
	mux.Handle("/", staticHandler)

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	go func() {
		log.Printf("trackgen %s listening on %s", version.Version, *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}
