package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	traintracker "github.com/theoremus-urban-solutions/train-tracker"
	"github.com/theoremus-urban-solutions/train-tracker/config"
	"github.com/theoremus-urban-solutions/train-tracker/tracker"
	"github.com/theoremus-urban-solutions/train-tracker/upstream"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (overrides default search paths)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	baseURL := flag.String("base_url", "", "live-location API base URL (overrides config)")
	pollIntervalSecs := flag.Int("poll_interval_secs", 0, "fleet poll interval in seconds (overrides config)")
	absenceToleranceSecs := flag.Int("absence_tolerance_secs", 0, "seconds a selected train may be missing from snapshots before deselection (overrides config)")
	flag.Parse()

	traintracker.InitLogging()

	if err := godotenv.Load(); err == nil {
		log.Printf(".env loaded")
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("failed to read %s: %v", *configPath, err)
		}
		cfg, err := config.Parse(data)
		if err != nil {
			log.Fatalf("failed to parse %s: %v", *configPath, err)
		}
		config.Config = cfg
	} else if err := config.LoadAppConfig(); err != nil {
		log.Printf("config.yml not loaded (%v), using defaults", err)
		config.Config, _ = config.Parse([]byte("{}"))
	}

	cfg := config.Config
	applyEnvOverrides(&cfg)
	applyFlagOverrides(&cfg, *port, *baseURL, *pollIntervalSecs, *absenceToleranceSecs)
	if cfg.Upstream.BaseURL == "" {
		log.Fatalf("upstream base URL is required (config upstream.baseURL, UPSTREAM_BASE_URL or --base_url)")
	}

	client := upstream.NewClient(cfg.Upstream)
	hub := traintracker.NewHub()
	trk := tracker.New(client, tracker.Options{
		PollInterval:     time.Duration(cfg.Tracker.PollIntervalMS) * time.Millisecond,
		AbsenceTolerance: time.Duration(cfg.Tracker.AbsenceToleranceMS) * time.Millisecond,
		OnChange:         hub.Broadcast,
	})

	runCtx, cancel := context.WithCancel(context.Background())
	go hub.Run(runCtx)
	go trk.Run(runCtx)

	srv := traintracker.NewServer(trk, hub, cfg.Server.Port)
	srv.Start()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")

	// Stop the tracker and hub first so no update lands mid-shutdown.
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}

// applyEnvOverrides layers process environment settings on top of the file
// configuration. Flags still win over both.
func applyEnvOverrides(cfg *config.AppConfig) {
	if base := os.Getenv("UPSTREAM_BASE_URL"); base != "" {
		cfg.Upstream.BaseURL = base
	}
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			cfg.Server.Port = v
		}
	}
}

// applyFlagOverrides layers command-line overrides on top of config and
// environment. Zero values mean "not set".
func applyFlagOverrides(cfg *config.AppConfig, port int, baseURL string, pollIntervalSecs, absenceToleranceSecs int) {
	if port > 0 {
		cfg.Server.Port = port
	}
	if baseURL != "" {
		cfg.Upstream.BaseURL = baseURL
	}
	if pollIntervalSecs > 0 {
		cfg.Tracker.PollIntervalMS = pollIntervalSecs * 1000
	}
	if absenceToleranceSecs > 0 {
		cfg.Tracker.AbsenceToleranceMS = absenceToleranceSecs * 1000
	}
}
