// Kodokoe is a daemon that converts source code into a spoken audio summary.
// Each stage of the pipeline — describing the code, then synthesizing the
// description — degrades across a chain of backends so a request never fails
// on backend unavailability.
//
// Usage:
//
//	kodokoe [flags]
//	kodokoe --config /path/to/kodokoe.yaml
//
// @title        Kodo-Koe API
// @version      1.0
// @description  Converts source code into a spoken audio summary with tiered backend fallback.
// @BasePath     /
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	_ "github.com/whis-19/Kodo-Koe/docs"
	"github.com/whis-19/Kodo-Koe/internal/config"
	"github.com/whis-19/Kodo-Koe/internal/convert"
	"github.com/whis-19/Kodo-Koe/internal/describe"
	"github.com/whis-19/Kodo-Koe/internal/describe/ollama"
	"github.com/whis-19/Kodo-Koe/internal/describe/openai"
	"github.com/whis-19/Kodo-Koe/internal/health"
	"github.com/whis-19/Kodo-Koe/internal/speech"
	"github.com/whis-19/Kodo-Koe/internal/speech/piper"
	"github.com/whis-19/Kodo-Koe/internal/speech/system"
	"github.com/whis-19/Kodo-Koe/internal/transport"
	grpctransport "github.com/whis-19/Kodo-Koe/internal/transport/grpc"
	httptransport "github.com/whis-19/Kodo-Koe/internal/transport/http"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/kodokoe.local.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("kodokoe %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("kodokoe starting", "version", version)

	// Optional crash reporting.
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     "kodokoe@" + version,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
		slog.Info("sentry enabled", "environment", cfg.Sentry.Environment)
	}

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Build the documentation chain. The rule-based tier is always present;
	// model tiers join only when configured, and remote only when the mode
	// allows calling out.
	var describers []describe.Describer
	if cfg.Describe.Mode != "local" && cfg.Describe.Remote.APIKey != "" {
		describers = append(describers, openai.New(cfg.Describe.Remote))
		slog.Info("remote documentation tier enabled", "model", cfg.Describe.Remote.Model)
	} else {
		slog.Info("remote documentation tier disabled", "mode", cfg.Describe.Mode)
	}
	if cfg.Describe.Local.Endpoint != "" {
		if cfg.Describe.Local.InstructModel != "" {
			describers = append(describers, ollama.NewInstruct(cfg.Describe.Local))
		}
		if cfg.Describe.Local.BaseModel != "" {
			describers = append(describers, ollama.NewBase(cfg.Describe.Local))
		}
	}
	selector := describe.NewSelector(cfg.Describe.MaxChars, describers...)

	// Build the speech chain. The algorithmic and tone tiers are always
	// present; external engines join only when configured or installed.
	var engines []speech.Engine
	if cfg.Speech.Piper.Endpoint != "" {
		engines = append(engines, piper.New(cfg.Speech.Piper))
		slog.Info("neural speech tier enabled", "endpoint", cfg.Speech.Piper.Endpoint, "voice", cfg.Speech.Piper.Voice)
	}
	engines = append(engines, system.New(cfg.Speech.SystemEngine))
	chain := speech.NewChain(engines...)

	// Create the converter.
	converter := convert.New(selector, chain)

	// Initialize transports.
	transports := []transport.Transport{
		httptransport.New(cfg.Server.HTTPPort),
	}
	if cfg.Server.GRPCEnabled {
		transports = append(transports, grpctransport.New(cfg.Server.GRPCPort))
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, converter.Convert); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("kodokoe ready",
		"http_port", cfg.Server.HTTPPort,
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("kodokoe stopped")
}
