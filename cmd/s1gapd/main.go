package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcalzada-xor/s1gap/internal/app"
	"github.com/lcalzada-xor/s1gap/internal/config"
	"github.com/lcalzada-xor/s1gap/internal/logging"
	"github.com/lcalzada-xor/s1gap/internal/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "s1gapd:", err)
		os.Exit(2)
	}

	// Setup Structured Logging
	level, _ := cfg.Level()
	_, logCloser, err := logging.Setup(os.Stdout, logging.Options{Level: level, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "s1gapd:", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// Initialize Tracing; spans only go to stderr at debug level.
	traceOut := io.Discard
	if level <= slog.LevelDebug {
		traceOut = os.Stderr
	}
	shutdownTracer, err := telemetry.InitTracer(traceOut, version)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				slog.Error("Failed to shutdown tracer", "error", err)
			}
		}()
	}

	// Root Context with cancellation on Interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	application.Log.Info("s1gapd starting", "version", version, "interface", cfg.Interface)

	if err := application.Run(ctx); err != nil {
		application.Log.Error("Application error", "error", err)
		os.Exit(1)
	}
}
