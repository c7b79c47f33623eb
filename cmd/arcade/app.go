package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"

	"github.com/gesturelab/gesture-arcade/internal/config"
	"github.com/gesturelab/gesture-arcade/internal/gestures"
	"github.com/gesturelab/gesture-arcade/internal/storage"
	"github.com/gesturelab/gesture-arcade/internal/telemetry"
	"github.com/gesturelab/gesture-arcade/internal/tracking"
)

// app bundles everything a play session needs: persisted settings, the
// active gesture, credentials, the submitter, and the session tracker.
// It is the composition root for the play, menu, and serve commands.
type app struct {
	store     *storage.Store // May be nil when the database cannot be opened
	gestures  *gestures.Context
	auth      *telemetry.Auth
	submitter *telemetry.Submitter
	tracker   *tracking.Tracker
	logger    *log.Logger
	telemetry config.TelemetryConfig
}

// newApp wires the full telemetry stack from flags, the settings store,
// and the telemetry config file.
func newApp() *app {
	logger := newLogger()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open settings database", "error", err)
		store = nil
	}

	telemetryCfg, err := config.LoadTelemetry("")
	if err != nil {
		logger.Warn("could not load telemetry config", "error", err)
		telemetryCfg = config.DefaultTelemetryConfig()
	}

	auth := telemetry.NewAuth(store, logger)
	if flagAPIURL != "" {
		auth.SetRuntimeAPIURL(flagAPIURL)
	} else if auth.APIURL() == "" && telemetryCfg.APIURL != "" {
		auth.SetRuntimeAPIURL(telemetryCfg.APIURL)
	}

	submitter := telemetry.NewSubmitter(auth, telemetry.Options{
		Timeout:  time.Duration(telemetryCfg.TimeoutSeconds) * time.Second,
		DevToken: telemetryCfg.DevToken,
		Logger:   logger,
	})

	gestureCtx := gestures.NewContext(resolveGesture(store, logger))
	tracker := tracking.New(gestureCtx, submitter, clock.New(), logger)

	return &app{
		store:     store,
		gestures:  gestureCtx,
		auth:      auth,
		submitter: submitter,
		tracker:   tracker,
		logger:    logger,
		telemetry: telemetryCfg,
	}
}

// resolveGesture returns the gesture code for this run: the --gesture
// flag wins, then the persisted setting, then empty (unknown).
func resolveGesture(store *storage.Store, logger *log.Logger) string {
	if flagGesture != "" {
		return flagGesture
	}
	if store != nil {
		code, err := store.Gesture()
		if err != nil {
			logger.Warn("could not read persisted gesture", "error", err)
			return ""
		}
		return code
	}
	return ""
}

// setGesture makes code the active gesture and persists it.
func (a *app) setGesture(code string) {
	a.gestures.SetActiveCode(code)
	if a.store != nil {
		if err := a.store.SetGesture(code); err != nil {
			a.logger.Warn("could not persist gesture", "error", err)
		}
	}
}

// close flushes in-flight session reports (bounded) and releases the
// settings store.
func (a *app) close() {
	flush := time.Duration(a.telemetry.ShutdownFlushSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), flush)
	defer cancel()

	if err := a.submitter.Close(ctx); err != nil {
		a.logger.Warn("telemetry flush incomplete", "error", err)
	}

	if a.store != nil {
		a.store.Close()
	}
}

// newLogger builds the process logger. Output goes to a log file so the
// terminal stays clean for the TUI; stderr is the fallback.
func newLogger() *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.NewWithOptions(os.Stderr, opts)
	}

	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.NewWithOptions(os.Stderr, opts)
	}

	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.NewWithOptions(os.Stderr, opts)
	}

	return log.NewWithOptions(f, opts)
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
