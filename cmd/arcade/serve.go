package main

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"github.com/gesturelab/gesture-arcade/internal/gestures"
	"github.com/gesturelab/gesture-arcade/internal/platform/tui"
	"github.com/gesturelab/gesture-arcade/internal/tracking"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Starts an SSH server that lets players connect and play over the
network. Each connection gets its own menu, gesture selection, and
session tracking; session reports share one submitter.

Examples:
  arcade serve
  arcade serve --ssh :2222
  arcade serve --ssh :2222 --host-key ./host_key`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key (auto-generated if empty)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle connection timeout")
}

func runServe(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
	}

	// Each connection gets its own gesture context and tracker so
	// concurrent players never share session state. The submitter and
	// credentials are shared.
	factory := func() tui.SessionDeps {
		gestureCtx := gestures.NewContext(a.gestures.ActiveCode())
		return tui.SessionDeps{
			Tracker:  tracking.New(gestureCtx, a.submitter, clock.New(), a.logger),
			Gestures: gestureCtx,
		}
	}

	server, err := tui.NewSSHServer(cfg, factory)
	if err != nil {
		a.close()
		fatalf("Error creating SSH server: %v", err)
	}

	if err := server.ListenAndServe(); err != nil {
		a.close()
		fatalf("Server error: %v", err)
	}
}
