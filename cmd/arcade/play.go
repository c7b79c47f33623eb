package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gesturelab/gesture-arcade/internal/core"
	"github.com/gesturelab/gesture-arcade/internal/games/breakout"
	"github.com/gesturelab/gesture-arcade/internal/games/dino"
	"github.com/gesturelab/gesture-arcade/internal/games/flappy"
	"github.com/gesturelab/gesture-arcade/internal/games/invaders"
	"github.com/gesturelab/gesture-arcade/internal/platform/tui"
	"github.com/gesturelab/gesture-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. The session is tracked and
reported to the game API when it ends.

Controls:
  A/D or Arrows  - Move left/right
  Space/W/Up     - Jump/Flap/Launch (Space also fires)
  X/F            - Fire
  P              - Pause
  R              - Restart
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play flappy
  arcade play dino --difficulty easy
  arcade play invaders --gesture 33
  arcade play breakout --config ./my-breakout.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags forwards the config path and difficulty preset to the
// selected game package before the game instance is created.
func applyGameFlags(gameID string) {
	switch gameID {
	case "flappy":
		flappy.SetConfigPath(flagConfig)
		flappy.SetDifficultyPreset(flagDifficulty)
	case "dino":
		dino.SetConfigPath(flagConfig)
		dino.SetDifficultyPreset(flagDifficulty)
	case "breakout":
		breakout.SetConfigPath(flagConfig)
		breakout.SetDifficultyPreset(flagDifficulty)
	case "invaders":
		invaders.SetConfigPath(flagConfig)
		invaders.SetDifficultyPreset(flagDifficulty)
	}
}

// terminalRuntime builds the runtime config from the current terminal.
func terminalRuntime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	applyGameFlags(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fatalf("Error creating game: %v", err)
	}

	a := newApp()
	defer a.close()

	if _, err := tui.Run(game, a.tracker, terminalRuntime()); err != nil {
		a.close()
		fatalf("Error running game: %v", err)
	}
}
