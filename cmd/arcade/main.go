// arcade is a TUI arcade platform with gesture-controlled mini games and
// session telemetry.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade auth              - Manage API credentials
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set settings database path (default: ~/.arcade/arcade.db)
//	--gesture <code>   - Control gesture code for this run
//	--api-url <url>    - Game API base URL override
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/gesturelab/gesture-arcade/internal/games/breakout"
	_ "github.com/gesturelab/gesture-arcade/internal/games/dino"
	_ "github.com/gesturelab/gesture-arcade/internal/games/flappy"
	_ "github.com/gesturelab/gesture-arcade/internal/games/invaders"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagGesture string
	flagAPIURL  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Gesture Arcade - Play gesture-controlled games in your terminal",
	Long: `Gesture Arcade is a terminal-based gaming platform. Each play session
is tracked (which actions you performed and when) and reported to the
game API when the session ends.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  auth     - Manage API credentials

Examples:
  arcade list
  arcade play flappy
  arcade play invaders --gesture 33
  arcade menu
  arcade serve --ssh :2222
  arcade auth set-token <token>`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to settings database")
	rootCmd.PersistentFlags().StringVar(&flagGesture, "gesture", "", "Control gesture code (e.g. 30, 33)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Game API base URL override")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(authCmd)
}
