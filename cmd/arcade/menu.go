package main

import (
	"github.com/spf13/cobra"

	"github.com/gesturelab/gesture-arcade/internal/platform/tui"
	"github.com/gesturelab/gesture-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive game picker menu",
	Long: `Opens an interactive menu to browse and play games, and to pick
the control gesture for your sessions.`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	cfg := terminalRuntime()

	// Menu loop: picker -> game or gesture screen -> back to picker
	for {
		result, err := tui.RunMenu(cfg, a.gestures.ActiveCode())
		if err != nil {
			a.close()
			fatalf("Error running menu: %v", err)
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsGesture {
			picked, err := tui.RunGesturePicker(cfg, a.gestures.ActiveCode())
			if err != nil {
				a.close()
				fatalf("Error running gesture picker: %v", err)
			}
			if picked.Quit {
				return
			}
			if picked.Code != "" {
				a.setGesture(picked.Code)
			}
			continue
		}

		if result.GameID == "" {
			return
		}

		applyGameFlags(result.GameID)
		game, err := registry.Create(result.GameID)
		if err != nil {
			a.close()
			fatalf("Error creating game: %v", err)
		}

		quit, err := tui.Run(game, a.tracker, cfg)
		if err != nil {
			a.close()
			fatalf("Error running game: %v", err)
		}
		if quit {
			return
		}
	}
}
