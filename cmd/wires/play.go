package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wires/internal/platform/tui"
	"github.com/vovakirdan/wires/internal/registry"
	"github.com/vovakirdan/wires/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play Wires",
	Long: `Start a run of the given variant (default: wires).

Controls:
  Space/Up     - Jump to the targeted spark
  Left/Right   - Cycle target (also h/l)
  B            - Boost
  D            - Toggle drifting
  A            - Toggle autopilot
  P            - Pause
  Esc/M        - Leave (when paused or after game over)
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot to ~/.wires/screenshots
  Q/Ctrl+C     - Quit

Difficulty presets:
  easy   - No multiplier loss, longer drifts, extra lives
  normal - Config as loaded
  hard   - Start one stage up, shorter drifts, fewer lives
  fixed  - Multiplier never rises on its own

Examples:
  wires play
  wires play wires_zen
  wires play --preset hard
  wires play --config ./my-wires.yaml --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "wires"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'wires list' to see available games.")
		os.Exit(1)
	}

	closeLog := setupInteractive()
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig(terminalSize()))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
