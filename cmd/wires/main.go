// wires is an endless runner for the terminal: ride sparks along wires and
// jump between them before the current wire runs out.
//
// Usage:
//
//	wires list              - List available game variants
//	wires play [game]       - Play a game (default: wires)
//	wires menu              - Start menu to pick a variant interactively
//	wires sim               - Run a headless autopilot simulation
//	wires report <dir>      - Summarize a recorded simulation
//	wires serve             - Start SSH server for remote play
//	wires scores [game]     - Show high scores and recent runs
//	wires config            - Print or initialize the game config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.wires/scores.db)
//	--config <path>     - Use a custom game config YAML
//	--preset <name>     - Difficulty preset: easy, normal, hard, fixed
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Write logs to a file during interactive play
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wires/internal/config"
	"github.com/vovakirdan/wires/internal/core"
	"github.com/vovakirdan/wires/internal/games/wires"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wires",
	Short: "Wires - ride the spark, mind the gap",
	Long: `Wires is an endless runner played in your terminal.

You ride a spark along a wire. Wires run out; jump to another spark before
yours reaches the end. Jumps and collected data packets raise the score
multiplier, misses cost lives.

Examples:
  wires play
  wires play wires_zen
  wires play --preset hard --seed 42
  wires sim --ticks 36000 --out ./run1
  wires serve --ssh :2222
  wires scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagPreset != "" && config.ParsePreset(flagPreset) == "" {
			return fmt.Errorf("unknown preset %q (want easy, normal, hard or fixed)", flagPreset)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wires/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive play (default: logs discarded)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger writing to w at the --log-level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "wires",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// interactiveLogger routes game logs away from the alt screen: to --log-file
// when set, otherwise nowhere. The returned func closes the file.
func interactiveLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// runtimeConfig builds the platform config from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		ConfigPath: flagConfig,
		Preset:     flagPreset,
	}
}

// setupInteractive wires game logging for a TUI session.
func setupInteractive() func() {
	logger, closeLog := interactiveLogger()
	wires.SetLogger(logger)
	return closeLog
}
