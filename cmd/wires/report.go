package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wires/internal/telemetry"
)

var reportCmd = &cobra.Command{
	Use:   "report <dir|samples.csv>",
	Short: "Summarize a recorded simulation",
	Long: `Read samples written by 'wires sim --out' and print summary statistics.

Examples:
  wires report ./runs/42
  wires report ./runs/42/samples.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, telemetry.SamplesFile)
	}

	samples, err := telemetry.LoadSamplesFile(path)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("%s contains no samples", path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), telemetry.Summarize(samples))
	return nil
}
