package telemetry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/wires/internal/config"
)

// Output file names inside a run directory.
const (
	SamplesFile = "samples.csv"
	EventsFile  = "events.csv"
	ConfigFile  = "config.yaml"
)

// Output writes run telemetry as CSV files in one directory. A nil *Output
// is valid and discards everything.
type Output struct {
	dir         string
	samplesFile *os.File
	eventsFile  *os.File

	samplesHeader bool
	eventsHeader  bool
}

// NewOutput creates dir and opens the CSV files. Returns nil if dir is empty.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}

	samples, err := os.Create(filepath.Join(dir, SamplesFile))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", SamplesFile, err)
	}
	evs, err := os.Create(filepath.Join(dir, EventsFile))
	if err != nil {
		samples.Close()
		return nil, fmt.Errorf("telemetry: creating %s: %w", EventsFile, err)
	}
	return &Output{dir: dir, samplesFile: samples, eventsFile: evs}, nil
}

// WriteConfig saves the effective configuration next to the CSV files.
func (o *Output) WriteConfig(cfg config.WiresConfig) error {
	if o == nil {
		return nil
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(o.dir, ConfigFile), data, 0o644); err != nil {
		return fmt.Errorf("telemetry: writing %s: %w", ConfigFile, err)
	}
	return nil
}

// WriteSamples appends rows to samples.csv. The header is written once.
func (o *Output) WriteSamples(rows []Sample) error {
	if o == nil || len(rows) == 0 {
		return nil
	}
	if err := writeRows(o.samplesFile, rows, &o.samplesHeader); err != nil {
		return fmt.Errorf("telemetry: writing samples: %w", err)
	}
	return nil
}

// WriteEvents appends rows to events.csv. The header is written once.
func (o *Output) WriteEvents(rows []EventRecord) error {
	if o == nil || len(rows) == 0 {
		return nil
	}
	if err := writeRows(o.eventsFile, rows, &o.eventsHeader); err != nil {
		return fmt.Errorf("telemetry: writing events: %w", err)
	}
	return nil
}

func writeRows(w io.Writer, rows any, header *bool) error {
	if !*header {
		*header = true
		return gocsv.Marshal(rows, w)
	}
	return gocsv.MarshalWithoutHeaders(rows, w)
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close closes both CSV files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	return errors.Join(o.samplesFile.Close(), o.eventsFile.Close())
}

// LoadSamples reads a samples.csv produced by Output.
func LoadSamples(r io.Reader) ([]Sample, error) {
	var rows []Sample
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("telemetry: reading samples: %w", err)
	}
	return rows, nil
}

// LoadSamplesFile reads samples from a file path.
func LoadSamplesFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	defer f.Close()
	return LoadSamples(f)
}
