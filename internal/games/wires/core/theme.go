package core

import "github.com/vovakirdan/wires/internal/config"

// Theme is a wire factory: shared, immutable cosmetic configuration for
// wires, sparks and packets. Many wires reference one theme.
type Theme struct {
	name          string
	wireColor     string
	sparkColor    string
	packetColor   string
	music         string
	segmentLength float64
}

// NewTheme builds a theme from configuration.
func NewTheme(cfg config.ThemeConfig) *Theme {
	return &Theme{
		name:          cfg.Name,
		wireColor:     cfg.WireColor,
		sparkColor:    cfg.SparkColor,
		packetColor:   cfg.PacketColor,
		music:         cfg.Music,
		segmentLength: cfg.SegmentLength,
	}
}

func (t *Theme) Name() string        { return t.name }
func (t *Theme) WireColor() string   { return t.wireColor }
func (t *Theme) SparkColor() string  { return t.sparkColor }
func (t *Theme) PacketColor() string { return t.packetColor }
func (t *Theme) Music() string       { return t.music }

// SegmentLength is the length of the wire segment mesh along the wire
// plane. Zero means the asset did not provide one.
func (t *Theme) SegmentLength() float64 { return t.segmentLength }
