package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the named presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset maps a CLI string to a preset. Unknown strings return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
//
//	easy   - no stage decrease, longer drift window, extra lives
//	normal - config as loaded
//	hard   - start one stage up, shorter drift, one life fewer per stage
//	fixed  - no auto-increase, the run stays at the start stage
func ApplyPreset(cfg *WiresConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Score.AllowDecrease = false
		cfg.Wires.DriftingEnabled = true
		cfg.Wires.MaxDriftTime *= 1.5
		for i := range cfg.Multiplier {
			cfg.Multiplier[i].Lives++
		}
	case DifficultyHard:
		cfg.Score.AllowDecrease = true
		cfg.Score.StartStage = StageIndex(len(cfg.Multiplier), cfg.Score.StartStage+1)
		cfg.Wires.MaxDriftTime *= 0.6
		for i := range cfg.Multiplier {
			if cfg.Multiplier[i].Lives > 1 {
				cfg.Multiplier[i].Lives--
			}
		}
	case DifficultyFixed:
		cfg.Score.AutoIncrease = false
	}
}

// StageIndex clamps a stage to the bounds of a table of length n.
// An empty table yields 0.
func StageIndex(n, stage int) int {
	if n <= 0 || stage < 0 {
		return 0
	}
	if stage >= n {
		return n - 1
	}
	return stage
}

// WireStage returns the wire properties for a stage, clamped to the table.
func (c *WiresConfig) WireStage(stage int) WireStageProperties {
	if len(c.Wires.Stages) == 0 {
		return WireStageProperties{}
	}
	return c.Wires.Stages[StageIndex(len(c.Wires.Stages), stage)]
}

// PacketStage returns the packet properties for a stage, clamped to the table.
func (c *WiresConfig) PacketStage(stage int) PacketStageProperties {
	if len(c.Packets.Stages) == 0 {
		return PacketStageProperties{}
	}
	return c.Packets.Stages[StageIndex(len(c.Packets.Stages), stage)]
}

// MultiplierStage returns the multiplier properties for a stage, clamped to the table.
func (c *WiresConfig) MultiplierStage(stage int) MultiplierStageProperties {
	if len(c.Multiplier) == 0 {
		return MultiplierStageProperties{}
	}
	return c.Multiplier[StageIndex(len(c.Multiplier), stage)]
}

// MaxStage returns the highest multiplier stage.
func (c *WiresConfig) MaxStage() int {
	if len(c.Multiplier) == 0 {
		return 0
	}
	return len(c.Multiplier) - 1
}
