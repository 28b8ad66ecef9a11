package config

import (
	"errors"
	"fmt"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Sentinel codes, usable with errors.Is.
var (
	ErrNoStages = ValidationError{Code: "NO_STAGES"}
	ErrBadRange = ValidationError{Code: "BAD_RANGE"}
)

// Is matches validation errors by code so callers can test against the sentinels.
func (e ValidationError) Is(target error) bool {
	var v ValidationError
	if !errors.As(target, &v) {
		return false
	}
	return v.Code == e.Code
}

// Validate checks every table and returns all problems joined.
func (c *WiresConfig) Validate() error {
	var errs []error

	if len(c.Wires.Stages) == 0 {
		errs = append(errs, ValidationError{Code: ErrNoStages.Code, Message: "wires.stages is empty"})
	}
	if len(c.Multiplier) == 0 {
		errs = append(errs, ValidationError{Code: ErrNoStages.Code, Message: "multiplier_stages is empty"})
	}
	if c.Packets.Enabled && len(c.Packets.Stages) == 0 {
		errs = append(errs, ValidationError{Code: ErrNoStages.Code, Message: "packets enabled but packets.stages is empty"})
	}
	if c.Wires.WireSpace < 0 {
		errs = append(errs, badRange("wires.wire_space must be >= 0"))
	}
	if c.Wires.MaxDriftTime < 0 {
		errs = append(errs, badRange("wires.max_drift_time must be >= 0"))
	}

	for i, s := range c.Wires.Stages {
		prefix := fmt.Sprintf("wires.stages[%d]", i)
		if s.InnerRadius < 0 || s.OuterRadius < s.InnerRadius {
			errs = append(errs, badRange("%s: need 0 <= inner_radius <= outer_radius", prefix))
		}
		if s.MinSegments < 1 || s.MaxSegments < s.MinSegments {
			errs = append(errs, badRange("%s: need 1 <= min_segments <= max_segments", prefix))
		}
		if s.MinSpawnInterval < 0 || s.MaxSpawnInterval < s.MinSpawnInterval {
			errs = append(errs, badRange("%s: need 0 <= min_spawn_interval <= max_spawn_interval", prefix))
		}
		if s.SparkSpeed <= 0 {
			errs = append(errs, badRange("%s: spark_speed must be > 0", prefix))
		}
		if s.DefectChance < 0 || s.DefectChance > 1 {
			errs = append(errs, badRange("%s: defect_chance must be in [0, 1]", prefix))
		}
		if s.MaxWires < 1 {
			errs = append(errs, badRange("%s: max_wires must be >= 1", prefix))
		}
	}

	for i, s := range c.Multiplier {
		if s.Duration < 0 || s.HandicapDuration < 0 {
			errs = append(errs, badRange("multiplier_stages[%d]: durations must be >= 0", i))
		}
		if s.Lives < 1 {
			errs = append(errs, badRange("multiplier_stages[%d]: lives must be >= 1", i))
		}
	}

	for i, s := range c.Packets.Stages {
		prefix := fmt.Sprintf("packets.stages[%d]", i)
		if s.InnerRadius < 0 || s.OuterRadius < s.InnerRadius {
			errs = append(errs, badRange("%s: need 0 <= inner_radius <= outer_radius", prefix))
		}
		if s.MinSpeed > s.MaxSpeed {
			errs = append(errs, badRange("%s: min_speed > max_speed", prefix))
		}
		if s.MinPerCluster > s.MaxPerCluster {
			errs = append(errs, badRange("%s: min_per_cluster > max_per_cluster", prefix))
		}
		if s.ClusterChance < 0 || s.ClusterChance > 1 {
			errs = append(errs, badRange("%s: cluster_chance must be in [0, 1]", prefix))
		}
	}

	return errors.Join(errs...)
}

func badRange(format string, args ...any) error {
	return ValidationError{Code: ErrBadRange.Code, Message: fmt.Sprintf(format, args...)}
}
