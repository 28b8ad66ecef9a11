package config

import (
	_ "embed"
)

//go:embed defaults/wires.yaml
var defaultWiresYAML []byte

// DefaultWiresConfig returns the hardcoded Wires configuration. It mirrors
// defaults/wires.yaml and is used when the embedded YAML cannot be parsed.
func DefaultWiresConfig() WiresConfig {
	return WiresConfig{
		World: WorldConfig{
			Forward: Vec3{Z: 1},
			Up:      Vec3{Y: 1},
		},
		Wires: WireConfig{
			WireSpace:             3.0,
			SpawnSegmentOffset:    10,
			SpawnSegmentRange:     4,
			DespawnSegmentsBehind: 6,
			InitialSegments:       20,
			DriftingEnabled:       true,
			MaxDriftTime:          2.5,
			SwitchBlendDuration:   0.15,
			MaxForcedGenerations:  16,
			Stages: []WireStageProperties{
				{InnerRadius: 3.0, OuterRadius: 6.0, BottomCutoff: 0.3, TopCutoff: 0.9, MinSegments: 10, MaxSegments: 16, MaxWires: 6, MinSpawnInterval: 0.6, MaxSpawnInterval: 1.2, SparkSpeed: 8, SparkDriftScale: 0.5, OnSwitchInterval: 1.6, OffSwitchInterval: 0.8, DefectChance: 0.10, JumpTime: 0.35},
				{InnerRadius: 3.5, OuterRadius: 7.0, BottomCutoff: 0.3, TopCutoff: 0.9, MinSegments: 9, MaxSegments: 15, MaxWires: 7, MinSpawnInterval: 0.5, MaxSpawnInterval: 1.1, SparkSpeed: 10, SparkDriftScale: 0.5, OnSwitchInterval: 1.4, OffSwitchInterval: 0.8, DefectChance: 0.20, JumpTime: 0.32},
				{InnerRadius: 4.0, OuterRadius: 8.0, BottomCutoff: 0.4, TopCutoff: 0.9, MinSegments: 8, MaxSegments: 14, MaxWires: 8, MinSpawnInterval: 0.45, MaxSpawnInterval: 1.0, SparkSpeed: 12, SparkDriftScale: 0.45, OnSwitchInterval: 1.2, OffSwitchInterval: 0.9, DefectChance: 0.30, JumpTime: 0.30, SparkDelaySegments: 2},
				{InnerRadius: 4.0, OuterRadius: 9.0, BottomCutoff: 0.5, TopCutoff: 0.95, MinSegments: 8, MaxSegments: 13, MaxWires: 9, MinSpawnInterval: 0.4, MaxSpawnInterval: 0.9, SparkSpeed: 14, SparkDriftScale: 0.4, OnSwitchInterval: 1.0, OffSwitchInterval: 0.9, DefectChance: 0.40, JumpTime: 0.28, SparkDelaySegments: 2},
				{InnerRadius: 4.5, OuterRadius: 10.0, BottomCutoff: 0.5, TopCutoff: 0.95, MinSegments: 7, MaxSegments: 12, MaxWires: 10, MinSpawnInterval: 0.35, MaxSpawnInterval: 0.8, SparkSpeed: 16, SparkDriftScale: 0.4, OnSwitchInterval: 0.9, OffSwitchInterval: 1.0, DefectChance: 0.50, JumpTime: 0.25, SparkDelaySegments: 3},
			},
		},
		Score: ScoreConfig{
			ScorePerSecond:      10,
			JumpScore:           25,
			PacketScore:         100,
			AllowDecrease:       true,
			StageHandicap:       2,
			AutoIncrease:        true,
			MaxBonusSegments:    3,
			PacketBonusSegments: 2,
		},
		Multiplier: []MultiplierStageProperties{
			{Duration: 20, HandicapDuration: 12, Lives: 3},
			{Duration: 25, HandicapDuration: 15, Lives: 3},
			{Duration: 30, HandicapDuration: 18, Lives: 2},
			{Duration: 35, HandicapDuration: 20, Lives: 2},
			{Duration: 0, HandicapDuration: 0, Lives: 1},
		},
		Packets: PacketConfig{
			Enabled:      true,
			Radius:       0.8,
			SeekDuration: 0.25,
			Stages: []PacketStageProperties{
				{InnerRadius: 2.0, OuterRadius: 6.0, BottomCutoff: 0.3, TopCutoff: 0.9, MinSpawnInterval: 1.5, MaxSpawnInterval: 3.0, MinSpeed: 2, MaxSpeed: 4, Lifetime: 8, MaxPackets: 6, SpawnSegmentOffset: 8, SpawnSegmentRange: 3, ClusterChance: 0.35, ClusterRate: 3, MinPerCluster: 3, MaxPerCluster: 5, ClusterRadius: 1.0, ClusterSegmentRange: 1},
				{InnerRadius: 2.5, OuterRadius: 7.0, BottomCutoff: 0.35, TopCutoff: 0.9, MinSpawnInterval: 1.2, MaxSpawnInterval: 2.5, MinSpeed: 3, MaxSpeed: 5, Lifetime: 7, MaxPackets: 8, SpawnSegmentOffset: 9, SpawnSegmentRange: 3, ClusterChance: 0.4, ClusterRate: 3, MinPerCluster: 3, MaxPerCluster: 6, ClusterRadius: 1.2, ClusterSegmentRange: 1},
				{InnerRadius: 3.0, OuterRadius: 8.0, BottomCutoff: 0.4, TopCutoff: 0.95, MinSpawnInterval: 1.0, MaxSpawnInterval: 2.0, MinSpeed: 4, MaxSpeed: 6, Lifetime: 6, MaxPackets: 10, SpawnSegmentOffset: 10, SpawnSegmentRange: 4, ClusterChance: 0.5, ClusterRate: 2, MinPerCluster: 4, MaxPerCluster: 7, ClusterRadius: 1.4, ClusterSegmentRange: 2},
			},
		},
		Boost: BoostConfig{
			SpeedScale: 1.75,
			Duration:   2.0,
		},
		Themes: []ThemeConfig{
			{Name: "neon", WireColor: "14", SparkColor: "11", PacketColor: "13", Music: "neon_drive", SegmentLength: 2.0},
			{Name: "ember", WireColor: "208", SparkColor: "15", PacketColor: "10", Music: "ember_pulse", SegmentLength: 2.0},
			{Name: "glacier", WireColor: "12", SparkColor: "15", PacketColor: "11", Music: "glacier_hum", SegmentLength: 2.0},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWiresYAML
}
