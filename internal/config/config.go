// Package config provides YAML-based configuration for the Wires simulation:
// per-stage generation tables, scoring rules and cosmetic themes.
package config

// WiresConfig contains all configuration for a Wires run.
type WiresConfig struct {
	World      WorldConfig                 `yaml:"world"`
	Wires      WireConfig                  `yaml:"wires"`
	Score      ScoreConfig                 `yaml:"score"`
	Packets    PacketConfig                `yaml:"packets"`
	Boost      BoostConfig                 `yaml:"boost"`
	Multiplier []MultiplierStageProperties `yaml:"multiplier_stages"`
	Themes     []ThemeConfig               `yaml:"themes"`
}

// WorldConfig defines the wire plane and segment quantization.
type WorldConfig struct {
	Forward       Vec3    `yaml:"forward"`        // wire plane direction
	Up            Vec3    `yaml:"up"`             // vertical axis for angular cutoffs
	SegmentLength float64 `yaml:"segment_length"` // 0 = derive from theme mesh length
}

// Vec3 is a YAML-friendly vector.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// WireConfig holds stage-independent wire generation settings plus the
// per-stage table.
type WireConfig struct {
	WireSpace             float64               `yaml:"wire_space"`              // minimum distance between lanes
	SpawnSegmentOffset    int                   `yaml:"spawn_segment_offset"`    // segments ahead of the player
	SpawnSegmentRange     int                   `yaml:"spawn_segment_range"`     // +/- jitter on the offset
	DespawnSegmentsBehind int                   `yaml:"despawn_segments_behind"` // recycle wires this far behind
	InitialSegments       int                   `yaml:"initial_segments"`        // length of the starting wire
	DriftingEnabled       bool                  `yaml:"drifting_enabled"`
	MaxDriftTime          float64               `yaml:"max_drift_time"` // seconds
	SwitchBlendDuration   float64               `yaml:"switch_blend_duration"`
	MaxForcedGenerations  int                   `yaml:"max_forced_generations"`
	Stages                []WireStageProperties `yaml:"stages"`
}

// WireStageProperties controls wire generation for one multiplier stage.
type WireStageProperties struct {
	InnerRadius        float64 `yaml:"inner_radius"`
	OuterRadius        float64 `yaml:"outer_radius"`
	BottomCutoff       float64 `yaml:"bottom_cutoff"` // dot(dir, down) must be <= this
	TopCutoff          float64 `yaml:"top_cutoff"`    // dot(dir, up) must be <= this
	MinSegments        int     `yaml:"min_segments"`
	MaxSegments        int     `yaml:"max_segments"`
	MaxWires           int     `yaml:"max_wires"`
	MinSpawnInterval   float64 `yaml:"min_spawn_interval"`
	MaxSpawnInterval   float64 `yaml:"max_spawn_interval"`
	SparkSpeed         float64 `yaml:"spark_speed"`       // world units per second
	SparkDriftScale    float64 `yaml:"spark_drift_scale"` // drift speed = spark speed * this
	OnSwitchInterval   float64 `yaml:"on_switch_interval"`
	OffSwitchInterval  float64 `yaml:"off_switch_interval"`
	DefectChance       float64 `yaml:"defect_chance"` // chance a spark switches on/off
	JumpTime           float64 `yaml:"jump_time"`
	SparkDelaySegments int     `yaml:"spark_delay_segments"`
}

// ScoreConfig defines scoring and the multiplier state machine.
type ScoreConfig struct {
	ScorePerSecond      float64 `yaml:"score_per_second"`
	JumpScore           float64 `yaml:"jump_score"`
	PacketScore         float64 `yaml:"packet_score"`
	StartStage          int     `yaml:"start_stage"`
	AllowDecrease       bool    `yaml:"allow_decrease"`
	StageHandicap       int     `yaml:"stage_handicap"`    // resets before handicap pacing applies
	AutoIncrease        bool    `yaml:"auto_increase"`     // timer-driven stage escalation
	MaxBonusSegments    int     `yaml:"max_bonus_segments"` // per jump cycle
	PacketBonusSegments int     `yaml:"packet_bonus_segments"`
	GameOverOnNoLives   bool    `yaml:"game_over_on_no_lives"` // end run when stage 0 runs out of lives
}

// MultiplierStageProperties controls escalation pacing for one stage.
type MultiplierStageProperties struct {
	Duration         float64 `yaml:"duration"`          // seconds until auto-increase
	HandicapDuration float64 `yaml:"handicap_duration"` // used once the handicap flag is set
	Lives            int     `yaml:"lives"`
}

// PacketConfig holds data packet settings.
type PacketConfig struct {
	Enabled      bool                    `yaml:"enabled"`
	Radius       float64                 `yaml:"radius"`        // pickup sphere radius
	SeekDuration float64                 `yaml:"seek_duration"` // homing phase after collection
	Stages       []PacketStageProperties `yaml:"stages"`
}

// PacketStageProperties controls data packet generation for one stage.
type PacketStageProperties struct {
	InnerRadius         float64 `yaml:"inner_radius"`
	OuterRadius         float64 `yaml:"outer_radius"`
	BottomCutoff        float64 `yaml:"bottom_cutoff"`
	TopCutoff           float64 `yaml:"top_cutoff"`
	MinSpawnInterval    float64 `yaml:"min_spawn_interval"`
	MaxSpawnInterval    float64 `yaml:"max_spawn_interval"`
	MinSpeed            float64 `yaml:"min_speed"`
	MaxSpeed            float64 `yaml:"max_speed"`
	Lifetime            float64 `yaml:"lifetime"`
	MaxPackets          int     `yaml:"max_packets"`
	SpawnSegmentOffset  int     `yaml:"spawn_segment_offset"`
	SpawnSegmentRange   int     `yaml:"spawn_segment_range"`
	ClusterChance       float64 `yaml:"cluster_chance"`
	ClusterRate         int     `yaml:"cluster_rate"` // non-cluster attempts before a roll
	MinPerCluster       int     `yaml:"min_per_cluster"`
	MaxPerCluster       int     `yaml:"max_per_cluster"`
	ClusterRadius       float64 `yaml:"cluster_radius"`
	ClusterSegmentRange int     `yaml:"cluster_segment_range"`
}

// BoostConfig defines the temporary speed boost.
type BoostConfig struct {
	SpeedScale float64 `yaml:"speed_scale"`
	Duration   float64 `yaml:"duration"`
}

// ThemeConfig is a cosmetic wire factory. It never affects simulation logic
// except for the one-time segment length derivation.
type ThemeConfig struct {
	Name          string  `yaml:"name"`
	WireColor     string  `yaml:"wire_color"`
	SparkColor    string  `yaml:"spark_color"`
	PacketColor   string  `yaml:"packet_color"`
	Music         string  `yaml:"music"`
	SegmentLength float64 `yaml:"segment_length"` // mesh bounds along the wire plane
}
