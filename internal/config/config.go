package config

// Config is the complete framescan configuration.
type Config struct {
	Version  string   `yaml:"version"`
	Settings Settings `yaml:"settings"`
	Analysis Analysis `yaml:"analysis"`
	Stages   Stages   `yaml:"stages,omitempty"`
}

// Settings contains global configuration settings.
type Settings struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`
	Database string `yaml:"database,omitempty"`
	Workers  int    `yaml:"workers,omitempty"`
}

// Analysis carries every extractor threshold. All values are empirical
// and character-sensitive, so each one stays overridable.
type Analysis struct {
	GapFrames  int               `yaml:"gap_frames"`
	KillWindow int               `yaml:"kill_window"`
	Knockdown  KnockdownSettings `yaml:"knockdown"`
	Wavedash   WavedashSettings  `yaml:"wavedash"`
	Edgeguard  EdgeguardSettings `yaml:"edgeguard"`
	Neutral    NeutralSettings   `yaml:"neutral"`
	Confirm    ConfirmSettings   `yaml:"confirm"`
	TechChase  TechChaseSettings `yaml:"tech_chase"`
	Clips      ClipSettings      `yaml:"clips"`
}

// KnockdownSettings bounds missed-tech resolution.
type KnockdownSettings struct {
	ResolveWindow int `yaml:"resolve_window"`
}

// WavedashSettings are the wavedash detection thresholds.
type WavedashSettings struct {
	AirdodgeWindow   int     `yaml:"airdodge_window"`
	LandingWindow    int     `yaml:"landing_window"`
	NoiseFloor       float64 `yaml:"noise_floor"`
	FlatVelocity     float64 `yaml:"flat_velocity"`
	ModerateVelocity float64 `yaml:"moderate_velocity"`
}

// EdgeguardSettings are the edgeguard grouping thresholds.
type EdgeguardSettings struct {
	MergeGap    int     `yaml:"merge_gap"`
	BelowStageY float64 `yaml:"below_stage_y"`
	KillWindow  int     `yaml:"kill_window"`
}

// NeutralSettings bounds neutral-window detection.
type NeutralSettings struct {
	MinFrames int `yaml:"min_frames"`
}

// ConfirmSettings bounds the trigger-to-outcome scan.
type ConfirmSettings struct {
	Window int `yaml:"window"`
}

// TechChaseSettings bounds follow-up detection after a knockdown.
type TechChaseSettings struct {
	FollowupWindow int `yaml:"followup_window"`
}

// ClipSettings control clip-export padding.
type ClipSettings struct {
	PadBefore int `yaml:"pad_before"`
	PadAfter  int `yaml:"pad_after"`
}

// Stages allows per-stage geometry overrides.
type Stages struct {
	// EdgeX maps stage id to ledge x-coordinate.
	EdgeX map[int]float64 `yaml:"edge_x,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Settings: Settings{
			LogLevel: "info",
			Workers:  4,
		},
		Analysis: Analysis{
			GapFrames:  45,
			KillWindow: 150,
			Knockdown:  KnockdownSettings{ResolveWindow: 300},
			Wavedash: WavedashSettings{
				AirdodgeWindow:   6,
				LandingWindow:    20,
				NoiseFloor:       0.5,
				FlatVelocity:     1.5,
				ModerateVelocity: 0.8,
			},
			Edgeguard: EdgeguardSettings{
				MergeGap:    60,
				BelowStageY: -10,
				KillWindow:  150,
			},
			Neutral:   NeutralSettings{MinFrames: 15},
			Confirm:   ConfirmSettings{Window: 150},
			TechChase: TechChaseSettings{FollowupWindow: 90},
			Clips:     ClipSettings{PadBefore: 120, PadAfter: 60},
		},
	}
}
