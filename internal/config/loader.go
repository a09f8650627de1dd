package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	globalConfigDir  = ".framescan"
	projectConfigDir = ".framescan"
	configFileName   = "config.yaml"
)

// Loader handles loading and merging configuration files
type Loader struct {
	globalPath  string
	projectPath string
}

// NewLoader creates a new configuration loader
func NewLoader(projectDir string) (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	if projectDir == "" {
		projectDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	return &Loader{
		globalPath:  filepath.Join(homeDir, globalConfigDir, configFileName),
		projectPath: filepath.Join(projectDir, projectConfigDir, configFileName),
	}, nil
}

// Load loads and merges configuration from all sources
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Load global config if exists
	globalCfg, err := l.loadFile(l.globalPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}
	if globalCfg != nil {
		cfg = mergeConfigs(cfg, globalCfg)
	}

	// Load project config if exists
	projectCfg, err := l.loadFile(l.projectPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	if projectCfg != nil {
		cfg = mergeConfigs(cfg, projectCfg)
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file, merged over
// defaults.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	fileCfg, err := l.loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return mergeConfigs(DefaultConfig(), fileCfg), nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// mergeConfigs merges two configurations, with override taking
// precedence for every value it sets. Zero values in the override leave
// the base value in place; a zero gap tolerance is reachable through the
// strictness presets, not through config.
func mergeConfigs(base, override *Config) *Config {
	result := &Config{
		Version: coalesce(override.Version, base.Version),
		Settings: Settings{
			LogLevel: coalesce(override.Settings.LogLevel, base.Settings.LogLevel),
			LogFile:  coalesce(override.Settings.LogFile, base.Settings.LogFile),
			Database: coalesce(override.Settings.Database, base.Settings.Database),
			Workers:  coalesceInt(override.Settings.Workers, base.Settings.Workers),
		},
		Analysis: Analysis{
			GapFrames:  coalesceInt(override.Analysis.GapFrames, base.Analysis.GapFrames),
			KillWindow: coalesceInt(override.Analysis.KillWindow, base.Analysis.KillWindow),
			Knockdown: KnockdownSettings{
				ResolveWindow: coalesceInt(override.Analysis.Knockdown.ResolveWindow, base.Analysis.Knockdown.ResolveWindow),
			},
			Wavedash: WavedashSettings{
				AirdodgeWindow:   coalesceInt(override.Analysis.Wavedash.AirdodgeWindow, base.Analysis.Wavedash.AirdodgeWindow),
				LandingWindow:    coalesceInt(override.Analysis.Wavedash.LandingWindow, base.Analysis.Wavedash.LandingWindow),
				NoiseFloor:       coalesceFloat(override.Analysis.Wavedash.NoiseFloor, base.Analysis.Wavedash.NoiseFloor),
				FlatVelocity:     coalesceFloat(override.Analysis.Wavedash.FlatVelocity, base.Analysis.Wavedash.FlatVelocity),
				ModerateVelocity: coalesceFloat(override.Analysis.Wavedash.ModerateVelocity, base.Analysis.Wavedash.ModerateVelocity),
			},
			Edgeguard: EdgeguardSettings{
				MergeGap:    coalesceInt(override.Analysis.Edgeguard.MergeGap, base.Analysis.Edgeguard.MergeGap),
				BelowStageY: coalesceFloat(override.Analysis.Edgeguard.BelowStageY, base.Analysis.Edgeguard.BelowStageY),
				KillWindow:  coalesceInt(override.Analysis.Edgeguard.KillWindow, base.Analysis.Edgeguard.KillWindow),
			},
			Neutral: NeutralSettings{
				MinFrames: coalesceInt(override.Analysis.Neutral.MinFrames, base.Analysis.Neutral.MinFrames),
			},
			Confirm: ConfirmSettings{
				Window: coalesceInt(override.Analysis.Confirm.Window, base.Analysis.Confirm.Window),
			},
			TechChase: TechChaseSettings{
				FollowupWindow: coalesceInt(override.Analysis.TechChase.FollowupWindow, base.Analysis.TechChase.FollowupWindow),
			},
			Clips: ClipSettings{
				PadBefore: coalesceInt(override.Analysis.Clips.PadBefore, base.Analysis.Clips.PadBefore),
				PadAfter:  coalesceInt(override.Analysis.Clips.PadAfter, base.Analysis.Clips.PadAfter),
			},
		},
		Stages: Stages{
			EdgeX: mergeEdgeX(base.Stages.EdgeX, override.Stages.EdgeX),
		},
	}

	return result
}

// mergeEdgeX combines geometry overrides, per-stage.
func mergeEdgeX(base, override map[int]float64) map[int]float64 {
	if len(override) == 0 {
		return base
	}
	if len(base) == 0 {
		return override
	}

	result := make(map[int]float64, len(base)+len(override))
	for id, x := range base {
		result[id] = x
	}
	for id, x := range override {
		result[id] = x
	}
	return result
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func coalesceInt(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func coalesceFloat(a, b float64) float64 {
	if a != 0 {
		return a
	}
	return b
}

// GlobalConfigPath returns the path to the global config file
func (l *Loader) GlobalConfigPath() string {
	return l.globalPath
}

// ProjectConfigPath returns the path to the project config file
func (l *Loader) ProjectConfigPath() string {
	return l.projectPath
}

// Exists checks if a config file exists at the given path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
