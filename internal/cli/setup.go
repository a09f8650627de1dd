package cli

import (
	"fmt"

	"github.com/meleetools/framescan/internal/config"
	"github.com/meleetools/framescan/internal/extract"
	"github.com/meleetools/framescan/internal/logger"
	"github.com/meleetools/framescan/internal/taxonomy"
)

// loadConfig resolves configuration from the override file or the merged
// global/project chain, and initializes logging from it.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}

	var cfg *config.Config
	if configFile != "" {
		cfg, err = loader.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = loader.Load()
		if err != nil {
			// If no config found, use defaults
			cfg = config.DefaultConfig()
		}
	}

	if verbose {
		_ = logger.Init("debug", cfg.Settings.LogFile)
	} else if cfg.Settings.LogLevel != "" {
		_ = logger.Init(cfg.Settings.LogLevel, cfg.Settings.LogFile)
	} else {
		logger.InitQuiet()
	}

	return cfg, nil
}

// buildTaxonomy applies configured stage geometry overrides to the
// default taxonomy.
func buildTaxonomy(cfg *config.Config) *taxonomy.Taxonomy {
	tax := taxonomy.Default()
	if len(cfg.Stages.EdgeX) > 0 {
		tax = tax.WithStageOverrides(cfg.Stages.EdgeX)
	}
	return tax
}

// buildOptions maps configured thresholds onto the extractor parameters.
func buildOptions(cfg *config.Config) extract.Options {
	a := cfg.Analysis
	return extract.Options{
		Combo: extract.ComboParams{
			GapFrames:  a.GapFrames,
			KillWindow: a.KillWindow,
		},
		Knockdown: extract.KnockdownParams{
			ResolveWindow: a.Knockdown.ResolveWindow,
		},
		Wavedash: extract.WavedashParams{
			AirdodgeWindow:   a.Wavedash.AirdodgeWindow,
			LandingWindow:    a.Wavedash.LandingWindow,
			NoiseFloor:       a.Wavedash.NoiseFloor,
			FlatVelocity:     a.Wavedash.FlatVelocity,
			ModerateVelocity: a.Wavedash.ModerateVelocity,
		},
		Edgeguard: extract.EdgeguardParams{
			BelowStageY: a.Edgeguard.BelowStageY,
			MergeGap:    a.Edgeguard.MergeGap,
			KillWindow:  a.Edgeguard.KillWindow,
		},
		Neutral: extract.NeutralParams{
			MinFrames: a.Neutral.MinFrames,
		},
		TechChase: extract.TechChaseParams{
			Knockdown:      extract.KnockdownParams{ResolveWindow: a.Knockdown.ResolveWindow},
			FollowupWindow: a.TechChase.FollowupWindow,
		},
	}
}
