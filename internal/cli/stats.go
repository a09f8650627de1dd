package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meleetools/framescan/internal/extract"
	"github.com/meleetools/framescan/internal/logger"
	"github.com/meleetools/framescan/internal/match"
	"github.com/meleetools/framescan/internal/stats"
	"github.com/meleetools/framescan/internal/timeline"
)

var statsCmd = &cobra.Command{
	Use:   "stats <match.json>...",
	Short: "Print per-player game statistics",
	Long: `Compute per-player statistics for decoded matches: stocks lost,
damage received, per-stock death data, combo damage distribution, and
neutral win rate.

Example:
  framescan stats replays/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type playerStatsReport struct {
	Port           int                `json:"port"`
	CharacterName  string             `json:"character_name"`
	Game           stats.PlayerStats  `json:"game"`
	Stocks         []stats.StockEvent `json:"stocks"`
	ComboDamage    stats.Summary      `json:"combo_damage"`
	NeutralWinRate *float64           `json:"neutral_win_rate,omitempty"`
}

type matchStatsReport struct {
	Filename string              `json:"filename"`
	Stage    string              `json:"stage,omitempty"`
	Players  []playerStatsReport `json:"players"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tax := buildTaxonomy(cfg)
	opts := buildOptions(cfg)

	var reports []matchStatsReport
	for _, path := range args {
		g, err := match.Load(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("Skipping undecodable match")
			continue
		}
		t0, t1, err := g.Timelines()
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("Skipping invalid match")
			continue
		}
		res, err := extract.Run(tax, g, opts)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("Skipping invalid match")
			continue
		}

		report := matchStatsReport{Filename: res.Filename, Stage: res.Stage}
		timelines := [2]*timeline.Timeline{t0, t1}
		for i, t := range timelines {
			p := res.Players[i]
			pr := playerStatsReport{
				Port:          p.Port,
				CharacterName: p.CharacterName,
				Game:          stats.Compute(t),
				Stocks:        stats.StockEvents(t),
				ComboDamage:   stats.ComboDamage(p.Combos),
			}
			if rate, ok := stats.NeutralWinRate(p.Neutrals); ok {
				pr.NeutralWinRate = &rate
			}
			report.Players = append(report.Players, pr)
		}
		reports = append(reports, report)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no matches could be processed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
