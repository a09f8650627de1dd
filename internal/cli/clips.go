package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meleetools/framescan/internal/clips"
	"github.com/meleetools/framescan/internal/extract"
	"github.com/meleetools/framescan/internal/logger"
	"github.com/meleetools/framescan/internal/match"
)

var (
	clipsOut        string
	clipsKinds      string
	clipsReplayRoot string
	clipsKilledOnly bool
)

var clipsCmd = &cobra.Command{
	Use:   "clips <match.json>...",
	Short: "Export a Dolphin playback queue of extracted events",
	Long: `Extract events from decoded matches and write a Dolphin playback
queue JSON so the moments can be watched back to back.

Clip paths are built from --replay-root plus each match's recorded
filename, so the decoded JSON must carry the replay's own name.

Example:
  framescan clips replays/*.json --kinds combo,edgeguard --killed-only -o queue.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClips,
}

func init() {
	clipsCmd.Flags().StringVarP(&clipsOut, "out", "o", "clips.json", "Output path for the playback queue")
	clipsCmd.Flags().StringVar(&clipsKinds, "kinds", "combo,edgeguard", "Comma-separated event kinds to include")
	clipsCmd.Flags().StringVar(&clipsReplayRoot, "replay-root", ".", "Directory containing the original replay files")
	clipsCmd.Flags().BoolVar(&clipsKilledOnly, "killed-only", false, "Keep only events that took a stock")
	rootCmd.AddCommand(clipsCmd)
}

func runClips(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tax := buildTaxonomy(cfg)
	opts := buildOptions(cfg)

	kinds := make(map[string]bool)
	for _, k := range strings.Split(clipsKinds, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds[k] = true
		}
	}

	var all []clips.Clip
	for _, path := range args {
		g, err := match.Load(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("Skipping undecodable match")
			continue
		}
		res, err := extract.Run(tax, g, opts)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("Skipping invalid match")
			continue
		}

		replayPath := filepath.Join(clipsReplayRoot, res.Filename)
		for _, p := range res.Players {
			events := p.Events()
			if clipsKilledOnly {
				var kept []extract.Event
				for _, ev := range events {
					if ev.Killed {
						kept = append(kept, ev)
					}
				}
				events = kept
			}
			all = append(all, clips.FromEvents(replayPath, events, kinds)...)
		}
	}

	if len(all) == 0 {
		return fmt.Errorf("no clips matched the requested kinds")
	}

	padding := clips.Options{
		PadBefore: cfg.Analysis.Clips.PadBefore,
		PadAfter:  cfg.Analysis.Clips.PadAfter,
	}
	if err := clips.Export(clipsOut, all, padding); err != nil {
		return err
	}

	logger.Info().
		Int("clips", len(all)).
		Str("path", clipsOut).
		Msg("Wrote playback queue")
	fmt.Printf("Wrote %d clips to %s\n", len(all), clipsOut)
	return nil
}
