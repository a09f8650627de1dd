package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meleetools/framescan/internal/match"
)

var validateCmd = &cobra.Command{
	Use:   "validate <match.json>...",
	Short: "Check decoded match files without extracting",
	Long: `Validate decoded match JSON files against the structural contract:
exactly two active players, and per-player frame arrays of equal length.

Exits non-zero if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		g, err := match.Load(path)
		if err == nil {
			err = g.Validate()
		}
		if err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Printf("ok   %s (%d players, stage %d)\n", path, len(g.Players), g.StageID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}
