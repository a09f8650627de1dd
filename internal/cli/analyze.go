package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/meleetools/framescan/internal/extract"
	"github.com/meleetools/framescan/internal/logger"
	"github.com/meleetools/framescan/internal/match"
	"github.com/meleetools/framescan/internal/store"
)

var (
	analyzeGap        int
	analyzeStrictness int
	analyzeWorkers    int
	analyzeDB         string
	analyzeNotes      string
	analyzeJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <match.json>...",
	Short: "Extract semantic events from decoded matches",
	Long: `Extract semantic events from one or more decoded match JSON files.

Each file is processed independently; a match that fails to decode or
validate is logged and skipped, never fatal to the batch. Results are
printed as JSON to stdout and, with --db, persisted to a SQLite results
store.

Example:
  framescan analyze replays/*.json --strictness 2 --db results.db`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeGap, "gap", 0, "Combo gap tolerance in frames (overrides config)")
	analyzeCmd.Flags().IntVar(&analyzeStrictness, "strictness", -1, "Combo strictness preset 0-3 (overrides --gap)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Concurrent match workers (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeDB, "db", "", "Persist results to this SQLite database")
	analyzeCmd.Flags().StringVar(&analyzeNotes, "notes", "", "Free-form note stored with the run")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", true, "Print results as JSON to stdout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tax := buildTaxonomy(cfg)
	opts := buildOptions(cfg)
	if analyzeGap > 0 {
		opts.Combo.GapFrames = analyzeGap
	}
	if analyzeStrictness >= 0 {
		s := analyzeStrictness
		opts.Strictness = &s
	}

	workers := cfg.Settings.Workers
	if analyzeWorkers > 0 {
		workers = analyzeWorkers
	}
	if workers < 1 {
		workers = 1
	}

	var db *store.SQLiteStore
	var run *store.Run
	dbPath := analyzeDB
	if dbPath == "" {
		dbPath = cfg.Settings.Database
	}
	if dbPath != "" {
		db, err = store.NewSQLiteStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open results store: %w", err)
		}
		defer func() { _ = db.Close() }()

		run, err = db.CreateRun(opts.Combo.GapFrames, analyzeNotes)
		if err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}
		logger.Info().Str("run_id", run.RunID).Msg("Created analysis run")
	}

	// Matches are independent, so they fan out to a worker pool. Results
	// are collected and re-ordered by input position before printing.
	type item struct {
		idx int
		res *extract.Result
	}

	jobs := make(chan int)
	results := make(chan item)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				path := args[idx]
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
				results <- item{idx: idx, res: res}
			}
		}()
	}

	go func() {
		for i := range args {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	ordered := make([]*extract.Result, len(args))
	processed := 0
	for it := range results {
		ordered[it.idx] = it.res
		processed++

		if db != nil {
			if _, err := db.StoreResult(run.RunID, it.res); err != nil {
				logger.Error().Err(err).Str("file", it.res.Filename).Msg("Failed to persist match")
			}
		}
	}

	logger.Info().
		Int("processed", processed).
		Int("skipped", len(args)-processed).
		Msg("Analysis complete")

	if analyzeJSON {
		out := make([]*extract.Result, 0, processed)
		for _, res := range ordered {
			if res != nil {
				out = append(out, res)
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	}

	if processed == 0 {
		return fmt.Errorf("no matches could be processed")
	}
	return nil
}
