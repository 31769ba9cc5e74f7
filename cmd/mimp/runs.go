package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nickandperla.net/mimp/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List recorded analysis runs",
	Long: `List recorded analysis runs, newest first, or show one run in
full by id. Run ids may be abbreviated to the prefix shown in the
listing.

Examples:
  mimp runs
  mimp runs -n 5
  mimp runs 4f8a21c9`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	configureColor(cfg.Output.Color)

	path := storePath
	if path == "" {
		path = cfg.Store.Path
	}
	s, err := store.NewSQLite(path)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer s.Close()

	if len(args) > 0 {
		return showRun(s, args[0])
	}

	runs, err := s.Runs(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(mutedStyle.Render("no runs recorded."))
		return nil
	}
	fmt.Println(renderRuns(runs))
	return nil
}

func showRun(s *store.SQLite, id string) error {
	run, err := s.Run(id)
	if err != nil {
		return err
	}
	if run == nil {
		run, err = findByPrefix(s, id)
		if err != nil {
			return err
		}
	}
	if run == nil {
		return fmt.Errorf("run %s not found", id)
	}
	fmt.Println(renderRunDetail(run))
	return nil
}

// findByPrefix resolves an abbreviated run id against the full listing.
func findByPrefix(s *store.SQLite, prefix string) (*store.Run, error) {
	runs, err := s.Runs(0)
	if err != nil {
		return nil, err
	}
	for _, r := range runs {
		if len(r.ID) >= len(prefix) && r.ID[:len(prefix)] == prefix {
			return s.Run(r.ID)
		}
	}
	return nil, nil
}
