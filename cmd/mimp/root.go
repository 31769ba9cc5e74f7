package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nickandperla.net/mimp/internal/config"
	"nickandperla.net/mimp/internal/store"
	"nickandperla.net/mimp/pkg/mimp"
)

var (
	cfgFile   string
	storePath string
	noStore   bool
	noColor   bool

	// exitCode is the process exit status for completed commands.
	// Failed commands exit 2 through Execute's error instead.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "mimp",
	Short: "Static checker for mimp programs",
	Long: `mimp analyzes programs written in the mimp language: it tokenizes
the source, checks declarations and types statement by statement, and
evaluates arithmetic expressions in assignments.

Checks are recorded in a local run store so past results can be
reviewed with "mimp runs".`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.mimp/config.toml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "run store path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noStore, "no-store", false, "disable run persistence")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// loadConfig reads the config file named by --config or the default path.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// newAnalyzer builds an analyzer from config and flags.
func newAnalyzer(cfg *config.Config) (*mimp.Analyzer, error) {
	var opts []mimp.Option
	if !noStore && !cfg.Store.Disabled {
		path := storePath
		if path == "" {
			path = cfg.Store.Path
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		s, err := store.NewSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open run store: %w", err)
		}
		opts = append(opts, mimp.WithStore(s))
	}
	return mimp.New(opts...), nil
}

// readSource reads program text from the file argument or stdin. A
// "-" argument also selects stdin.
func readSource(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
