package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nickandperla.net/mimp/pkg/mimp"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [file]",
	Short: "Show the symbol table after analysis",
	Long: `Analyze a mimp program and print the resulting symbol table in
declaration order. Write and read reports are suppressed.

Examples:
  mimp symbols program.mimp
  echo 'int x = 5; float y = 1.5;' | mimp symbols`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	configureColor(cfg.Output.Color)

	src, err := readSource(args)
	if err != nil {
		return err
	}

	a := mimp.New(mimp.WithOutput(io.Discard))
	res, err := a.Check(src)
	if err != nil {
		return err
	}

	fmt.Println(renderSymbols(res.Symbols))
	if !res.Valid {
		fmt.Println(errorStyle.Render(fmt.Sprintf("%s: %v", res.Code(), res.Err)))
		exitCode = 1
	}
	return nil
}
