package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nickandperla.net/mimp/internal/scanner"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a mimp program",
	Long: `Tokenize a mimp program and print the token stream without
running any checks.

Examples:
  mimp tokens program.mimp
  echo 'int x = 5;' | mimp tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	configureColor(cfg.Output.Color)

	src, err := readSource(args)
	if err != nil {
		return err
	}
	fmt.Println(renderTokens(scanner.Tokenize(src)))
	return nil
}
