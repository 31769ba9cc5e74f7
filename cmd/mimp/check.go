package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nickandperla.net/mimp/pkg/mimp"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Analyze a mimp program",
	Long: `Analyze a mimp program from a file or stdin.

The program is tokenized and checked statement by statement. Write and
read statements print their reports as they are recognized, and each
assignment prints its annotated expression and result.

Examples:
  mimp check program.mimp
  echo 'int x = 5; x = x + 2; write(x)' | mimp check
  mimp check --no-store program.mimp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	configureColor(cfg.Output.Color)

	a, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var res *mimp.Result
	if len(args) > 0 && args[0] != "-" {
		res, err = a.CheckFile(args[0])
	} else {
		var src string
		src, err = readSource(nil)
		if err != nil {
			return err
		}
		res, err = a.Check(src)
	}
	if err != nil {
		return err
	}

	fmt.Println(renderVerdict(res))
	if len(res.Symbols) > 0 {
		fmt.Println(renderSymbols(res.Symbols))
	}
	if !res.Valid {
		exitCode = 1
	}
	return nil
}
