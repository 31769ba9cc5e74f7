package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"nickandperla.net/mimp/pkg/mimp"
)

const replHelp = `commands:
  :help      show this help
  :symbols   show the symbol table
  :history   show recent runs
  :reset     clear the symbol table
  :quit      exit the REPL`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive mimp session",
	Long: `Start an interactive session. Each line is analyzed as a mimp
program against a symbol table that persists across lines, so
declarations carry forward. Lines are recorded in the run store.

Examples:
  mimp repl
  mimp repl --no-store`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
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

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.REPL.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Println("mimp REPL (Ctrl+D to exit, :help for commands)")

	for {
		line, err := ln.Prompt(">>> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				break
			}
			// Ctrl+C aborts the current line only
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if quit := replCommand(a, line); quit {
				break
			}
			continue
		}

		res, err := a.Check(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store error: %v\n", err)
		}
		if !res.Valid {
			fmt.Println(errorStyle.Render(fmt.Sprintf("error: %v", res.Err)))
		}
	}

	if f, err := os.Create(cfg.REPL.HistoryFile); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// replCommand handles ":" commands. It returns true when the REPL
// should exit.
func replCommand(a *mimp.Analyzer, line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":help":
		fmt.Println(replHelp)
	case ":quit", ":exit":
		return true
	case ":symbols":
		fmt.Println(renderSymbols(a.Symbols()))
	case ":reset":
		a.Reset()
		fmt.Println("symbol table cleared.")
	case ":history":
		runs, err := a.History(10)
		if err != nil {
			fmt.Println(mutedStyle.Render("run store disabled."))
			return false
		}
		if len(runs) == 0 {
			fmt.Println(mutedStyle.Render("no runs recorded."))
			return false
		}
		fmt.Println(renderRuns(runs))
	default:
		fmt.Println("unknown command. Type :help for help.")
	}
	return false
}
