package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"nickandperla.net/mimp/internal/store"
	"nickandperla.net/mimp/internal/symbol"
	"nickandperla.net/mimp/internal/token"
	"nickandperla.net/mimp/pkg/mimp"
)

// Color palette
var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	validStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	invalidStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// Verdict icons
const (
	iconValid   = "✓"
	iconInvalid = "✗"
)

// configureColor applies the color mode from config and flags.
func configureColor(mode string) {
	if noColor {
		mode = "never"
	}
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
	// auto: lipgloss detects the terminal on its own
}

// renderVerdict formats the analysis outcome.
func renderVerdict(res *mimp.Result) string {
	if res.Valid {
		return validStyle.Render(iconValid + " program is valid")
	}
	return invalidStyle.Render(iconInvalid+" program is invalid") + "\n" +
		errorStyle.Render(fmt.Sprintf("%s: %v", res.Code(), res.Err))
}

// renderTokens formats the token table.
func renderTokens(toks []token.Token) string {
	if len(toks) == 0 {
		return mutedStyle.Render("no tokens")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-4s %-13s %s", "#", "KIND", "TEXT")))
	for i, tok := range toks {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-4d %-13s %s", i, tok.Kind, tok.Text))
	}
	return panelStyle.Render(b.String())
}

// renderSymbols formats the symbol table in declaration order.
func renderSymbols(syms []symbol.Symbol) string {
	if len(syms) == 0 {
		return mutedStyle.Render("no variables declared")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-14s %-8s %s", "ID", "NAME", "TYPE", "VALUE")))
	for _, s := range syms {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-6s %-14s %-8s %s", s.ID, s.Name, s.Type, s.Value))
	}
	return panelStyle.Render(b.String())
}

// renderRuns formats the run listing, newest first.
func renderRuns(runs []store.Run) string {
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n")
		}
		badge := validStyle.Render(iconValid + " valid")
		if !r.Valid {
			badge = invalidStyle.Render(iconInvalid + " " + r.Code)
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), shortID(r.ID), badge))
		b.WriteString(mutedStyle.Render("    " + truncate(r.Source, 60)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRunDetail formats one persisted run with its symbol snapshot.
func renderRunDetail(run *store.Run) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("run "+run.ID) + "\n")
	b.WriteString(mutedStyle.Render(run.CreatedAt.Format(time.RFC3339)) + "\n")
	if run.Valid {
		b.WriteString(validStyle.Render(iconValid+" valid") + "\n")
	} else {
		b.WriteString(invalidStyle.Render(iconInvalid+" "+run.Code) + "\n")
		b.WriteString(errorStyle.Render(run.Message) + "\n")
	}
	b.WriteString("\n" + run.Source + "\n")
	if len(run.Symbols) > 0 {
		b.WriteString("\n" + renderSymbols(run.Symbols))
	}
	return strings.TrimRight(b.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
