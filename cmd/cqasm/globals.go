package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cqasm/internal/diag"
	"cqasm/internal/diagfmt"
	"cqasm/internal/driver"
	"cqasm/internal/observ"
	"cqasm/internal/source"
)

// globalOptions are the persistent flags resolved once per invocation.
type globalOptions struct {
	color           bool
	quiet           bool
	timings         bool
	maxDiagnostics  int
	maxSyntaxErrors int
	jobs            int
}

func setupGlobals(cmd *cobra.Command, _ []string) error {
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag, isTerminal(os.Stderr))
	if err != nil {
		return err
	}
	// fatih/color сам гасит цвета без TTY; явный --color=on должен это перебить
	color.NoColor = !useColor
	if err := setupProfiling(cmd); err != nil {
		return err
	}
	return setupTracing(cmd)
}

func resolveColor(value string, tty bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return tty, nil
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func readGlobals(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Flags()
	var g globalOptions
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	if g.color, err = resolveColor(colorFlag, isTerminal(os.Stderr)); err != nil {
		return g, err
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.maxSyntaxErrors, err = flags.GetInt("max-syntax-errors"); err != nil {
		return g, fmt.Errorf("failed to get max-syntax-errors flag: %w", err)
	}
	if g.jobs, err = flags.GetInt("jobs"); err != nil {
		return g, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	return g, nil
}

// driverOptions builds pipeline options; the timer is nil unless --timings is set.
func (g globalOptions) driverOptions() driver.Options {
	opts := driver.Options{MaxSyntaxErrors: g.maxSyntaxErrors}
	if g.timings {
		opts.Timer = observ.NewTimer()
	}
	return opts
}

func (g globalOptions) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     g.color,
		Context:   2,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
		ShowCodes: true,
	}
}

// printDiagnostics renders diags to stderr, capped by --max-diagnostics.
func (g globalOptions) printDiagnostics(fs *source.FileSet, diags []diag.Diagnostic) {
	if g.quiet {
		return
	}
	g.printDiagnosticsTo(os.Stderr, fs, diags)
}

func (g globalOptions) printDiagnosticsTo(w io.Writer, fs *source.FileSet, diags []diag.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	bag := diag.NewBag(g.maxDiagnostics)
	for _, d := range diags {
		bag.Add(d)
	}
	bag.Sort()
	diagfmt.Pretty(w, bag, fs, g.prettyOpts())
	if hidden := len(diags) - bag.Len(); hidden > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown (--max-diagnostics=%d)\n", hidden, bag.Cap())
	}
}

func printTimings(opts driver.Options) {
	if opts.Timer != nil {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}
}
