package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cqasm/internal/version"
)

// errFailed means diagnostics were already printed; main only sets the exit code.
var errFailed = errors.New("failed")

var rootCmd = &cobra.Command{
	Use:               "cqasm",
	Short:             "cQASM v3 front-end: lexer, parser and semantic analyzer",
	Long:              `cqasm parses and analyzes cQASM v3 programs and reports diagnostics as JSON or text`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupGlobals,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("max-syntax-errors", 1, "syntax errors collected before parsing stops (-1 = unlimited)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers for directory checks (0=auto)")
	rootCmd.PersistentFlags().String("trace", "", "write pipeline trace events to file ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command; any error exits with status 1.
func main() {
	err := rootCmd.Execute()
	finishTracing(err)
	if perr := activeProfile.Stop(); perr != nil {
		fmt.Fprintf(os.Stderr, "cqasm: profiling: %v\n", perr)
	}
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "cqasm: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
