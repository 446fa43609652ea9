package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cqasm/internal/driver"
	"cqasm/internal/semantic"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.cq|->",
	Short: "Parse a cQASM file and print its syntax tree as JSON",
	Long: `Parse checks the syntax of a cQASM v3 file. On success it prints the concrete
syntax tree; otherwise it prints {"errors":[...]} with LSP-style diagnostics.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file.cq|->",
	Short: "Parse and analyze a cQASM file and print the semantic program as JSON",
	Long: `Analyze parses a cQASM v3 file, resolves declarations, instructions and constant
expressions, and prints the semantic program or {"errors":[...]}.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	addInputFlags(parseCmd)
	addInputFlags(analyzeCmd)
	analyzeCmd.Flags().String("format", "json", "output format (json|text)")
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	src, filename, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	opts := g.driverOptions()
	res := driver.ParseContext(cmd.Context(), src, filename, opts)
	printTimings(opts)
	g.printDiagnostics(res.FileSet, res.Diagnostics)
	if err := writeJSON(cmd.OutOrStdout(), res.JSON()); err != nil {
		return err
	}
	if !res.OK() {
		return errFailed
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "json" && format != "text" {
		return fmt.Errorf("unknown format: %s", format)
	}
	src, filename, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	opts := g.driverOptions()
	res := driver.AnalyzeContext(cmd.Context(), src, filename, opts)
	printTimings(opts)
	g.printDiagnostics(res.FileSet, res.Diagnostics)
	switch {
	case !res.OK() && format == "text":
		// текстовый режим: диагностики уже в stderr
	case format == "text":
		err = semantic.Dump(cmd.OutOrStdout(), res.Program)
	default:
		err = writeJSON(cmd.OutOrStdout(), res.JSON())
	}
	if err != nil {
		return err
	}
	if !res.OK() {
		return errFailed
	}
	return nil
}
