package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cqasm/internal/diagfmt"
	"cqasm/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.cq|->",
	Short: "Tokenize a cQASM source file",
	Long:  `Tokenize breaks a cQASM source file down into its tokens, ending with EOF`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addInputFlags(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	src, filename, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	result := driver.Tokenize(src, filename)
	g.printDiagnostics(result.FileSet, result.Diagnostics)

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if len(result.Diagnostics) > 0 {
		return errFailed
	}
	return nil
}
