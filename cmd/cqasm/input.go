package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"cqasm/internal/driver"
	"cqasm/internal/source"
)

// readInput loads path ("-" is stdin) and picks the filename used in locations:
// --filename when given, the base name of path otherwise.
func readInput(cmd *cobra.Command, path string) (src, filename string, err error) {
	filename, err = cmd.Flags().GetString("filename")
	if err != nil {
		return "", "", fmt.Errorf("failed to get filename flag: %w", err)
	}
	if path == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		content, _, err := source.Normalize(raw)
		if err != nil {
			return "", "", fmt.Errorf("stdin: %w", err)
		}
		return string(content), filename, nil
	}
	src, err = driver.ReadSource(path)
	if err != nil {
		return "", "", err
	}
	if filename == "" {
		filename = filepath.Base(path)
	}
	return src, filename, nil
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("filename", "", "file name reported in diagnostics (default: base name of the input)")
}

// writeJSON prints a canonical document followed by a newline.
func writeJSON(out io.Writer, doc string) error {
	_, err := fmt.Fprintln(out, doc)
	return err
}
