package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cqasm/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the cQASM language server over stdio",
	Args:  cobra.NoArgs,
	RunE:  runLSP,
}

func init() {
	lspCmd.Flags().Duration("debounce", 200*time.Millisecond, "delay before re-analyzing an edited document")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	opts := g.driverOptions()
	// таймер копит фазы бесконечно; в долгоживущем сервере он не нужен
	opts.Timer = nil
	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
		Debounce:       debounce,
		MaxDiagnostics: g.maxDiagnostics,
		Analyze:        opts,
		Log:            cmd.ErrOrStderr(),
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
