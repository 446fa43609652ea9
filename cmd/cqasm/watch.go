package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"cqasm/internal/project"
	"cqasm/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [directory]",
	Short: "Re-analyze cQASM files whenever they change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before re-checking changed files")
	watchCmd.Flags().Bool("initial", true, "check all files once at startup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	root := "."
	if len(args) == 1 {
		root = args[0]
	} else if dir, ok, err := project.FindProjectRoot("."); err != nil {
		return err
	} else if ok {
		root = dir
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	initial, err := cmd.Flags().GetBool("initial")
	if err != nil {
		return fmt.Errorf("failed to get initial flag: %w", err)
	}

	opts := watch.Options{Debounce: debounce, Initial: initial}
	opts.Check.Options = g.driverOptions()
	opts.Check.Options.Timer = nil
	opts.Check.Jobs = g.jobs
	m, ok, err := project.Load(root)
	if err != nil {
		return err
	}
	if ok {
		if err := m.CheckRequires(); err != nil {
			return err
		}
		opts.Include = m.Project.Include
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.ErrOrStderr()
	if !g.quiet {
		fmt.Fprintf(out, "watching %s (Ctrl+C to stop)\n", root)
	}
	return watch.Run(ctx, root, opts, func(b watch.Batch) {
		stamp := time.Now().Format("15:04:05")
		for i := range b.Reports {
			r := &b.Reports[i]
			if r.OK() {
				if !g.quiet {
					fmt.Fprintf(out, "[%s] ok      %s\n", stamp, r.Path)
				}
				continue
			}
			fmt.Fprintf(out, "[%s] errors  %s\n", stamp, r.Path)
			g.printDiagnostics(r.FileSet, r.Diagnostics)
		}
		if !g.quiet {
			for _, path := range b.Removed {
				fmt.Fprintf(out, "[%s] removed %s\n", stamp, path)
			}
		}
	})
}
