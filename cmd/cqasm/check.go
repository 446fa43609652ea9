package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cqasm/internal/diag"
	"cqasm/internal/diagfmt"
	"cqasm/internal/driver"
	"cqasm/internal/project"
	"cqasm/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.cq|directory]...",
	Short: "Analyze cQASM files and directories in parallel",
	Long: `Check analyzes every given file and every *.cq file below the given directories
(default: the current directory). Settings come from cqasm.toml when one is found above
the first argument; flags override them.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().String("format", "text", "output format (text|json|short)")
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the user cache directory")
	checkCmd.Flags().Bool("clear-cache", false, "drop cached results before checking")
}

// checkPlan is what runCheck resolved from arguments, manifest and flags.
type checkPlan struct {
	files    []string
	manifest *project.Manifest
	opts     driver.CheckOptions
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" && format != "short" {
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	plan, err := planCheck(cmd, g, args)
	if err != nil {
		return err
	}
	if len(plan.files) == 0 {
		if !g.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no cQASM files found")
		}
		return nil
	}

	var reports []driver.FileReport
	if format == "text" && !g.quiet && shouldUseTUI(mode, len(plan.files)) {
		reports, err = checkWithUI(cmd.Context(), plan)
	} else {
		reports, err = driver.CheckFiles(cmd.Context(), plan.files, plan.opts)
	}
	if err != nil {
		return err
	}
	printTimings(plan.opts.Options)

	failed := 0
	for i := range reports {
		if !reports[i].OK() {
			failed++
		}
	}
	switch format {
	case "json":
		if err := writeCheckJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	case "short":
		writeCheckShort(cmd.OutOrStdout(), reports)
	default:
		for i := range reports {
			g.printDiagnostics(reports[i].FileSet, reports[i].Diagnostics)
		}
		if !g.quiet {
			printCheckSummary(cmd.ErrOrStderr(), reports, failed)
		}
	}
	if failed > 0 {
		return errFailed
	}
	return nil
}

func planCheck(cmd *cobra.Command, g globalOptions, args []string) (checkPlan, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	var plan checkPlan

	start := args[0]
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}
	m, ok, err := project.Load(start)
	if err != nil {
		return plan, err
	}
	include := project.DefaultInclude
	if ok {
		if err := m.CheckRequires(); err != nil {
			return plan, err
		}
		plan.manifest = m
		include = m.Project.Include
	}

	seen := make(map[string]struct{})
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return plan, fmt.Errorf("failed to stat path: %w", err)
		}
		var found []string
		if info.IsDir() {
			if found, err = project.CollectFiles(arg, include); err != nil {
				return plan, err
			}
		} else {
			found = []string{arg}
		}
		for _, f := range found {
			if _, dup := seen[f]; !dup {
				seen[f] = struct{}{}
				plan.files = append(plan.files, f)
			}
		}
	}

	plan.opts.Options = g.driverOptions()
	plan.opts.Jobs = g.jobs
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return plan, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if m != nil {
		// флаги, заданные явно, сильнее манифеста
		if !cmd.Flags().Changed("max-syntax-errors") && m.Check.MaxSyntaxErrors > 0 {
			plan.opts.MaxSyntaxErrors = m.Check.MaxSyntaxErrors
		}
		if !cmd.Flags().Changed("jobs") && m.Check.Jobs > 0 {
			plan.opts.Jobs = m.Check.Jobs
		}
		if !cmd.Flags().Changed("cache") {
			useCache = m.Check.Cache
		}
	}

	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return plan, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("cqasm")
		if err != nil {
			return plan, fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return plan, fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache {
			plan.opts.Cache = cache
		}
	}
	return plan, nil
}

type checkOutcome struct {
	reports []driver.FileReport
	err     error
}

func checkWithUI(ctx context.Context, plan checkPlan) ([]driver.FileReport, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	opts := plan.opts
	opts.OnFile = func(r driver.FileReport) {
		ev := ui.Event{File: r.Path, Status: ui.StatusOK}
		switch {
		case !r.OK():
			ev.Status = ui.StatusError
			ev.Errors = countErrors(r)
		case r.Cached:
			ev.Status = ui.StatusCached
		}
		events <- ev
	}
	go func() {
		reports, err := driver.CheckFiles(ctx, plan.files, opts)
		outcomeCh <- checkOutcome{reports: reports, err: err}
		close(events)
	}()

	title := "cqasm check"
	if plan.manifest != nil {
		title += " " + plan.manifest.Project.Name
	}
	model := ui.NewProgressModel(title, plan.files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы воркеры не встали на канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.reports, uiErr
	}
	return outcome.reports, outcome.err
}

func countErrors(r driver.FileReport) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

func printCheckSummary(w io.Writer, reports []driver.FileReport, failed int) {
	cached := 0
	for i := range reports {
		if reports[i].Cached {
			cached++
		}
	}
	fmt.Fprintf(w, "checked %d files: %d ok, %d with errors", len(reports), len(reports)-failed, failed)
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	fmt.Fprintln(w)
}

// writeCheckShort prints one line per diagnostic: "error SEM3008 dir/a.cq:1:24 message".
func writeCheckShort(w io.Writer, reports []driver.FileReport) {
	for i := range reports {
		if out := diag.FormatShortDiagnostics(reports[i].Diagnostics, reports[i].FileSet, false); out != "" {
			fmt.Fprintln(w, out)
		}
	}
}

type checkFileJSON struct {
	Path   string          `json:"path"`
	OK     bool            `json:"ok"`
	Cached bool            `json:"cached,omitempty"`
	Result json.RawMessage `json:"result"`
}

func writeCheckJSON(w io.Writer, reports []driver.FileReport) error {
	out := make([]checkFileJSON, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		doc := r.JSON
		if doc == "" {
			// файл не прочитался: анализ не запускался, рендерим только I/O-диагностику
			var err error
			if doc, err = diagfmt.ErrorsJSON(r.Diagnostics, r.FileSet, filepath.Base(r.Path)); err != nil {
				return err
			}
		}
		result := json.RawMessage(doc)
		out = append(out, checkFileJSON{Path: r.Path, OK: r.OK(), Cached: r.Cached, Result: result})
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
