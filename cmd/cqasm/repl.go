package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"cqasm/internal/driver"
	"cqasm/internal/semantic"
	"cqasm/internal/symbols"
)

const (
	replHeader   = "version 3"
	replFilename = "<repl>"
	historyFile  = ".cqasm_history"
	promptMain   = "cq> "
)

const replHelp = `Each line is appended to the program and kept only if the whole program still analyzes.
Commands:
  :show    print the current program
  :json    print the current program as JSON
  :undo    drop the last accepted line
  :reset   start over from "version 3"
  :quit    exit (Ctrl+D works too)`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively build a cQASM program line by line",
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

// replSession holds the accepted lines; the first one is always the version header.
type replSession struct {
	lines []string
	opts  driver.Options
	out   io.Writer
	g     globalOptions
}

func newREPLSession(out io.Writer, g globalOptions) *replSession {
	opts := g.driverOptions()
	opts.Timer = nil
	return &replSession{lines: []string{replHeader}, opts: opts, out: out, g: g}
}

func (s *replSession) source(extra ...string) string {
	return strings.Join(append(append([]string(nil), s.lines...), extra...), "\n")
}

// eval handles one input line and reports whether the REPL should stop.
func (s *replSession) eval(ctx context.Context, line string) (quit bool) {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "":
		return false
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprintln(s.out, replHelp)
		return false
	case ":reset":
		s.lines = []string{replHeader}
		return false
	case ":undo":
		if len(s.lines) > 1 {
			s.lines = s.lines[:len(s.lines)-1]
		}
		return false
	case ":show", ":json":
		res := driver.AnalyzeContext(ctx, s.source(), replFilename, s.opts)
		if !res.OK() {
			// принятые строки всегда анализируются без ошибок
			fmt.Fprintln(s.out, res.JSON())
			return false
		}
		if trimmed == ":json" {
			fmt.Fprintln(s.out, res.JSON())
		} else if err := semantic.Dump(s.out, res.Program); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		return false
	}
	if strings.HasPrefix(trimmed, ":") {
		fmt.Fprintf(s.out, "unknown command %s (try :help)\n", trimmed)
		return false
	}

	res := driver.AnalyzeContext(ctx, s.source(line), replFilename, s.opts)
	if !res.OK() {
		s.g.printDiagnosticsTo(s.out, res.FileSet, res.Errors())
		return false
	}
	s.lines = append(s.lines, line)
	return false
}

// complete offers instruction names and REPL commands for the last word of line.
func complete(names []string) liner.Completer {
	commands := []string{":help", ":json", ":quit", ":reset", ":show", ":undo"}
	return func(line string) []string {
		cut := strings.LastIndexAny(line, " \t;") + 1
		head, word := line[:cut], line[cut:]
		if word == "" {
			return nil
		}
		pool := names
		if strings.HasPrefix(word, ":") {
			pool = commands
		}
		var out []string
		for _, name := range pool {
			if strings.HasPrefix(name, word) {
				out = append(out, head+name)
			}
		}
		return out
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	session := newREPLSession(cmd.OutOrStdout(), g)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	names := symbols.Builtins().Names()
	sort.Strings(names)
	ln.SetCompleter(complete(names))

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if !g.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "cqasm REPL, program starts with %q. Type :help for commands.\n", replHeader)
	}
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if session.eval(cmd.Context(), line) {
			return nil
		}
	}
}
