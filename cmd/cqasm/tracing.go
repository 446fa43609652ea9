package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cqasm/internal/trace"
)

// activeTracer is closed by finishTracing after the command returns.
var (
	activeTracer trace.Tracer = trace.Nop
	activeFormat trace.Format
)

// setupTracing inspects trace-related flags and attaches a tracer to the command context.
func setupTracing(cmd *cobra.Command) error {
	flags := cmd.Flags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}
	sinks, err := trace.ParseSinks(modeStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:  level,
		Sinks:  sinks,
		Format: format,
		Path:   traceOutput,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer
	activeFormat = format
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return nil
}

// finishTracing flushes the tracer; recorded events are dumped only when the command failed.
func finishTracing(cmdErr error) {
	if rec, ok := activeTracer.(trace.Dumper); ok && cmdErr != nil {
		if err := rec.Dump(os.Stderr, activeFormat); err != nil {
			fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
		}
	}
	if err := activeTracer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
	}
	if err := activeTracer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
	}
}
