package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tracer receives pipeline events. Emit must be safe for concurrent use:
// the check command analyzes files in parallel.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Sink selects where events go; sinks combine as a bit set.
type Sink uint8

const (
	SinkStream   Sink = 1 << iota // formatted lines to a file or stderr
	SinkRecorder                  // last events in memory, dumped when a command fails
)

var sinkNames = map[string]Sink{
	"stream":   SinkStream,
	"ring":     SinkRecorder,
	"recorder": SinkRecorder,
	"both":     SinkStream | SinkRecorder,
}

func (s Sink) String() string {
	switch s {
	case SinkStream:
		return "stream"
	case SinkRecorder:
		return "ring"
	case SinkStream | SinkRecorder:
		return "both"
	}
	return "unknown"
}

// ParseSinks reads the --trace-mode value: stream, ring, both, or a
// comma-separated list such as "stream,ring".
func ParseSinks(s string) (Sink, error) {
	var out Sink
	for _, part := range strings.Split(strings.ToLower(s), ",") {
		sink, ok := sinkNames[strings.TrimSpace(part)]
		if !ok {
			return 0, fmt.Errorf("invalid trace mode: %q (expected: stream|ring|both)", s)
		}
		out |= sink
	}
	return out, nil
}

// Config describes the tracer the CLI builds from its flags.
type Config struct {
	Level  Level
	Sinks  Sink // 0 means SinkStream
	Format Format
	// Output wins over Path; Path "" or "-" is stderr.
	Output       io.Writer
	Path         string
	RecorderSize int
}

// New builds the tracer for cfg. LevelOff always gives Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	sinks := cfg.Sinks
	if sinks == 0 {
		sinks = SinkStream
	}
	if sinks&^(SinkStream|SinkRecorder) != 0 {
		return nil, fmt.Errorf("unknown trace sinks: %08b", uint8(sinks))
	}

	var parts []Tracer
	if sinks&SinkStream != 0 {
		w, err := cfg.output()
		if err != nil {
			return nil, err
		}
		parts = append(parts, NewStreamTracer(w, cfg.Level, cfg.format()))
	}
	if sinks&SinkRecorder != 0 {
		parts = append(parts, NewRecorder(cfg.RecorderSize, cfg.Level))
	}
	return Tee(parts...), nil
}

// format resolves FormatAuto by the output file extension.
func (cfg Config) format() Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	switch filepath.Ext(cfg.Path) {
	case ".ndjson", ".jsonl", ".json":
		return FormatNDJSON
	}
	return FormatText
}

func (cfg Config) output() (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.Path == "" || cfg.Path == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
