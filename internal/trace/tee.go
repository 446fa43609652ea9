package trace

import (
	"errors"
	"io"
)

// Dumper is implemented by tracers that keep events in memory.
type Dumper interface {
	Dump(w io.Writer, format Format) error
}

// tee отдаёт каждое событие всем включённым трассировщикам.
type tee []Tracer

// Tee combines tracers; disabled ones are skipped. With nothing enabled it
// returns Nop, with one tracer that tracer itself.
func Tee(tracers ...Tracer) Tracer {
	var out tee
	for _, t := range tracers {
		if t != nil && t.Enabled() {
			out = append(out, t)
		}
	}
	switch len(out) {
	case 0:
		return Nop
	case 1:
		return out[0]
	}
	return out
}

func (t tee) Emit(ev *Event) {
	for _, tr := range t {
		tr.Emit(ev)
	}
}

func (t tee) Flush() error {
	errs := make([]error, 0, len(t))
	for _, tr := range t {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t tee) Close() error {
	errs := make([]error, 0, len(t))
	for _, tr := range t {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// Level is the most verbose level among the parts.
func (t tee) Level() Level {
	lvl := LevelOff
	for _, tr := range t {
		lvl = max(lvl, tr.Level())
	}
	return lvl
}

func (t tee) Enabled() bool { return len(t) > 0 }

// Dump forwards to every part that keeps events in memory.
func (t tee) Dump(w io.Writer, format Format) error {
	for _, tr := range t {
		if d, ok := tr.(Dumper); ok {
			if err := d.Dump(w, format); err != nil {
				return err
			}
		}
	}
	return nil
}
