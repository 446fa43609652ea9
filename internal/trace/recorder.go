package trace

import (
	"fmt"
	"io"
	"sync"
)

// DefaultRecorderSize — сколько событий держит Recorder, если размер не задан.
const DefaultRecorderSize = 4096

// Recorder remembers the most recent events of the pipeline so that a failed
// command can show what led up to the failure.
type Recorder struct {
	mu    sync.Mutex
	slots []Event
	total uint64 // сколько событий принято за всё время
	level Level
}

// NewRecorder keeps up to size events at the given level.
func NewRecorder(size int, level Level) *Recorder {
	if size <= 0 {
		size = DefaultRecorderSize
	}
	return &Recorder{slots: make([]Event, size), level: level}
}

func (r *Recorder) Emit(ev *Event) {
	if ev == nil || !r.level.ShouldEmit(ev.Scope) {
		return
	}
	r.mu.Lock()
	r.slots[r.total%uint64(len(r.slots))] = *ev
	r.total++
	r.mu.Unlock()
}

// Events returns the retained events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	size := uint64(len(r.slots))
	first := uint64(0)
	if r.total > size {
		first = r.total - size
	}
	out := make([]Event, 0, r.total-first)
	for seq := first; seq < r.total; seq++ {
		out = append(out, r.slots[seq%size])
	}
	return out
}

// Dropped reports how many events were overwritten by newer ones.
func (r *Recorder) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if size := uint64(len(r.slots)); r.total > size {
		return r.total - size
	}
	return 0
}

// Dump writes the retained events to w, preceded by a note about dropped ones.
func (r *Recorder) Dump(w io.Writer, format Format) error {
	if n := r.Dropped(); n > 0 && format != FormatNDJSON {
		if _, err := fmt.Fprintf(w, "... %d earlier events dropped\n", n); err != nil {
			return err
		}
	}
	events := r.Events()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) Flush() error  { return nil }
func (r *Recorder) Close() error  { return nil }
func (r *Recorder) Level() Level  { return r.level }
func (r *Recorder) Enabled() bool { return r.level > LevelOff }
