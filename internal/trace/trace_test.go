package trace

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, true},
		{LevelError, ScopePhase, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeStatement, false},
		{LevelDetail, ScopeStatement, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if lvl.String() != name {
			t.Fatalf("round trip %q -> %q", name, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "analyze", 0)
	phase := Begin(tr, ScopePhase, "parse", root.ID())
	phase.WithExtra("tokens", "12").End("")
	Begin(tr, ScopeStatement, "stmt:H", phase.ID()).End("")
	root.End("ok")
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"→ analyze", "  → parse", "← parse {tokens=12}", "← analyze (ok)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "stmt:H") {
		t.Errorf("statement scope must be filtered at phase level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "index", "q[0:4]", 0)
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"kind":"point"`) || !strings.Contains(line, `"detail":"q[0:4]"`) {
		t.Fatalf("unexpected ndjson: %s", line)
	}
}

func TestRecorderKeepsNewest(t *testing.T) {
	rec := NewRecorder(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(rec, ScopeDriver, name, "", 0)
	}
	events := rec.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Name != "c" || events[2].Name != "e" {
		t.Fatalf("unexpected order: %s %s %s", events[0].Name, events[1].Name, events[2].Name)
	}
	if rec.Dropped() != 2 {
		t.Fatalf("dropped = %d, want 2", rec.Dropped())
	}

	var buf bytes.Buffer
	if err := rec.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "... 2 earlier events dropped\n") {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestRecorderBeforeWrap(t *testing.T) {
	rec := NewRecorder(0, LevelPhase)
	Point(rec, ScopeStatement, "filtered", "", 0)
	Point(rec, ScopePhase, "kept", "", 0)
	events := rec.Events()
	if len(events) != 1 || events[0].Name != "kept" || rec.Dropped() != 0 {
		t.Fatalf("events = %+v", events)
	}
}

func TestTeeConcurrent(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamTracer(&buf, LevelPhase, FormatText)
	rec := NewRecorder(1024, LevelPhase)
	tr := Tee(stream, Nop, rec)
	if tr.Level() != LevelPhase {
		t.Fatalf("level = %s", tr.Level())
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Begin(tr, ScopePhase, "sema", 0).End("")
		}()
	}
	wg.Wait()
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := len(rec.Events()); got != 32 {
		t.Fatalf("recorder holds %d events, want 32", got)
	}
	if got := strings.Count(buf.String(), "\n"); got != 32 {
		t.Fatalf("stream wrote %d lines, want 32", got)
	}
	if _, ok := tr.(Dumper); !ok {
		t.Fatalf("tee with a recorder must dump")
	}
}

func TestTeeCollapses(t *testing.T) {
	if Tee() != Nop || Tee(nil, Nop) != Nop {
		t.Fatalf("empty tee must be Nop")
	}
	rec := NewRecorder(4, LevelError)
	if Tee(Nop, rec) != Tracer(rec) {
		t.Fatalf("single enabled tracer must be returned as is")
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop || ParentSpan(context.Background()) != 0 {
		t.Fatalf("empty context must yield Nop")
	}
	rec := NewRecorder(8, LevelPhase)
	ctx := WithTracer(context.Background(), rec)
	if FromContext(ctx) != Tracer(rec) {
		t.Fatalf("tracer not propagated")
	}
	span := Begin(rec, ScopeDriver, "parse", 0)
	ctx = WithSpan(ctx, span)
	if ParentSpan(ctx) != span.ID() || span.ID() == 0 || FromContext(ctx) != Tracer(rec) {
		t.Fatalf("parent span = %d, want %d", ParentSpan(ctx), span.ID())
	}

	child, inner := Start(ctx, ScopePhase, "sema")
	child.End("")
	if ParentSpan(inner) != child.ID() {
		t.Fatalf("Start must make the new span the parent")
	}
	events := rec.Events()
	if last := events[len(events)-1]; last.ParentID != span.ID() || last.Name != "sema" {
		t.Fatalf("child event = %+v", last)
	}

	// statement spans are filtered at phase level, the context stays as it was
	if _, same := Start(inner, ScopeStatement, "stmt:H"); ParentSpan(same) != child.ID() {
		t.Fatalf("filtered span must not replace the parent")
	}
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, Sinks: SinkStream | SinkRecorder})
	if err != nil || tr.Enabled() {
		t.Fatalf("off config must give a disabled tracer: %v", err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Sinks: SinkStream | SinkRecorder, Output: &buf, Path: "t.ndjson"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Point(tr, ScopeDriver, "analyze", "", 0)
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf(".ndjson path must select NDJSON: %q", buf.String())
	}
	if _, ok := tr.(Dumper); !ok {
		t.Fatalf("stream+ring tracer must dump")
	}
}

func TestParseSinks(t *testing.T) {
	tests := []struct {
		in   string
		want Sink
	}{
		{"stream", SinkStream},
		{"RING", SinkRecorder},
		{"both", SinkStream | SinkRecorder},
		{"stream, ring", SinkStream | SinkRecorder},
	}
	for _, tt := range tests {
		got, err := ParseSinks(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseSinks(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseSinks("bogus"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
