package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.cq", 20, "short.cq"},
		{"circuits/very/long/path/prog.cq", 12, "...h/prog.cq"},
		{"abcdef", 3, "abc"},
		{"日本語.cq", 7, "....cq"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestProgressModel(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("checking", []string{"a.cq", "b.cq"}, events).(*progressModel)

	m.Update(eventMsg(Event{File: "a.cq", Status: StatusOK}))
	m.Update(eventMsg(Event{File: "b.cq", Status: StatusError, Errors: 2}))
	m.Update(eventMsg(Event{File: "unknown.cq", Status: StatusOK}))

	finished, failed := m.counts()
	if finished != 2 || failed != 1 {
		t.Fatalf("counts = %d/%d", finished, failed)
	}
	view := m.View()
	if !strings.Contains(view, "checking 2/2, 1 with errors") || !strings.Contains(view, "2 errors") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatalf("done message must quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
