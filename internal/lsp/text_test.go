package lsp

import "testing"

func TestApplyChanges(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		changes []textDocumentContentChangeEvent
		want    string
	}{
		{
			name:    "full replace",
			text:    "version 3",
			changes: []textDocumentContentChangeEvent{{Text: "version 3.0"}},
			want:    "version 3.0",
		},
		{
			name: "insert at line start",
			text: "one\ntwo\n",
			changes: []textDocumentContentChangeEvent{{
				Range: &lspRange{Start: position{Line: 1}, End: position{Line: 1}},
				Text:  "// ",
			}},
			want: "one\n// two\n",
		},
		{
			name: "replace after astral rune",
			text: "// 😀x\n",
			changes: []textDocumentContentChangeEvent{{
				Range: &lspRange{Start: position{Character: 5}, End: position{Character: 6}},
				Text:  "y",
			}},
			want: "// 😀y\n",
		},
		{
			name: "range past end clamps",
			text: "ab",
			changes: []textDocumentContentChangeEvent{{
				Range: &lspRange{Start: position{Line: 5, Character: 3}, End: position{Line: 9}},
				Text:  "c",
			}},
			want: "abc",
		},
		{
			name: "sequential edits",
			text: "H q[0]",
			changes: []textDocumentContentChangeEvent{
				{Range: &lspRange{Start: position{Character: 0}, End: position{Character: 1}}, Text: "X"},
				{Range: &lspRange{Start: position{Character: 4}, End: position{Character: 5}}, Text: "1"},
			},
			want: "X q[1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyChanges(tt.text, tt.changes); got != tt.want {
				t.Fatalf("applyChanges = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUTF16Column(t *testing.T) {
	tests := []struct {
		line string
		col  uint32
		want int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"abc", 4, 3},
		{"abc", 6, 5},
		{"é x", 3, 2},
		{"😀 x", 3, 3},
		{"", 0, 0},
	}
	for _, tt := range tests {
		if got := utf16Column(tt.line, tt.col); got != tt.want {
			t.Errorf("utf16Column(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestDocumentName(t *testing.T) {
	tests := []struct{ uri, want string }{
		{"file:///home/u/q%20gym.cq", "q gym.cq"},
		{"/tmp/a.cq", "a.cq"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}
	for _, tt := range tests {
		if got := documentName(tt.uri); got != tt.want {
			t.Errorf("documentName(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
