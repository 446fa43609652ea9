package lsp

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestJSONRPCFramingMultipleMessages(t *testing.T) {
	var buf bytes.Buffer
	msgs := []string{`{"jsonrpc":"2.0","method":"one"}`, `{"jsonrpc":"2.0","method":"два"}`}
	for _, m := range msgs {
		if err := writeMessage(&buf, []byte(m)); err != nil {
			t.Fatalf("write %s: %v", m, err)
		}
	}

	reader := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	for _, want := range msgs {
		got, err := readMessage(reader)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != want {
			t.Fatalf("got %s, want %s", got, want)
		}
	}
}

func TestReadMessageHeaders(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"extra header", "Content-Type: application/vscode-jsonrpc\r\ncontent-length: 2\r\n\r\n{}", "{}", false},
		{"missing length", "Content-Type: x\r\n\r\n{}", "", true},
		{"bad length", "Content-Length: abc\r\n\r\n{}", "", true},
		{"negative length", "Content-Length: -1\r\n\r\n", "", true},
		{"short body", "Content-Length: 10\r\n\r\n{}", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readMessage(bufio.NewReader(strings.NewReader(tt.input)))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil || string(got) != tt.want {
				t.Fatalf("got %q, %v", got, err)
			}
		})
	}
}

func TestReadMessageMissingLengthSentinel(t *testing.T) {
	_, err := readMessage(bufio.NewReader(strings.NewReader("\r\n")))
	if !errors.Is(err, errMissingLength) {
		t.Fatalf("err = %v", err)
	}
}
