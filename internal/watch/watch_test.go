package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestClassify(t *testing.T) {
	root := filepath.FromSlash("/work/proj")
	include := []string{"*.cq"}
	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want op
	}{
		{"write", "/work/proj/a.cq", fsnotify.Write, opChanged},
		{"create nested", "/work/proj/sub/b.cq", fsnotify.Create, opChanged},
		{"remove", "/work/proj/a.cq", fsnotify.Remove, opRemoved},
		{"rename", "/work/proj/a.cq", fsnotify.Rename, opRemoved},
		{"chmod only", "/work/proj/a.cq", fsnotify.Chmod, opIgnore},
		{"other extension", "/work/proj/a.txt", fsnotify.Write, opIgnore},
		{"hidden dir", "/work/proj/.git/x.cq", fsnotify.Write, opIgnore},
		{"outside root", "/work/other/a.cq", fsnotify.Write, opIgnore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := fsnotify.Event{Name: filepath.FromSlash(tt.path), Op: tt.op}
			if got := classify(root, ev, include); got != tt.want {
				t.Fatalf("classify(%s %s) = %d, want %d", tt.op, tt.path, got, tt.want)
			}
		})
	}
}

func TestRunRechecksChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.cq")
	if err := os.WriteFile(path, []byte("version 3;qubit[3] q;X q[0]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	batches := make(chan Batch, 8)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, dir, Options{Initial: true, Debounce: 20 * time.Millisecond}, func(b Batch) { batches <- b })
	}()

	first := waitBatch(t, ctx, batches)
	if len(first.Reports) != 1 || !first.Reports[0].OK() {
		t.Fatalf("initial batch = %+v", first)
	}

	if err := os.WriteFile(path, []byte("version 3;qubit[3] q;X q[3]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	for {
		b := waitBatch(t, ctx, batches)
		// редактор может сначала обрезать файл; ждём итоговое содержимое
		if len(b.Reports) == 1 && !b.Reports[0].OK() &&
			b.Reports[0].Diagnostics[0].Message == "index 3 out of range (size 3)" {
			break
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func waitBatch(t *testing.T, ctx context.Context, batches <-chan Batch) Batch {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-ctx.Done():
		t.Fatalf("timed out waiting for a batch")
	}
	return Batch{}
}
