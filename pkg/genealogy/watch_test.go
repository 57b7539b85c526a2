package genealogy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/evotree/pkg/errors"
)

type watchResult struct {
	tree *Node
	err  error
}

func startWatch(t *testing.T, path string) <-chan watchResult {
	t.Helper()
	results := make(chan watchResult, 16)
	w, err := Watch(context.Background(), path, func(n *Node, err error) {
		select {
		case results <- watchResult{n, err}:
		default:
		}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	t.Cleanup(func() {
		if err := w.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})
	return results
}

func writeTreeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatchReloadsTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.json")
	data, _ := Marshal(Sample(), FormatJSON)
	writeTreeFile(t, path, data)

	results := startWatch(t, path)

	next := Sample()
	next.Name = "Genesis"
	data, _ = Marshal(next, FormatJSON)
	writeTreeFile(t, path, data)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-results:
			if r.err == nil && r.tree.Name == "Genesis" {
				return
			}
		case <-deadline:
			t.Fatal("no reload after the file changed")
		}
	}
}

func TestWatchReportsInvalidContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	data, _ := Marshal(Sample(), FormatYAML)
	writeTreeFile(t, path, data)

	results := startWatch(t, path)
	writeTreeFile(t, path, []byte("id: [unterminated\n"))

	select {
	case r := <-results:
		if !errors.Is(r.err, errors.ErrCodeInvalidTree) {
			t.Errorf("err = %v, want INVALID_TREE", r.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after the file changed")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.json")
	data, _ := Marshal(Sample(), FormatJSON)
	writeTreeFile(t, path, data)

	results := startWatch(t, path)
	writeTreeFile(t, filepath.Join(dir, "notes.txt"), []byte("hello"))

	select {
	case r := <-results:
		t.Errorf("unexpected callback: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchErrors(t *testing.T) {
	noop := func(*Node, error) {}
	if _, err := Watch(context.Background(), "agents.json", nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil handler: err = %v", err)
	}
	if _, err := Watch(context.Background(), "agents.txt", noop); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension: err = %v", err)
	}
	if _, err := Watch(context.Background(), "/nonexistent/dir/agents.json", noop); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing dir: err = %v", err)
	}
}
