package prefabs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherCloseWithUndrainedEvents(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// more events than the channel buffers, none read
	for i := 0; i < 40; i++ {
		name := filepath.Join(dir, fmt.Sprintf("map%d.json", i))
		if err := os.WriteFile(name, []byte("{}"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	time.Sleep(50 * time.Millisecond)

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	done := make(chan struct{})
	go func() {
		for range w.Events {
		}
		for range w.Errors {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("channels were not closed after Close")
	}
}
