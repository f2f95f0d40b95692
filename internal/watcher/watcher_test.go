package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsArchiveWrites(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "logs.zip")
	if err := os.WriteFile(archivePath, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(archivePath)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watcher a moment to initialize.
	time.Sleep(100 * time.Millisecond)

	// Changes to other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archivePath, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events:
		if filepath.Clean(ev.Path) != w.Path() {
			t.Errorf("expected event for %s, got %s", w.Path(), ev.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for archive event")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope", "logs.zip")); err == nil {
		t.Error("expected error when the archive directory does not exist")
	}
}

func TestDebounceCollapsesBursts(t *testing.T) {
	in := make(chan Event)
	out := Debounce(in, 50*time.Millisecond)

	for i := 0; i < 5; i++ {
		in <- Event{Path: "logs.zip"}
	}

	select {
	case <-out:
	case <-time.After(time.Second):
		t.Fatal("expected a debounced signal")
	}

	select {
	case <-out:
		t.Error("expected a single signal for one burst")
	case <-time.After(150 * time.Millisecond):
	}

	close(in)
	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected output closed after input closed")
		}
	case <-time.After(time.Second):
		t.Fatal("debounce did not stop")
	}
}
