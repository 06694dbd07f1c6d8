package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// start runs File in the background and returns a channel that receives one
// value per reload plus a stop function that cancels and waits for return.
func start(t *testing.T, path string, reload func() error) (<-chan struct{}, func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 20*time.Millisecond, zerolog.Nop(), func() error {
			select {
			case calls <- struct{}{}:
			default:
			}
			return reload()
		})
	}()
	// Give the watcher a moment to register before the test writes.
	time.Sleep(100 * time.Millisecond)

	return calls, func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("File() did not return after cancel")
			return nil
		}
	}
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestFile_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a"), 0o600); err != nil {
		t.Fatal(err)
	}

	calls, stop := start(t, path, func() error { return nil })
	if err := os.WriteFile(path, []byte("b"), 0o600); err != nil {
		t.Fatal(err)
	}
	waitCall(t, calls)

	if err := stop(); err != nil {
		t.Errorf("File() returned %v", err)
	}
}

func TestFile_ReloadsAfterRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a"), 0o600); err != nil {
		t.Fatal(err)
	}

	calls, stop := start(t, path, func() error { return nil })

	// Two atomic saves in a row: the watch must survive the first inode swap.
	for i := 0; i < 2; i++ {
		tmp := filepath.Join(dir, "data.csv.tmp")
		if err := os.WriteFile(tmp, []byte{byte('c' + i)}, 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.Rename(tmp, path); err != nil {
			t.Fatal(err)
		}
		waitCall(t, calls)
		time.Sleep(50 * time.Millisecond)
	}

	if err := stop(); err != nil {
		t.Errorf("File() returned %v", err)
	}
}

func TestFile_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a"), 0o600); err != nil {
		t.Fatal(err)
	}

	var n atomic.Int32
	_, stop := start(t, path, func() error {
		n.Add(1)
		return nil
	})
	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if err := stop(); err != nil {
		t.Errorf("File() returned %v", err)
	}
	if got := n.Load(); got != 0 {
		t.Errorf("reload called %d times for a sibling file, want 0", got)
	}
}

func TestFile_ReloadErrorKeepsWatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a"), 0o600); err != nil {
		t.Fatal(err)
	}

	var n atomic.Int32
	calls, stop := start(t, path, func() error {
		if n.Add(1) == 1 {
			return errors.New("half-written")
		}
		return nil
	})

	if err := os.WriteFile(path, []byte("b"), 0o600); err != nil {
		t.Fatal(err)
	}
	waitCall(t, calls)
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("c"), 0o600); err != nil {
		t.Fatal(err)
	}
	waitCall(t, calls)

	if err := stop(); err != nil {
		t.Errorf("File() returned %v", err)
	}
	if n.Load() < 2 {
		t.Errorf("reload called %d times, want at least 2", n.Load())
	}
}

func TestFile_MissingFile(t *testing.T) {
	err := File(context.Background(), filepath.Join(t.TempDir(), "nope"), DefaultSettle, zerolog.Nop(), func() error { return nil })
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
