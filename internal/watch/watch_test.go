package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	fired chan struct{}
}

func newRecorder() *recorder { return &recorder{fired: make(chan struct{}, 16)} }

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.fired <- struct{}{}
	return nil
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func start(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-errCh)
	})
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")
	touch(t, a, "")
	touch(t, b, "")

	rec := newRecorder()
	w, err := New(Config{Files: []string{a, b}, Debounce: 100 * time.Millisecond, OnChange: rec.onChange})
	require.NoError(t, err)
	start(t, w)

	touch(t, a, "1")
	time.Sleep(10 * time.Millisecond)
	touch(t, b, "1")
	time.Sleep(10 * time.Millisecond)
	touch(t, a, "2")

	rec.wait(t)
	time.Sleep(300 * time.Millisecond)

	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{a, b}, calls[0])
}

func TestUnwatchedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "master.yaml")
	touch(t, watched, "")

	rec := newRecorder()
	w, err := New(Config{Files: []string{watched}, Debounce: 50 * time.Millisecond, OnChange: rec.onChange})
	require.NoError(t, err)
	start(t, w)

	touch(t, filepath.Join(dir, "other.yaml"), "x")
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	touch(t, watched, "x")
	rec.wait(t)
	assert.Equal(t, [][]string{{watched}}, rec.snapshot())
}

func TestSetFilesAddsDirectories(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "master.yaml")
	touch(t, first, "")
	sub := filepath.Join(dir, "modules")
	require.NoError(t, os.Mkdir(sub, 0o755))
	second := filepath.Join(sub, "lib.yaml")
	touch(t, second, "")

	rec := newRecorder()
	w, err := New(Config{Files: []string{first}, Debounce: 50 * time.Millisecond, OnChange: rec.onChange})
	require.NoError(t, err)
	require.NoError(t, w.SetFiles([]string{first, second}))
	assert.Equal(t, []string{first, second}, w.Files())
	start(t, w)

	touch(t, second, "x")
	rec.wait(t)
	assert.Equal(t, [][]string{{second}}, rec.snapshot())
}

func TestCallbackErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "m.yaml")
	touch(t, f, "")

	fired := make(chan struct{}, 4)
	w, err := New(Config{
		Files:    []string{f},
		Debounce: 50 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			fired <- struct{}{}
			return errors.New("boom")
		},
	})
	require.NoError(t, err)
	start(t, w)

	for i := 0; i < 2; i++ {
		touch(t, f, time.Now().String())
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for callback")
		}
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(Config{Files: []string{filepath.Join(t.TempDir(), "nope", "m.yaml")}})
	assert.Error(t, err)
}

func TestDefaultDebounce(t *testing.T) {
	w, err := New(Config{})
	require.NoError(t, err)
	defer w.fsw.Close()
	assert.Equal(t, DefaultDebounce, w.debounce)
}
