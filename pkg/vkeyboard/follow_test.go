package vkeyboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/layouts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutRegistry_Follow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.json"),
		[]byte(`{"layout":[{"name":"Extra","rows":[[["x","X"]]]}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"layout":[]}`), 0o644))

	r := newTestRegistry(t)
	w, err := layouts.NewWatcher([]string{dir}, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	dispatched := make(chan func(), 4)
	followed := make(chan struct{})
	go func() {
		r.Follow(w, func(fn func()) { dispatched <- fn })
		close(followed)
	}()

	select {
	case fn := <-dispatched:
		fn()
	case <-time.After(3 * time.Second):
		t.Fatal("layout file was not dispatched")
	}

	layout, ok := r.Layout("Extra")
	require.True(t, ok)
	assert.Equal(t, "X", layout.Rows[0][0].Shifted)

	require.NoError(t, w.Stop())
	select {
	case <-followed:
	case <-time.After(3 * time.Second):
		t.Fatal("Follow did not return after the watcher stopped")
	}
	assert.Empty(t, dispatched)
}
