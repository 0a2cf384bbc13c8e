package prefabs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCloseUnblocksPendingSends(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)

	// Overfill the buffer so run is blocked mid-send when Close arrives.
	for i := 0; i < 2*cap(w.Events); i++ {
		name := filepath.Join(dir, fmt.Sprintf("boss_%d.yaml", i))
		require.NoError(t, os.WriteFile(name, []byte("name: x\n"), 0o644))
	}
	time.Sleep(250 * time.Millisecond)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	done := make(chan struct{})
	go func() {
		for range w.Events {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("events channel never closed after Close")
	}
}

func TestIsReloadable(t *testing.T) {
	assert.True(t, isReloadable("prefabs/bulwark.yaml"))
	assert.True(t, isReloadable("prefabs/warden.YML"))
	assert.True(t, isReloadable("prefabs/scripts/ritual.tengo"))
	assert.False(t, isReloadable("prefabs/notes.txt"))
	assert.False(t, isReloadable("prefabs/bulwark.yaml.swp"))
}
