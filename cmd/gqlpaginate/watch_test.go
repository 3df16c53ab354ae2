package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	discovery "github.com/Yunoo/graphql-pagination-transform/internal/discovery"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestWatchLoop(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.graphql", itemsSchema)
	out := filepath.Join(dir, "out.graphql")

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watcher.Add(dir))

	disc := discovery.NewFileSystemDiscovery(dir).Exclude(out)
	runs := make(chan struct{}, 10)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, watcher, disc, 20*time.Millisecond, func() { runs <- struct{}{} })
	}()

	wait := func() {
		t.Helper()
		select {
		case <-runs:
		case <-time.After(5 * time.Second):
			t.Fatal("transform did not run")
		}
	}
	wait()

	// Changes to the excluded output and to non-schema files are ignored.
	require.NoError(t, os.WriteFile(out, []byte("type A { a: Int }"), 0o644))
	writeFile(t, dir, "notes.txt", "x")
	select {
	case <-runs:
		t.Fatal("unexpected run")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(schema, []byte(itemsSchema+"\n"), 0o644))
	wait()

	cancel()
	require.NoError(t, <-done)
}
