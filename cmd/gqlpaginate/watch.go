package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	discovery "github.com/Yunoo/graphql-pagination-transform/internal/discovery"
	"github.com/fsnotify/fsnotify"
)

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

func cmdWatch(ctx context.Context, args []string, stdout io.Writer) error {
	s, err := parseSettings("watch", watchUsage, args)
	if err != nil {
		return err
	}
	shutdown, err := observe(s)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	disc := newDiscovery(s)
	dirs, err := disc.Dirs()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %q: %w", dir, err)
		}
	}

	return watchLoop(ctx, watcher, disc, s.debounce, func() {
		if err := transformOnce(ctx, s, disc, stdout); err != nil {
			log.Printf("transform failed: %v", err)
			return
		}
		if s.out != "" {
			log.Printf("wrote %s", s.out)
		}
	})
}

// watchLoop runs fn once, then again after every burst of schema file changes
// has been quiet for debounce. It returns when ctx is done or the watcher
// closes.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, disc *discovery.FileSystemDiscovery, debounce time.Duration, fn func()) error {
	fn()

	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&watchedOps == 0 || !discovery.IsSchemaFile(ev.Name) || disc.Excluded(ev.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			fn()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
