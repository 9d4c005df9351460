package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// recompileQueue coalesces change notifications into at most one pending
// recompile. Triggers arriving while a compile is running set the pending
// slot; further triggers in that window are dropped. The mutex makes the
// policy race-free rather than best-effort.
type recompileQueue struct {
	mu        sync.Mutex
	compiling bool
	pending   bool
}

// tryAcquire reports whether the caller should compile now. When a compile is
// already running it records a pending request instead.
func (q *recompileQueue) tryAcquire() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.compiling {
		q.pending = true
		return false
	}
	q.compiling = true
	return true
}

// release ends the current compile and reports whether a coalesced trigger
// arrived while it ran. When it did, the caller keeps the slot and compiles
// again.
func (q *recompileQueue) release() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pending {
		q.pending = false
		return true
	}
	q.compiling = false
	return false
}

// Watch blocks, recompiling the source whenever it changes, until the context
// is cancelled. Compile failures are reported and watching continues.
func (c *Compiler) Watch(ctx context.Context, source string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %v", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that write via
	// rename-and-replace would otherwise detach the watch.
	dir := filepath.Dir(source)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %v", dir, err)
	}

	fmt.Printf("Watching %s for changes (press Ctrl+C to stop)\n", source)

	// Compile once up front so the user starts from a known state
	queue := &recompileQueue{}
	c.compileForWatch(ctx, source, queue)

	target := filepath.Clean(source)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			c.compileForWatch(ctx, source, queue)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("File watcher error")
		}
	}
}

// compileForWatch compiles in a goroutine so the event loop keeps draining
// notifications; rapid-fire events land in the queue's pending slot.
func (c *Compiler) compileForWatch(ctx context.Context, source string, queue *recompileQueue) {
	if !queue.tryAcquire() {
		log.Debug().Msg("Compile already in flight, coalescing trigger")
		return
	}

	go func() {
		for {
			if err := c.Compile(ctx, source); err != nil {
				log.Error().Err(err).Msg("Compilation failed, still watching")
			}
			if !queue.release() {
				return
			}
			log.Debug().Msg("Recompiling for coalesced change")
		}
	}()
}
