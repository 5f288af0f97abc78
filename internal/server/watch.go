package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/h1w0xxx/molrec/internal/sdf"
)

const reindexDelay = 200 * time.Millisecond

// reloadLibrary rescans the library file and swaps in the new offsets.
// A stale .index file is ignored.
func (s *Server) reloadLibrary() error {
	f, err := os.Open(s.opts.Library)
	if err != nil {
		return err
	}
	defer f.Close()

	offsets, err := sdf.BuildIndex(f)
	if err != nil {
		return fmt.Errorf("index %s: %w", s.opts.Library, err)
	}
	s.mu.Lock()
	s.offsets = offsets
	s.mu.Unlock()
	s.logger.Info("library reindexed", "path", s.opts.Library, "molecules", len(offsets))
	return nil
}

// WatchLibrary reindexes the library whenever the file is written or
// replaced. It blocks until ctx is done. Bursts of events are coalesced.
func (s *Server) WatchLibrary(ctx context.Context) error {
	if s.opts.Library == "" {
		<-ctx.Done()
		return nil
	}
	target, err := filepath.Abs(s.opts.Library)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	// editors and tools often replace the file, so watch its directory
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	timer := time.NewTimer(reindexDelay)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			timer.Reset(reindexDelay)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("library watcher", "error", err)
		case <-timer.C:
			if err := s.reloadLibrary(); err != nil {
				s.logger.Warn("reindex failed", "path", s.opts.Library, "error", err)
			}
		}
	}
}
