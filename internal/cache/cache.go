// Package cache prunes stale files the CLI leaves behind: dated logs and expired caches.
package cache

import (
	"os"
	"time"

	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/where"
)

// TTL is how long a log file is kept after its last write.
const TTL = 30 * 24 * time.Hour

// Prune removes regular files under dir last modified before now-ttl and returns how many were removed.
// A missing dir is not an error.
func Prune(dir string, ttl time.Duration, now time.Time) (int, error) {
	fs := filesystem.API()
	if exists, err := fs.DirExists(dir); err != nil || !exists {
		return 0, err
	}

	var removed int
	err := fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if now.Sub(info.ModTime()) <= ttl {
			return nil
		}
		if err := fs.Remove(path); err != nil {
			log.Warnf("prune %s: %s", path, err)
			return nil
		}
		removed++
		return nil
	})
	return removed, err
}

// CollectGarbage prunes old log files.
func CollectGarbage() {
	removed, err := Prune(where.Logs(), TTL, time.Now())
	if err != nil {
		log.Warn(err)
		return
	}
	if removed > 0 {
		log.Infof("removed %d stale log files", removed)
	}
}

