// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/constant"
	"github.com/shikisync/shikisync/filesystem"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "SHIKISYNC_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honoring [EnvConfigPath] first and
// the platform user config dir (XDG_CONFIG_HOME on Linux) otherwise.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the cache directory, falling back to ./cache when the platform has none.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory holding dated log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Progress resolves the local progress store, one record per tracked manga.
func Progress() string {
	return filepath.Join(Config(), "progress.json")
}

// Queue resolves the JSON-lines log of tracking operations that failed to reach Shikimori.
func Queue() string {
	return filepath.Join(Config(), "queue.jsonl")
}

// Queries resolves the search query history used for suggestions.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Session resolves the cached identity of the logged-in user.
func Session() string {
	return filepath.Join(Cache(), "session.json")
}
