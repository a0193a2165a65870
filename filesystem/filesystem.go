// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Every on-disk artifact (config, logs, progress store, offline queue, caches) goes through
// the afero backend returned by [API], so tests can swap in an in-memory filesystem.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend for unit tests.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// IsMemory reports whether the in-memory backend is active.
func IsMemory() bool {
	_, ok := backend.Fs.(*afero.MemMapFs)
	return ok
}
