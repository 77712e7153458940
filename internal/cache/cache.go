// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache is a content-addressed on-disk store for fetched payloads.
// Keys are semantically meaningful strings (a URL, a DOI, or a work ID)
// mapped deterministically to safe filenames. Entries are written once,
// never mutated, and never evicted; re-fetching is an explicit user action
// (delete the file and rerun).
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// unsafeChars matches everything that may not appear in a cache filename.
var unsafeChars = regexp.MustCompile(`[^0-9A-Za-z._-]`)

// Dir is a cache rooted at one directory.
type Dir struct {
	root string
}

// New returns a cache rooted at root. The directory is created lazily on
// the first Put.
func New(root string) *Dir {
	return &Dir{root: root}
}

// Path maps a semantic key to the file path that would hold its payload.
// Disallowed characters (including '/', ':' and '?') are replaced with
// '_'. Distinct keys colliding onto one filename is an accepted rare edge
// case, not guarded against.
func (d *Dir) Path(key string) string {
	return filepath.Join(d.root, unsafeChars.ReplaceAllString(key, "_"))
}

// Get returns the cached payload for key, or ok == false when absent.
func (d *Dir) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(d.Path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores payload under key.
func (d *Dir) Put(key string, payload []byte) error {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(d.Path(key), payload, 0o644); err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}
