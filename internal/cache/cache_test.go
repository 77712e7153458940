// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSanitizesKeys(t *testing.T) {
	dir := New("/tmp/cache")

	tests := []struct {
		key  string
		want string
	}{
		{"crossref_10.1257/aer.20170001.json", "crossref_10.1257_aer.20170001.json"},
		{"https://api.openalex.org/works?page=2", "https___api.openalex.org_works_page_2"},
		{"plain-key.html", "plain-key.html"},
		{"spaces and:colons", "spaces_and_colons"},
	}
	for _, tt := range tests {
		assert.Equal(t, filepath.Join("/tmp/cache", tt.want), dir.Path(tt.key))
	}
}

func TestPathDeterministic(t *testing.T) {
	dir := New(t.TempDir())
	key := "aea_10.1257/x.html"
	assert.Equal(t, dir.Path(key), dir.Path(key))
}

func TestGetMissing(t *testing.T) {
	dir := New(t.TempDir())
	_, ok := dir.Get("never-stored")
	assert.False(t, ok)
}

func TestPutThenGet(t *testing.T) {
	dir := New(filepath.Join(t.TempDir(), "nested", "cache"))

	payload := []byte(`{"message":{"subject":["L13"]}}`)
	require.NoError(t, dir.Put("crossref_10.1/x.json", payload))

	got, ok := dir.Get("crossref_10.1/x.json")
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestEntriesSurviveNewHandle(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, New(root).Put("key", []byte("v1")))

	// A fresh Dir over the same root sees the entry: the store is the
	// filesystem, not the handle.
	got, ok := New(root).Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
