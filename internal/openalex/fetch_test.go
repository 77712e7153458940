// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/jel-harvest/pkg/types"
)

func fetchConfig(rawDir string) *types.PipelineConfig {
	return &types.PipelineConfig{
		Journals: []types.Journal{{Key: "aer", Name: "AER", SourceID: "S1"}},
		Years:    types.YearRange{Start: 2020, End: 2021},
		RawDir:   rawDir,
	}
}

func TestFetchAllWritesFiles(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		if strings.Contains(filter, "2020") {
			w.Write(pageBody(t, []string{`{"id":"W1"}`, `{"id":"W2"}`}, ""))
			return
		}
		w.Write(pageBody(t, nil, ""))
	}))
	defer ts.Close()

	old := worksBase
	worksBase = ts.URL
	defer func() { worksBase = old }()

	rawDir := t.TempDir()
	var out bytes.Buffer
	result := testClient().FetchAll(context.Background(), fetchConfig(rawDir), &out)

	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 1, result.Empty)
	assert.Equal(t, 0, result.Failed)

	data, err := os.ReadFile(filepath.Join(rawDir, "aer", "2020.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"id":"W1"}`, lines[0])

	assert.Contains(t, out.String(), "2020: 2 works")
	assert.Contains(t, out.String(), "2021: no works found")
}

func TestFetchAllSkipsExisting(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write(pageBody(t, []string{`{"id":"W9"}`}, ""))
	}))
	defer ts.Close()

	old := worksBase
	worksBase = ts.URL
	defer func() { worksBase = old }()

	rawDir := t.TempDir()
	existing := filepath.Join(rawDir, "aer", "2020.jsonl")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte(`{"id":"OLD"}`+"\n"), 0o644))

	var out bytes.Buffer
	result := testClient().FetchAll(context.Background(), fetchConfig(rawDir), &out)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 1, calls, "existing journal-year is not refetched")

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"OLD"}`+"\n", string(data), "existing file untouched")
}

func TestFetchAllContinuesPastFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("filter"), "2020") {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(pageBody(t, []string{`{"id":"W5"}`}, ""))
	}))
	defer ts.Close()

	old := worksBase
	worksBase = ts.URL
	defer func() { worksBase = old }()

	rawDir := t.TempDir()
	var out bytes.Buffer
	result := testClient().FetchAll(context.Background(), fetchConfig(rawDir), &out)

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Written)

	_, err := os.Stat(filepath.Join(rawDir, "aer", "2021.jsonl"))
	assert.NoError(t, err, "the year after the failure is still fetched")
	assert.Contains(t, out.String(), "Fetch summary: 1 written, 0 skipped, 0 empty, 1 failed")
}

func TestWriteRawFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "2020.jsonl")

	require.NoError(t, writeRawFile(path, []json.RawMessage{
		json.RawMessage(`{"id":"W1"}`),
	}))

	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "2020.jsonl", entries[0].Name())
}
