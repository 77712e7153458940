// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robotsServer(t *testing.T, robotsBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(robotsBody))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("page"))
	})
	return httptest.NewServer(mux)
}

func TestCanFetchDisallowedPath(t *testing.T) {
	ts := robotsServer(t, "User-agent: *\nDisallow: /private/\n")
	defer ts.Close()

	checker := NewRobotsChecker()
	client := ts.Client()

	assert.False(t, checker.CanFetch(client, ts.URL+"/private/page", "jel-harvest/0.1"))
	assert.True(t, checker.CanFetch(client, ts.URL+"/public/page", "jel-harvest/0.1"))
}

func TestCanFetchCachesPerHost(t *testing.T) {
	var robotsCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&robotsCalls, 1)
		w.Write([]byte("User-agent: *\nDisallow:\n"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	checker := NewRobotsChecker()
	for i := 0; i < 3; i++ {
		assert.True(t, checker.CanFetch(ts.Client(), ts.URL+"/a", "bot"))
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&robotsCalls))
}

func TestCanFetchMissingRobotsAllows(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	checker := NewRobotsChecker()
	assert.True(t, checker.CanFetch(ts.Client(), ts.URL+"/anything", "bot"))
}

func TestClientEnforcesRobots(t *testing.T) {
	ts := robotsServer(t, "User-agent: *\nDisallow: /blocked/\n")
	defer ts.Close()

	client := testClient(1)
	client.Robots = NewRobotsChecker()

	_, err := client.Get(context.Background(), ts.URL+"/blocked/page", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRobotsDisallowed)

	body, err := client.Get(context.Background(), ts.URL+"/open/page", nil)
	require.NoError(t, err)
	assert.Equal(t, "page", string(body))
}
