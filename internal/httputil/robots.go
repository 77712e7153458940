// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"
)

// RobotsChecker answers "may I fetch this URL" per robots.txt, caching one
// parsed ruleset per host for the lifetime of the run. A host whose
// robots.txt cannot be fetched or parsed is treated as allowing everything.
type RobotsChecker struct {
	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData
}

// NewRobotsChecker returns an empty checker.
func NewRobotsChecker() *RobotsChecker {
	return &RobotsChecker{hosts: make(map[string]*robotstxt.RobotsData)}
}

// CanFetch reports whether robots.txt for the URL's host permits fetching
// it with the given user agent. The robots.txt itself is fetched directly
// (no retry) on first contact with a host.
func (r *RobotsChecker) CanFetch(client *http.Client, rawURL, userAgent string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	data := r.lookup(client, u.Scheme, u.Host)
	if data == nil {
		return true
	}
	return data.FindGroup(userAgent).Test(u.Path)
}

func (r *RobotsChecker) lookup(client *http.Client, scheme, host string) *robotstxt.RobotsData {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data, ok := r.hosts[host]; ok {
		return data
	}

	var data *robotstxt.RobotsData
	resp, err := client.Get(fmt.Sprintf("%s://%s/robots.txt", scheme, host))
	if err == nil {
		defer resp.Body.Close()
		if parsed, perr := robotstxt.FromResponse(resp); perr == nil {
			data = parsed
		}
	}

	// nil is cached too: a host without a readable robots.txt stays open.
	r.hosts[host] = data
	return data
}
