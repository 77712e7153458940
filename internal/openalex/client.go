// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex walks the OpenAlex works listing API and writes raw
// per-journal-year JSONL files.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/jel-harvest/internal/httputil"
	"github.com/pdiddy/jel-harvest/pkg/types"
)

// worksBase is the OpenAlex works endpoint. Declared as a var so tests can
// substitute an httptest server.
var worksBase = "https://api.openalex.org/works"

const perPage = 200

// listResponse is one page of the works listing.
type listResponse struct {
	Results []json.RawMessage `json:"results"`
	Meta    listMeta          `json:"meta"`
}

type listMeta struct {
	Count      int    `json:"count"`
	NextCursor string `json:"next_cursor"`
}

// Client fetches works listings through the shared resilient HTTP client.
type Client struct {
	HTTP *httputil.Client

	// Email is sent as the mailto parameter for polite pool access.
	Email string
}

// buildFilter constructs the works filter for one journal-year. An exact
// source-ID filter is preferred; a journal without a usable source ID
// (empty, or a "<fill-me>" template placeholder) falls back to an exact
// display-name match. The choice is stateless: different journals may take
// different branches within one run.
func buildFilter(journal types.Journal, year int) string {
	if journal.SourceID != "" && !strings.HasPrefix(journal.SourceID, "<") {
		return fmt.Sprintf("publication_year:%d,primary_location.source.id:%s", year, journal.SourceID)
	}
	return fmt.Sprintf("publication_year:%d,primary_location.source.display_name:%q", year, journal.Name)
}

// FetchJournalYear accumulates every listing page for one journal-year and
// returns the raw work payloads. The cursor starts at "*" and follows
// meta.next_cursor until it is empty. A page request that exhausts retries
// or returns an unparseable body terminates the walk early; whatever was
// accumulated so far is returned along with the error so the caller can
// keep the partial result.
func (c *Client) FetchJournalYear(ctx context.Context, journal types.Journal, year int) ([]json.RawMessage, error) {
	filter := buildFilter(journal, year)

	var works []json.RawMessage
	cursor := "*"
	for {
		params := url.Values{
			"filter":   {filter},
			"per-page": {fmt.Sprintf("%d", perPage)},
			"cursor":   {cursor},
		}
		if c.Email != "" {
			params.Set("mailto", c.Email)
		}

		body, err := c.HTTP.Get(ctx, worksBase, params)
		if err != nil {
			return works, fmt.Errorf("fetching %s %d: %w", journal.Key, year, err)
		}

		var page listResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return works, fmt.Errorf("parsing works page for %s %d: %w", journal.Key, year, err)
		}

		works = append(works, page.Results...)

		if page.Meta.NextCursor == "" {
			return works, nil
		}
		cursor = page.Meta.NextCursor
	}
}
