// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/jel-harvest/internal/cache"
	"github.com/pdiddy/jel-harvest/internal/httputil"
	"github.com/pdiddy/jel-harvest/internal/jel"
	"github.com/pdiddy/jel-harvest/pkg/types"
)

// Strategy endpoints. Declared as vars so tests can substitute httptest
// servers.
var (
	aeaSearchBase     = "https://www.aeaweb.org/articles/search"
	crossrefWorksBase = "https://api.crossref.org/works/"
	openalexWorksBase = "https://api.openalex.org/works/"
	ideasSearchBase   = "https://ideas.repec.org/search.html"
)

// publisherDomain marks landing pages the LandingPage strategy will
// fetch. A var so tests can point it at an httptest server.
var publisherDomain = "aeaweb.org"

// rawSnippetLen bounds the stored text evidence per record.
const rawSnippetLen = 500

// Deps holds what every strategy needs: the shared resilient client and
// the payload cache. One Deps value is built per run and passed to all
// strategies.
type Deps struct {
	HTTP  *httputil.Client
	Cache *cache.Dir
}

// fetchCached returns the payload for key, fetching target and storing it
// on a cache miss. Cached content is used verbatim; no request is issued.
func (d Deps) fetchCached(ctx context.Context, key, target string, params url.Values) ([]byte, error) {
	if body, ok := d.Cache.Get(key); ok {
		return body, nil
	}
	body, err := d.HTTP.Get(ctx, target, params)
	if err != nil {
		return nil, err
	}
	if err := d.Cache.Put(key, body); err != nil {
		return nil, err
	}
	return body, nil
}

// LandingPage extracts codes from the article's own landing page when it
// is hosted on the publisher domain.
type LandingPage struct {
	Deps
}

func (s *LandingPage) Name() string { return "aea_page" }

func (s *LandingPage) Attempt(ctx context.Context, work *types.Work) (*Result, error) {
	landing := work.Landing()
	if landing == "" || !strings.Contains(strings.ToLower(landing), publisherDomain) {
		return nil, nil
	}

	key := "aea_" + landing + ".html"
	if doi := work.DOI(); doi != "" {
		key = "aea_" + doi + ".html"
	}

	html, err := s.fetchCached(ctx, key, landing, nil)
	if err != nil {
		return nil, err
	}
	return extractFromHTML(html)
}

// PublisherSearch looks the work up on the publisher's site search by DOI
// and extracts codes from the first article page it links to.
type PublisherSearch struct {
	Deps
}

func (s *PublisherSearch) Name() string { return "aea_search" }

func (s *PublisherSearch) Attempt(ctx context.Context, work *types.Work) (*Result, error) {
	doi := work.DOI()
	if doi == "" {
		return nil, nil
	}

	// The search results page is not cached: its content shifts with the
	// site index, and the article page behind it is cached anyway.
	body, err := s.HTTP.Get(ctx, aeaSearchBase, url.Values{"q": {doi}})
	if err != nil {
		return nil, err
	}

	articleURL, err := firstArticleLink(body)
	if err != nil || articleURL == "" {
		return nil, err
	}

	html, err := s.fetchCached(ctx, "aea_search_"+articleURL+".html", articleURL, nil)
	if err != nil {
		return nil, err
	}
	return extractFromHTML(html)
}

// CrossRef queries the CrossRef works registry by DOI. Subject fields are
// scanned first; the serialized message is the fallback.
type CrossRef struct {
	Deps
}

func (s *CrossRef) Name() string { return "crossref" }

func (s *CrossRef) Attempt(ctx context.Context, work *types.Work) (*Result, error) {
	doi := work.DOI()
	if doi == "" {
		return nil, nil
	}

	body, err := s.fetchCached(ctx, "crossref_"+doi+".json", crossrefWorksBase+doi, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Message struct {
			Subject []string `json:"subject"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}

	if len(payload.Message.Subject) > 0 {
		joined := strings.Join(payload.Message.Subject, ", ")
		if codes := jel.ExtractCodes(joined); len(codes) > 0 {
			return &Result{Codes: codes, Raw: truncate(joined, rawSnippetLen)}, nil
		}
	}

	text := string(body)
	if codes := jel.ExtractCodes(text); len(codes) > 0 {
		return &Result{Codes: codes, Raw: truncate(text, rawSnippetLen)}, nil
	}
	return nil, nil
}

// OpenAlexConcepts re-fetches the work's own OpenAlex record and scans the
// serialized payload, which carries concept tags and keywords.
type OpenAlexConcepts struct {
	Deps
}

func (s *OpenAlexConcepts) Name() string { return "openalex" }

func (s *OpenAlexConcepts) Attempt(ctx context.Context, work *types.Work) (*Result, error) {
	if work.ID == "" {
		return nil, nil
	}
	tail := work.ID
	if i := strings.LastIndex(tail, "/"); i >= 0 {
		tail = tail[i+1:]
	}
	if tail == "" {
		return nil, nil
	}

	body, err := s.fetchCached(ctx, "openalex_"+tail+".json", openalexWorksBase+tail, nil)
	if err != nil {
		return nil, err
	}

	text := string(body)
	if codes := jel.ExtractCodes(text); len(codes) > 0 {
		return &Result{Codes: codes, Raw: truncate(text, rawSnippetLen)}, nil
	}
	return nil, nil
}

// IdeasIndex searches the IDEAS/RePEc bibliographic index by DOI and scans
// the result page text.
type IdeasIndex struct {
	Deps
}

func (s *IdeasIndex) Name() string { return "ideas" }

func (s *IdeasIndex) Attempt(ctx context.Context, work *types.Work) (*Result, error) {
	doi := work.DOI()
	if doi == "" {
		return nil, nil
	}

	body, err := s.HTTP.Get(ctx, ideasSearchBase, url.Values{"q": {doi}})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing search page: %w", err)
	}

	text := doc.Text()
	if codes := jel.ExtractCodes(text); len(codes) > 0 {
		return &Result{Codes: codes, Raw: truncate(strings.Join(strings.Fields(text), " "), rawSnippetLen)}, nil
	}
	return nil, nil
}

// jelLabels mark page sections that announce a JEL classification.
var jelLabels = []string{"JEL CLASSIF", "JEL CODE", "JEL:", "CLASSIF"}

// extractFromHTML scans an article page for JEL codes. Labeled sections
// are preferred since they pin the evidence snippet to the classification
// block; the whole rendered text is the fallback.
func extractFromHTML(html []byte) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing article page: %w", err)
	}

	var found *Result
	doc.Find("div, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return true
		}
		upper := strings.ToUpper(text)
		for _, label := range jelLabels {
			if strings.Contains(upper, label) {
				if codes := jel.ExtractCodes(text); len(codes) > 0 {
					found = &Result{Codes: codes, Raw: truncate(strings.Join(strings.Fields(text), " "), rawSnippetLen)}
					return false
				}
			}
		}
		return true
	})
	if found != nil {
		return found, nil
	}

	text := doc.Text()
	if codes := jel.ExtractCodes(text); len(codes) > 0 {
		return &Result{Codes: codes, Raw: truncate(strings.Join(strings.Fields(text), " "), rawSnippetLen)}, nil
	}
	return nil, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// firstArticleLink returns the first link on a publisher search results
// page that points at an article, resolved to an absolute URL.
func firstArticleLink(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing search results: %w", err)
	}

	var link string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "/articles?") {
			return true
		}
		if strings.HasPrefix(href, "/") {
			href = "https://www.aeaweb.org" + href
		}
		link = href
		return false
	})
	return link, nil
}
