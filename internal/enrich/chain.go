// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich annotates works with JEL codes by trying an ordered list
// of data sources and short-circuiting at the first hit.
package enrich

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/jel-harvest/pkg/types"
)

// Result is a successful extraction from one source: the codes plus the
// raw text evidence they came from.
type Result struct {
	Codes []string
	Raw   string
}

// Strategy is one data source for JEL codes. Attempt returns nil (no
// error) when the source has nothing for this work; errors are treated
// the same way by the chain, only louder.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, work *types.Work) (*Result, error)
}

// MissingSource is the provenance tag recorded when every strategy comes
// up empty. It is a valid terminal state, not an error.
const MissingSource = "missing"

// Chain tries strategies strictly in order.
type Chain struct {
	Strategies []Strategy

	// Delay is the politeness pause between consecutive strategy
	// attempts for the same work.
	Delay time.Duration
}

// Enrich runs the chain for one work and fills in its JEL fields. The
// first strategy returning a non-empty code list wins and its name becomes
// the provenance tag. A strategy error is reported on w and the chain
// proceeds; if every strategy yields nothing the work is tagged
// MissingSource with no codes.
func (c *Chain) Enrich(ctx context.Context, work *types.Work, w io.Writer) error {
	for i, s := range c.Strategies {
		if i > 0 && c.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.Delay):
			}
		}

		result, err := s.Attempt(ctx, work)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(w, "    %s: %v\n", s.Name(), err)
			continue
		}
		if result == nil || len(result.Codes) == 0 {
			continue
		}

		work.JELCodes = result.Codes
		work.JELRaw = result.Raw
		work.JELSource = s.Name()
		return nil
	}

	work.JELCodes = nil
	work.JELRaw = ""
	work.JELSource = MissingSource
	return nil
}

// Build assembles a chain from the configured source names. Unknown names
// are rejected so a typo in the config fails fast instead of silently
// shrinking the chain.
func Build(names []string, deps Deps, delay time.Duration) (*Chain, error) {
	available := map[string]Strategy{}
	for _, s := range []Strategy{
		&LandingPage{Deps: deps},
		&PublisherSearch{Deps: deps},
		&CrossRef{Deps: deps},
		&OpenAlexConcepts{Deps: deps},
		&IdeasIndex{Deps: deps},
	} {
		available[s.Name()] = s
	}

	var chain Chain
	chain.Delay = delay
	for _, name := range names {
		s, ok := available[name]
		if !ok {
			return nil, fmt.Errorf("unknown enrichment source %q", name)
		}
		chain.Strategies = append(chain.Strategies, s)
	}
	if len(chain.Strategies) == 0 {
		return nil, fmt.Errorf("no enrichment sources configured")
	}
	return &chain, nil
}
