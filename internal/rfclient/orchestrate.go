package rfclient

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sabouaram/redpath/internal/redpath"
	"github.com/sabouaram/redpath/internal/rflog"
	"github.com/sabouaram/redpath/internal/sax"
)

// DefaultBaseURI is where every "raw get" walk starts, matching
// run_raw_get_cmd's hardcoded entry point.
const DefaultBaseURI = "/redfish/v1"

// OnResult is called once for every non-wildcard redpath that resolved to a
// non-empty value. cmd/redpath wires this to print "path=value" lines.
type OnResult func(path string, value string)

// Walk fetches uri and matches every path in paths against its body. A path
// whose head component is a wildcard (e.g. "Chassis[*]") is resolved to a
// concrete collection URI and re-walked with redpath.ForMemberRefetch
// applied, fanning out one goroutine per match found. A path whose head is
// a plain key name reports its matched value through onResult.
//
// Concurrency mirrors the original single-threaded recursive call: instead
// of a single thread recursing synchronously, each fan-out point spawns its
// continuations concurrently via an errgroup, bounded by how many matches
// the body actually contained.
func (c *Client) Walk(ctx context.Context, scheme, host, port, uri string, paths []redpath.Path, onResult OnResult) error {
	resp, err := c.Get(ctx, scheme, host, port, uri)
	if err != nil {
		return err
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, p := range paths {
		p := p

		head, ok := p.Head()
		if !ok {
			continue
		}

		m := sax.New(p)
		if _, werr := m.Write(resp.Body); werr != nil {
			rflog.WithRedpath(p.String()).WithError(werr).Debug("matcher rejected body")
			continue
		}
		_ = m.Finish()

		for _, match := range m.Matches() {
			match := match

			if head.IsWildcard() {
				nextPath, ok := redpath.ForMemberRefetch(p)
				if !ok {
					continue
				}

				nextURI := match.Value

				g.Go(func() error {
					return c.Walk(gctx, scheme, host, port, nextURI, []redpath.Path{nextPath}, onResult)
				})
			} else if match.Value != "" && onResult != nil {
				onResult(p.String(), match.Value)
			}
		}
	}

	return g.Wait()
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "application/json")
}
