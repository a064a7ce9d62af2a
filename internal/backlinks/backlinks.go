// Package backlinks classifies the links of every Document body and resolves
// which Documents link to which.
//
// Resolution runs in two passes. Pass 1 scans each body on its own and can run
// in parallel. Pass 2 inverts the internal links of every Document into
// BacklinksFrom, and only starts once pass 1 has a result for every Document.
package backlinks

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/sync/errgroup"

	"dok/internal/content"
	"dok/internal/util"
)

// ButtonMarker prefixes the href of links rendered as buttons.
const ButtonMarker = "button:"

// ErrIncompleteScan is returned when pass 2 is asked to run without a pass 1
// result for every Document.
var ErrIncompleteScan = errors.New("backlink scan incomplete")

// Result is the outcome of pass 1 for one Document.
type Result struct {
	// Body is the rewritten body with a link class on every anchor.
	Body  string
	Links []content.LinkRef
}

// Scan runs pass 1 over one rendered body.
func Scan(body string) (Result, error) {
	nodes, err := html.ParseFragment(strings.NewReader(body), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse body: %w", err)
	}

	var links []content.LinkRef
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if ref, ok := classify(n); ok {
				links = append(links, ref)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}

	var out strings.Builder
	for _, n := range nodes {
		visit(n)
		if err := html.Render(&out, n); err != nil {
			return Result{}, fmt.Errorf("failed to render body: %w", err)
		}
	}
	return Result{Body: out.String(), Links: links}, nil
}

// classify rewrites one anchor in place and returns the link it records.
// Anchors without an href are left untouched.
func classify(n *html.Node) (content.LinkRef, bool) {
	href, ok := util.Attr(n, "href")
	if !ok {
		return content.LinkRef{}, false
	}

	button := false
	if strings.HasPrefix(href, ButtonMarker) {
		href = strings.TrimPrefix(href, ButtonMarker)
		util.SetAttr(n, "href", href)
		util.AddClass(n, "btn")
		button = true
	}

	if IsExternal(href) {
		util.AddClass(n, "external")
		return content.LinkRef{Target: href, Kind: content.LinkExternal}, true
	}

	util.AddClass(n, "internal")
	kind := content.LinkInternal
	if button {
		kind = content.LinkButton
	}
	return content.LinkRef{Target: util.Text(n), Kind: kind}, true
}

// IsExternal reports whether href leaves the site.
func IsExternal(href string) bool {
	return strings.Contains(href, "http:") ||
		strings.Contains(href, "https:") ||
		strings.Contains(href, "mailto:")
}

// Resolve runs both passes over the site and stores the results on its
// Documents: rewritten bodies, BacklinksTo and BacklinksFrom.
func Resolve(ctx context.Context, site *content.Site, workers int) error {
	results, err := ScanAll(ctx, site, workers)
	if err != nil {
		return err
	}
	return Invert(site, results)
}

// ScanAll runs pass 1 over every Document in parallel and returns the results
// keyed by slug once all of them are done.
func ScanAll(ctx context.Context, site *content.Site, workers int) (map[string]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	scanned := make([]Result, len(site.Ordered))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range site.Ordered {
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Scan(doc.Body)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.Path, err)
			}
			scanned[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[string]Result, len(scanned))
	for i, doc := range site.Ordered {
		results[doc.Slug] = scanned[i]
	}
	return results, nil
}

// Invert applies pass 1 results to the site and runs pass 2. Every Document
// of the site must have a result.
func Invert(site *content.Site, results map[string]Result) error {
	for _, doc := range site.Ordered {
		if _, ok := results[doc.Slug]; !ok {
			return fmt.Errorf("%w: no result for %q", ErrIncompleteScan, doc.Slug)
		}
	}

	targets := make(map[string]map[string]bool, len(results))
	for _, doc := range site.Ordered {
		res := results[doc.Slug]
		doc.Body = res.Body
		doc.BacklinksTo = res.Links

		set := make(map[string]bool)
		for _, target := range doc.InternalTargets() {
			set[target] = true
		}
		targets[doc.Slug] = set
	}

	for _, a := range site.Ordered {
		var from []string
		for _, b := range site.Ordered {
			if a == b {
				continue
			}
			if targets[b.Slug][a.Slug] {
				from = append(from, b.Slug)
			}
		}
		a.BacklinksFrom = from
	}
	return nil
}
