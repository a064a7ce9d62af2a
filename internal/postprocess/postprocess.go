// Package postprocess rewrites the HTML of a rendered page: media paths,
// figures, videos, tables and nested sub-article embeds.
//
// Each rewrite is a Pass that receives a tree and returns a rewritten copy,
// so passes can be tested one at a time and composed in a fixed order.
package postprocess

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"dok/internal/content"
)

// MediaDir is the output folder every media asset is staged into.
const MediaDir = "medias"

// Page carries what passes need to know about the Document being rendered.
type Page struct {
	// Slug of the rendered Document; prefixes video and file media.
	Slug string
	// MediaSlug prefixes image media. It is the parent's slug for translations.
	MediaSlug string
}

// PageFor describes doc, the Document whose page is being processed.
func PageFor(doc *content.Document) Page {
	return Page{Slug: doc.Slug, MediaSlug: doc.MediaSlug()}
}

// Pass is one rewrite over a page tree. It must not modify its input.
type Pass func(root *html.Node, page Page) *html.Node

// Pipeline is the order passes run in. Sub-article rewriting relies on image
// and video paths already being prefixed.
var Pipeline = []Pass{
	WrapTables,
	NormalizeVideos,
	FileLinks,
	TodoMarkers,
	Figures,
	SubArticles,
	LiftFigures,
}

// Process runs the full pipeline over the page rendered for doc.
func Process(markup string, doc *content.Document) (string, error) {
	return Run(markup, PageFor(doc), Pipeline...)
}

// Run parses markup, applies passes in order and renders the result.
func Run(markup string, page Page, passes ...Pass) (string, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}
	for _, pass := range passes {
		root = pass(root, page)
	}

	var out strings.Builder
	if err := html.Render(&out, root); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return out.String(), nil
}

func mediaPath(slug, name string) string {
	return MediaDir + "/" + slug + "-" + name
}

func mediaPrefix(slug string) string {
	return MediaDir + "/" + slug + "-"
}
