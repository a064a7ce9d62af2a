// Package content loads content folders into Documents and assembles them
// into the Site graph every page is rendered from.
package content

import (
	"html/template"
	"time"

	"dok/internal/ident"
	"dok/internal/markdown"
)

// IndexFile is the file that turns a folder into a Document.
const IndexFile = "_index.md"

// LinkKind classifies a link found in a Document body.
type LinkKind string

const (
	LinkInternal LinkKind = "internal"
	LinkExternal LinkKind = "external"
	LinkButton   LinkKind = "button"
)

// LinkRef is one link target recorded from a rendered body. Target is the
// link's visible text for internal and button links, and the href otherwise.
type LinkRef struct {
	Target string
	Kind   LinkKind
}

// Internal reports whether the link points at another Document.
func (l LinkRef) Internal() bool {
	return l.Kind == LinkInternal || l.Kind == LinkButton
}

// Document is one content folder.
type Document struct {
	Path            string
	Name            string
	PublicationDate time.Time
	Slug            string

	Children   []string
	ChildSlugs []string

	Metadata        markdown.Metadata
	Body            string
	TableOfContents string

	ParentSlug string
	HasParent  bool

	BacklinksTo   []LinkRef
	BacklinksFrom []string

	Title         string
	Open          bool
	Draft         bool
	ReverseOrder  bool
	NoInterface   bool
	LastUpdate    time.Time
	Featured      bool
	FeaturedImage string
	FeaturedDesc  string
	FeaturedPrice string
	Tags          []string
	Translation   bool
	Type          string
}

// URL is the page the Document is written to.
func (d *Document) URL() string { return d.Slug + ".html" }

// ParentURL is the page of the enclosing Document.
func (d *Document) ParentURL() string { return d.ParentSlug + ".html" }

// Content returns the body for use in templates.
func (d *Document) Content() template.HTML { return template.HTML(d.Body) }

// TOC returns the table of contents for use in templates.
func (d *Document) TOC() template.HTML { return template.HTML(d.TableOfContents) }

// Published is the publication date in display form.
func (d *Document) Published() string { return ident.FormatDate(d.PublicationDate) }

// Updated is the last update date in display form.
func (d *Document) Updated() string { return ident.FormatDate(d.LastUpdate) }

// InternalTargets lists the targets of every internal link in the body.
func (d *Document) InternalTargets() []string {
	var targets []string
	for _, l := range d.BacklinksTo {
		if l.Internal() {
			targets = append(targets, l.Target)
		}
	}
	return targets
}

// MediaSlug is the prefix of the Document's staged media. Translations share
// the media of the Document they translate.
func (d *Document) MediaSlug() string {
	if d.Translation && d.HasParent {
		return d.ParentSlug
	}
	return d.Slug
}
