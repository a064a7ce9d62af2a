package content

import (
	"slices"
	"sort"
	"strings"
)

// TagIndex maps each tag to the Documents carrying it, in the order the
// Documents were processed.
type TagIndex struct {
	names []string
	docs  map[string][]*Document
}

func newTagIndex() *TagIndex {
	return &TagIndex{docs: make(map[string][]*Document)}
}

func (t *TagIndex) add(tag string, doc *Document) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	if _, ok := t.docs[tag]; !ok {
		t.names = append(t.names, tag)
	}
	t.docs[tag] = append(t.docs[tag], doc)
}

// Names returns every tag in first-seen order.
func (t *TagIndex) Names() []string { return slices.Clone(t.names) }

// Documents returns the Documents tagged with tag.
func (t *TagIndex) Documents(tag string) []*Document { return t.docs[tag] }

// Len is the number of distinct tags.
func (t *TagIndex) Len() int { return len(t.names) }

// Site is the assembled content graph.
type Site struct {
	Documents map[string]*Document
	// Ordered holds every Document sorted by folder name, which puts them in
	// chronological order.
	Ordered []*Document
	Tags    *TagIndex
}

// Get looks a Document up by slug.
func (s *Site) Get(slug string) (*Document, bool) {
	d, ok := s.Documents[slug]
	return d, ok
}

// Assemble builds the Site from a complete set of Documents: it orders them,
// orders each Document's children and indexes tags.
func Assemble(docs []*Document) (*Site, error) {
	ordered := slices.Clone(docs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].Path < ordered[j].Path
	})

	site := &Site{
		Documents: make(map[string]*Document, len(ordered)),
		Ordered:   ordered,
		Tags:      newTagIndex(),
	}
	for _, doc := range ordered {
		if existing, ok := site.Documents[doc.Slug]; ok {
			return nil, &SlugCollisionError{Slug: doc.Slug, Existing: existing.Path, Duplicate: doc.Path}
		}

		if len(doc.Children) > 0 {
			children := slices.Clone(doc.Children)
			sort.Strings(children)
			if doc.ReverseOrder {
				slices.Reverse(children)
			}
			doc.Children = children
			doc.ChildSlugs = childSlugs(children)
		}

		site.Documents[doc.Slug] = doc
		for _, tag := range doc.Tags {
			site.Tags.add(tag, doc)
		}
	}
	return site, nil
}
