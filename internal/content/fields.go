package content

import (
	"strings"
	"time"
)

// applyMetadata fills the typed fields of doc from its metadata block. Absent
// keys take their defaults; present keys must hold a readable value.
func applyMetadata(doc *Document) error {
	meta := doc.Metadata
	r := fieldReader{doc: doc}

	doc.Title = doc.Slug
	if v, ok := meta.First("title"); ok && strings.TrimSpace(v) != "" {
		doc.Title = v
	}

	doc.Open = r.boolean("open")
	doc.Draft = r.boolean("draft")
	doc.ReverseOrder = r.boolean("reverse_order")
	doc.NoInterface = r.boolean("no_interface")
	doc.Featured = r.boolean("featured")
	doc.Translation = r.boolean("translation")

	doc.LastUpdate = doc.PublicationDate
	if v, ok := meta.First("last_update"); ok {
		doc.LastUpdate = r.date("last_update", v)
	}

	doc.FeaturedImage, _ = meta.First("featured_image")
	doc.FeaturedDesc, _ = meta.First("featured_desc")
	doc.FeaturedPrice, _ = meta.First("featured_price")
	doc.Type, _ = meta.First("type")
	doc.Tags = r.tags(meta.Values("tags"))

	return r.err
}

// fieldReader keeps the first conversion error so applyMetadata reads as a
// flat list of fields.
type fieldReader struct {
	doc *Document
	err error
}

func (r *fieldReader) boolean(key string) bool {
	v, ok := r.doc.Metadata.First(key)
	if !ok {
		return false
	}
	b, valid := ParseBool(v)
	if !valid {
		r.fail(key, v)
	}
	return b
}

func (r *fieldReader) date(key, v string) time.Time {
	for _, layout := range []string{"02-01-2006", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
			return t
		}
	}
	r.fail(key, v)
	return r.doc.PublicationDate
}

func (r *fieldReader) fail(key, v string) {
	if r.err == nil {
		r.err = &MetadataValueError{Path: r.doc.Path, Key: key, Value: v}
	}
}

// ParseBool accepts the literal spellings metadata authors use for booleans.
// It reports false for anything else.
func ParseBool(v string) (value bool, ok bool) {
	switch strings.TrimSpace(v) {
	case "True", "true", "TRUE":
		return true, true
	case "False", "false", "FALSE":
		return false, true
	}
	return false, false
}

// tags reads a "a, b" style value, or one tag per value when the block holds
// a list. Every tag names a tag-<tag>.html page, so it must be a plain file
// name.
func (r *fieldReader) tags(values []string) []string {
	var raw []string
	if len(values) == 1 {
		raw = strings.Split(values[0], ", ")
	} else {
		raw = values
	}
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !ValidTag(tag) {
			r.fail("tags", tag)
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// ValidTag reports whether tag can be used in a page file name.
func ValidTag(tag string) bool {
	return tag != "." && tag != ".." && !strings.ContainsAny(tag, `/\`)
}
