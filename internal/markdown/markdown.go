// Package markdown converts index file sources into body HTML, a metadata
// block and a table of contents.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Result is what a converter produces for one index file.
type Result struct {
	Body     string
	Metadata Metadata
	TOC      string
}

// Converter turns raw index file text into a Result.
type Converter interface {
	Convert(source []byte) (*Result, error)
}

// Options control the goldmark converter.
type Options struct {
	// Unsafe disables HTML sanitizing of the rendered body.
	Unsafe bool
}

// GoldmarkConverter renders markdown with tables, fenced code, admonitions
// and a heading-derived table of contents.
type GoldmarkConverter struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	unsafe    bool
}

// New returns a GoldmarkConverter configured by opts.
func New(opts Options) *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(
					util.Prioritized(newTOCTransformer(), 100),
				),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
		sanitizer: newPolicy(),
		unsafe:    opts.Unsafe,
	}
}

// newPolicy extends the UGC policy with the markup dok pages are written in:
// embedded videos, sub-article sections and the button:/file: link markers.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowURLSchemes("button", "file", "large", "small")
	p.AllowAttrs("class", "id").Globally()
	p.AllowElements("div", "section", "figure", "figcaption")
	p.AllowNoAttrs().OnElements("div", "section", "figure", "figcaption", "video")
	p.AllowAttrs("controls", "preload").OnElements("video")
	p.AllowAttrs("src", "type").OnElements("video", "source")
	p.AllowAttrs("target").OnElements("a")
	return p
}

// Convert splits off the metadata block and renders the remaining body.
func (c *GoldmarkConverter) Convert(source []byte) (*Result, error) {
	meta, body, err := SplitMetadata(source)
	if err != nil {
		return nil, err
	}

	src := []byte(expandAdmonitions(string(body)))
	pc := parser.NewContext()
	doc := c.md.Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}

	return &Result{
		Body:     c.sanitize(buf.String()),
		Metadata: meta,
		TOC:      renderTOC(headingsFrom(pc)),
	}, nil
}

// RenderFragment renders a markdown snippet without looking for a metadata
// block. Site settings such as the footer go through here.
func (c *GoldmarkConverter) RenderFragment(source string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}
	return c.sanitize(buf.String()), nil
}

func (c *GoldmarkConverter) sanitize(out string) string {
	if c.unsafe {
		return out
	}
	return c.sanitizer.Sanitize(out)
}
