package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitMetadata_Headerless(t *testing.T) {
	src := []byte("Title: Hello\ntags: a, b\nauthors: one\n    two\n\n# Body\n")

	meta, body, err := SplitMetadata(src)
	require.NoError(t, err)
	require.Equal(t, []string{"Hello"}, meta.Values("title"))
	require.Equal(t, []string{"a, b"}, meta.Values("tags"))
	require.Equal(t, []string{"one", "two"}, meta.Values("authors"))
	require.Equal(t, "# Body\n", string(body))
}

func TestSplitMetadata_NoBlock_ReturnsWholeBody(t *testing.T) {
	src := []byte("# Heading\n\ntext\n")

	meta, body, err := SplitMetadata(src)
	require.NoError(t, err)
	require.Empty(t, meta)
	require.Equal(t, src, body)
}

func TestSplitMetadata_YAMLKeepsRawScalars(t *testing.T) {
	src := []byte("---\ntitle: Hello\nopen: True\ntags:\n  - a\n  - b\n---\nBody text\n")

	meta, body, err := SplitMetadata(src)
	require.NoError(t, err)

	open, ok := meta.First("open")
	require.True(t, ok)
	require.Equal(t, "True", open)
	require.Equal(t, []string{"a", "b"}, meta.Values("tags"))
	require.Contains(t, string(body), "Body text")
}

func TestSplitMetadata_YAMLNestedMapping_ReturnsError(t *testing.T) {
	src := []byte("---\nfeatured:\n  image: a.jpg\n---\nBody\n")

	_, _, err := SplitMetadata(src)
	require.Error(t, err)
}

func TestMetadataFirst_MissingKey(t *testing.T) {
	_, ok := Metadata{}.First("title")
	require.False(t, ok)
}

func TestConvert_TablesFencedCodeAndTOC(t *testing.T) {
	src := "title: Doc\n\n## First\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n### Nested\n\n```go\nfmt.Println(1)\n```\n\n## Second\n"

	res, err := New(Options{}).Convert([]byte(src))
	require.NoError(t, err)

	title, _ := res.Metadata.First("title")
	require.Equal(t, "Doc", title)
	require.Contains(t, res.Body, "<table>")
	require.Contains(t, res.Body, "<code")
	require.Contains(t, res.Body, `id="first"`)

	require.Contains(t, res.TOC, `<a href="#first">First</a>`)
	require.Contains(t, res.TOC, `<a href="#nested">Nested</a>`)
	require.Contains(t, res.TOC, `<a href="#second">Second</a>`)
	require.Less(t, strings.Index(res.TOC, "#first"), strings.Index(res.TOC, "#second"))
}

func TestConvert_Admonition(t *testing.T) {
	src := "!!! warning \"Careful\"\n    Mind the **gap**.\n\nAfter.\n"

	res, err := New(Options{}).Convert([]byte(src))
	require.NoError(t, err)
	require.Contains(t, res.Body, `<div class="admonition warning">`)
	require.Contains(t, res.Body, `<p class="admonition-title">Careful</p>`)
	require.Contains(t, res.Body, "<strong>gap</strong>")
	require.Contains(t, res.Body, "<p>After.</p>")
}

func TestExpandAdmonitions_DefaultTitleAndFences(t *testing.T) {
	out := expandAdmonitions("!!! note\n    body\n")
	require.Contains(t, out, `<p class="admonition-title">Note</p>`)

	fenced := "```\n!!! note\n```\n"
	require.Equal(t, fenced, expandAdmonitions(fenced))
}

func TestConvert_SanitizerKeepsDokMarkup(t *testing.T) {
	src := "[go](button:details.html) [doc](file:report.pdf)\n\n<video><source src=\"clip.mp4\"></video>\n\n<script>alert(1)</script>\n"

	res, err := New(Options{}).Convert([]byte(src))
	require.NoError(t, err)
	require.Contains(t, res.Body, `href="button:details.html"`)
	require.Contains(t, res.Body, `href="file:report.pdf"`)
	require.Contains(t, res.Body, `<source src="clip.mp4"`)
	require.NotContains(t, res.Body, "<script>")
}

func TestConvert_UnsafeKeepsRawHTML(t *testing.T) {
	res, err := New(Options{Unsafe: true}).Convert([]byte("<script>x()</script>\n"))
	require.NoError(t, err)
	require.Contains(t, res.Body, "<script>")
}

func TestRenderFragment(t *testing.T) {
	out, err := New(Options{}).RenderFragment("Made with *care*")
	require.NoError(t, err)
	require.Contains(t, out, "<em>care</em>")
}

func TestRenderTOC_Empty(t *testing.T) {
	require.Equal(t, "<div class=\"toc\">\n<ul></ul>\n</div>\n", renderTOC(nil))
}
