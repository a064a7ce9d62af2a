package postprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dok/internal/content"
)

func page(body string) string {
	return "<!DOCTYPE html><html><head><title>t</title></head><body>" + body + "</body></html>"
}

func run(t *testing.T, body string, p Page, passes ...Pass) string {
	t.Helper()
	out, err := Run(page(body), p, passes...)
	require.NoError(t, err)
	return out
}

var intro = Page{Slug: "intro", MediaSlug: "intro"}

func TestWrapTables(t *testing.T) {
	out := run(t, "<table><tr><td>1</td></tr></table>", intro, WrapTables)
	require.Contains(t, out, `<div class="table"><table>`)
	require.Contains(t, out, `</table></div>`)

	again := run(t, `<div class="table"><table><tr><td>1</td></tr></table></div>`, intro, WrapTables)
	require.Equal(t, 1, strings.Count(again, `class="table"`))
}

func TestNormalizeVideos(t *testing.T) {
	out := run(t, `<p><video><source src="clip.mp4"></video></p>`, intro, NormalizeVideos)
	require.Contains(t, out, `<video controls="" preload="auto"><source src="medias/intro-clip.mp4" type="video/mp4"/></video>`)
	require.NotContains(t, out, "<p>")
}

func TestNormalizeVideos_LeavesConfiguredVideos(t *testing.T) {
	body := `<video controls=""><source src="clip.mp4"/></video>`
	out := run(t, body, intro, NormalizeVideos)
	require.Contains(t, out, `<source src="clip.mp4"/>`)
}

func TestFileLinks(t *testing.T) {
	out := run(t, `<p><a href="file:report.pdf">report</a></p>`, intro, FileLinks)
	require.Contains(t, out, `<a href="medias/intro-report.pdf" target="_blank" class="link-file">report</a>`)
}

func TestTodoMarkers(t *testing.T) {
	out := run(t, `<p>TODO: write this</p><p>Not TODO: here</p>`, intro, TodoMarkers)
	require.Contains(t, out, `<p class="todo">To do: write this</p>`)
	require.Contains(t, out, `<p>Not TODO: here</p>`)
}

func TestFigures_SizesAndCaption(t *testing.T) {
	body := `<p><img src="large:a.jpg" alt="Big"/></p><p><img src="small:b.jpg" alt="Small"/></p><p><img src="c.jpg"/></p>`
	out := run(t, body, intro, Figures, LiftFigures)

	require.Contains(t, out, `<figure class="lg"><img src="medias/intro-a.jpg" alt="Big" loading="lazy"/><figcaption>Big</figcaption></figure>`)
	require.Contains(t, out, `<figure class="sm"><img src="medias/intro-b.jpg" alt="Small" loading="lazy"/><figcaption>Small</figcaption></figure>`)
	require.Contains(t, out, `<figure class="md"><img src="medias/intro-c.jpg" loading="lazy"/><figcaption></figcaption></figure>`)
	require.NotContains(t, out, "<p>")
	require.NotContains(t, out, "large:")
}

func TestFigures_RemoteImageKeepsSource(t *testing.T) {
	out := run(t, `<img src="https://example.com/a.png" alt="x"/>`, intro, Figures)
	require.Contains(t, out, `src="https://example.com/a.png"`)
}

func TestFigures_TranslationUsesParentMedia(t *testing.T) {
	doc := &content.Document{Slug: "intro-fr", ParentSlug: "intro", HasParent: true, Translation: true}
	out, err := Process(page(`<p><img src="photo.jpg" alt="Photo"/></p>`), doc)
	require.NoError(t, err)
	require.Contains(t, out, `src="medias/intro-photo.jpg"`)
	require.NotContains(t, out, "intro-fr-photo.jpg")
}

func TestLiftFigures_SplitsParagraph(t *testing.T) {
	body := `<p>before <img src="x"/> after</p>`
	out := run(t, body, intro, Figures, LiftFigures)
	require.Contains(t, out, `<p>before </p><figure class="md"><img src="medias/intro-x" loading="lazy"/><figcaption></figcaption></figure><p> after</p>`)
}

func TestSubArticles_UseOwnMediaNamespace(t *testing.T) {
	body := `<p><img src="top.jpg" alt="top"/></p>` +
		`<section class="article--sub" id="details"><p><img src="inner.jpg" alt="inner"/></p>` +
		`<p><video><source src="clip.mp4"></video></p></section>`
	out, err := Process(page(body), &content.Document{Slug: "intro"})
	require.NoError(t, err)

	require.Contains(t, out, `src="medias/intro-top.jpg"`)
	require.Contains(t, out, `src="medias/details-inner.jpg"`)
	require.Contains(t, out, `src="medias/details-clip.mp4"`)
	require.NotContains(t, out, "medias/intro-inner.jpg")
}

func TestSubArticles_NestedEmbedsUseNearestID(t *testing.T) {
	body := `<section class="article--sub" id="outer"><img src="medias/intro-a.jpg"/>` +
		`<section class="article--sub" id="inner"><img src="medias/intro-b.jpg"/></section></section>`
	out := run(t, body, intro, SubArticles)
	require.Contains(t, out, `src="medias/outer-a.jpg"`)
	require.Contains(t, out, `src="medias/inner-b.jpg"`)
}

func TestPass_DoesNotModifyInput(t *testing.T) {
	doc := &content.Document{Slug: "intro"}
	in := page(`<p><img src="a.jpg" alt="a"/></p>`)
	out, err := Process(in, doc)
	require.NoError(t, err)
	require.NotEqual(t, in, out)

	root := mustParse(t, in)
	before := render(t, root)
	_ = Figures(root, intro)
	require.Equal(t, before, render(t, root))
}

func TestProcess_IsIdempotent(t *testing.T) {
	doc := &content.Document{Slug: "intro"}
	body := `<p>TODO: x</p><table><tr><td>1</td></tr></table>` +
		`<p><img src="large:a.jpg" alt="A"/> text</p>` +
		`<p><video><source src="v.mp4"></video></p><p><a href="file:f.pdf">f</a></p>`

	once, err := Process(page(body), doc)
	require.NoError(t, err)
	twice, err := Process(once, doc)
	require.NoError(t, err)
	require.Equal(t, once, twice)
	require.Equal(t, 1, strings.Count(twice, "<figure"))
}
