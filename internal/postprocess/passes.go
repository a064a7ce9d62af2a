package postprocess

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"dok/internal/backlinks"
	"dok/internal/util"
)

const (
	fileMarker  = "file:"
	todoMarker  = "TODO:"
	todoLabel   = "To do:"
	subArticle  = "article--sub"
	largeMarker = "large:"
	smallMarker = "small:"
)

// WrapTables puts every table in a <div class="table"> container.
func WrapTables(root *html.Node, _ Page) *html.Node {
	root = cloneTree(root)
	for _, table := range findAll(root, atom.Table) {
		if p := table.Parent; isElement(p, atom.Div) && util.HasClass(p, "table") {
			continue
		}
		wrap(table, element(atom.Div, html.Attribute{Key: "class", Val: "table"}))
	}
	return root
}

// NormalizeVideos turns a bare single-source <video> written in markdown into
// a playable element pointing at the staged media file.
func NormalizeVideos(root *html.Node, page Page) *html.Node {
	root = cloneTree(root)
	for _, video := range findAll(root, atom.Video) {
		if _, ok := util.Attr(video, "controls"); ok {
			continue
		}
		sources := findAll(video, atom.Source)
		if len(sources) != 1 {
			continue
		}
		source := sources[0]

		util.SetAttr(video, "controls", "")
		util.SetAttr(video, "preload", "auto")
		util.SetAttr(source, "type", "video/mp4")
		if src, ok := util.Attr(source, "src"); ok && isLocal(src) {
			util.SetAttr(source, "src", mediaPath(page.Slug, src))
		}
		liftOutOfParagraph(video)
	}
	return root
}

// FileLinks rewrites file: links to the staged file, opened in a new tab.
func FileLinks(root *html.Node, page Page) *html.Node {
	root = cloneTree(root)
	for _, a := range findAll(root, atom.A) {
		href, _ := util.Attr(a, "href")
		if !strings.HasPrefix(href, fileMarker) {
			continue
		}
		util.SetAttr(a, "href", mediaPath(page.Slug, strings.TrimPrefix(href, fileMarker)))
		util.SetAttr(a, "target", "_blank")
		util.AddClass(a, "link-file")
	}
	return root
}

// TodoMarkers styles paragraphs starting with "TODO:".
func TodoMarkers(root *html.Node, _ Page) *html.Node {
	root = cloneTree(root)
	for _, p := range findAll(root, atom.P) {
		first := p.FirstChild
		if first == nil || first.Type != html.TextNode || !strings.HasPrefix(first.Data, todoMarker) {
			continue
		}
		first.Data = todoLabel + strings.TrimPrefix(first.Data, todoMarker)
		util.AddClass(p, "todo")
	}
	return root
}

// Figures wraps every image in a captioned figure and points it at the
// staged media file. Images already inside a figure are left alone.
func Figures(root *html.Node, page Page) *html.Node {
	root = cloneTree(root)
	for _, img := range findAll(root, atom.Img) {
		if closest(img, func(n *html.Node) bool { return n.DataAtom == atom.Figure }) != nil {
			continue
		}

		src, _ := util.Attr(img, "src")
		if isLocal(src) {
			src = mediaPath(page.MediaSlug, src)
		}
		size := "md"
		switch {
		case strings.Contains(src, largeMarker):
			size = "lg"
			src = strings.Replace(src, largeMarker, "", 1)
		case strings.Contains(src, smallMarker):
			size = "sm"
			src = strings.Replace(src, smallMarker, "", 1)
		}
		util.SetAttr(img, "src", src)
		util.SetAttr(img, "loading", "lazy")

		alt, _ := util.Attr(img, "alt")
		caption := element(atom.Figcaption)
		caption.AppendChild(&html.Node{Type: html.TextNode, Data: alt})

		figure := element(atom.Figure, html.Attribute{Key: "class", Val: size})
		wrap(img, figure)
		figure.AppendChild(caption)
	}
	return root
}

// SubArticles points the media of nested sub-article embeds at the embedded
// Document's own files instead of the enclosing page's.
func SubArticles(root *html.Node, page Page) *html.Node {
	root = cloneTree(root)
	isSub := func(n *html.Node) bool {
		id, _ := util.Attr(n, "id")
		return util.HasClass(n, subArticle) && id != ""
	}

	retarget := func(n *html.Node, slug string) {
		sub := closest(n, isSub)
		if sub == nil {
			return
		}
		id, _ := util.Attr(sub, "id")
		src, _ := util.Attr(n, "src")
		if prefix := mediaPrefix(slug); strings.HasPrefix(src, prefix) {
			util.SetAttr(n, "src", mediaPrefix(id)+strings.TrimPrefix(src, prefix))
		}
	}

	for _, img := range findAll(root, atom.Img) {
		retarget(img, page.MediaSlug)
	}
	for _, video := range findAll(root, atom.Video) {
		for _, source := range findAll(video, atom.Source) {
			if t, _ := util.Attr(source, "type"); t == "video/mp4" {
				retarget(source, page.Slug)
			}
		}
	}
	return root
}

// LiftFigures moves figures out of the paragraphs markdown wraps images in.
func LiftFigures(root *html.Node, _ Page) *html.Node {
	root = cloneTree(root)
	for _, figure := range findAll(root, atom.Figure) {
		liftOutOfParagraph(figure)
	}
	return root
}

// isLocal reports whether src names a file next to the index file rather
// than a remote or already staged resource.
func isLocal(src string) bool {
	return src != "" &&
		!backlinks.IsExternal(src) &&
		!strings.HasPrefix(src, "/") &&
		!strings.HasPrefix(src, "data:") &&
		!strings.HasPrefix(src, MediaDir+"/")
}
