package markdown

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var headingsKey = parser.NewContextKey()

type heading struct {
	level int
	id    string
	title string
}

// tocTransformer is a goldmark ASTTransformer that records every heading of
// the document so a table of contents can be rendered next to the body.
type tocTransformer struct{}

func newTOCTransformer() parser.ASTTransformer {
	return &tocTransformer{}
}

// Transform walks the AST once; heading IDs are already assigned by the
// auto heading ID parser option at this point.
func (t *tocTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var headings []heading
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		headings = append(headings, heading{
			level: h.Level,
			id:    id,
			title: string(h.Text(source)),
		})
		return ast.WalkSkipChildren, nil
	})
	pc.Set(headingsKey, headings)
}

func headingsFrom(pc parser.Context) []heading {
	v := pc.Get(headingsKey)
	if v == nil {
		return nil
	}
	return v.([]heading)
}

// renderTOC renders headings as nested lists, one level per heading depth.
func renderTOC(headings []heading) string {
	var b strings.Builder
	b.WriteString("<div class=\"toc\">\n")
	if len(headings) == 0 {
		b.WriteString("<ul></ul>\n</div>\n")
		return b.String()
	}

	var stack []int
	for i, h := range headings {
		switch {
		case len(stack) == 0 || h.level > stack[len(stack)-1]:
			b.WriteString("<ul>\n")
			stack = append(stack, h.level)
		default:
			for len(stack) > 1 && h.level < stack[len(stack)-1] {
				b.WriteString("</li>\n</ul>\n")
				stack = stack[:len(stack)-1]
			}
			if i > 0 {
				b.WriteString("</li>\n")
			}
		}
		fmt.Fprintf(&b, "<li><a href=\"#%s\">%s</a>", html.EscapeString(h.id), html.EscapeString(h.title))
	}
	for range stack {
		b.WriteString("</li>\n</ul>\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}
