package util

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr retrieves an attribute value from an HTML node.
func Attr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute on an HTML node.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether class is one of n's classes.
func HasClass(n *html.Node, class string) bool {
	current, _ := Attr(n, "class")
	for _, c := range strings.Fields(current) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class to n's class list unless it is already there.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	current, _ := Attr(n, "class")
	SetAttr(n, "class", strings.TrimSpace(current+" "+class))
}

// Text returns the visible text of n and its children, trimmed.
func Text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(b.String())
}
