package postprocess

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// cloneTree deep-copies n and everything below it.
func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneTree(child))
	}
	return c
}

// findAll collects, in document order, every element below root matching a.
func findAll(root *html.Node, a atom.Atom) []*html.Node {
	var found []*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return found
}

// closest returns the nearest ancestor of n matching match.
func closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && match(p) {
			return p
		}
	}
	return nil
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

// wrap puts wrapper where n was and moves n inside it.
func wrap(n, wrapper *html.Node) {
	n.Parent.InsertBefore(wrapper, n)
	n.Parent.RemoveChild(n)
	wrapper.AppendChild(n)
}

// liftOutOfParagraph moves n out of its enclosing paragraph. Content before n
// stays in the paragraph, content after n moves to a new paragraph, and
// paragraphs left empty are dropped.
func liftOutOfParagraph(n *html.Node) {
	p := n.Parent
	if !isElement(p, atom.P) || p.Parent == nil {
		return
	}
	grand := p.Parent

	after := element(atom.P, append([]html.Attribute(nil), p.Attr...)...)
	for s := n.NextSibling; s != nil; {
		next := s.NextSibling
		p.RemoveChild(s)
		after.AppendChild(s)
		s = next
	}
	p.RemoveChild(n)

	grand.InsertBefore(n, p.NextSibling)
	grand.InsertBefore(after, n.NextSibling)
	if isBlank(p) {
		grand.RemoveChild(p)
	}
	if isBlank(after) {
		grand.RemoveChild(after)
	}
}

// isBlank reports whether n holds nothing but whitespace.
func isBlank(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return false
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return true
}
