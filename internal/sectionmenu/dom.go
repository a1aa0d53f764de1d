package sectionmenu

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// hasClass reports whether the element's class list contains token.
func hasClass(n *html.Node, token string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == token {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, token string) {
	if hasClass(n, token) {
		return
	}
	v, _ := attr(n, "class")
	if v = strings.TrimSpace(v); v != "" {
		v += " "
	}
	setAttr(n, "class", v+token)
}

func removeClass(n *html.Node, token string) {
	v, ok := attr(n, "class")
	if !ok {
		return
	}
	var kept []string
	for _, c := range strings.Fields(v) {
		if c != token {
			kept = append(kept, c)
		}
	}
	setAttr(n, "class", strings.Join(kept, " "))
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag)), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}
