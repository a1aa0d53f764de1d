package site

import (
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/shellmarks/catalog/internal/sectionmenu"
)

// TOC is one entry in the catalog's table of contents.
type TOC struct {
	ID       string
	Title    string
	Level    int
	Children []*TOC
}

// BuildTOC collects the section containers below roots into a tree. Sections
// whose heading has no id are left out, along with everything nested in them.
func BuildTOC(roots []*xhtml.Node) *TOC {
	top := &TOC{Title: "Contents"}
	for _, r := range roots {
		collectTOC(top, r)
	}
	return top
}

func collectTOC(parent *TOC, n *xhtml.Node) {
	level := sectionLevel(n)
	if level == 0 {
		return
	}
	id, ok := sectionmenu.SectionID(n)
	if !ok {
		return
	}
	entry := &TOC{ID: id, Level: level}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if headingLevel(c) > 0 && entry.Title == "" {
			entry.Title = strings.TrimSpace(textContent(c))
			continue
		}
		collectTOC(entry, c)
	}
	if entry.Title == "" {
		entry.Title = id
	}
	parent.Children = append(parent.Children, entry)
}

// sectionLevel returns L for a div carrying the sect<L> class, or 0.
func sectionLevel(n *xhtml.Node) int {
	if n.Type != xhtml.ElementNode || n.Data != "div" {
		return 0
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, tok := range strings.Fields(a.Val) {
			for l := 1; l <= maxSectionLevel; l++ {
				if tok == sectionmenu.SectionClass(l) {
					return l
				}
			}
		}
	}
	return 0
}

// ToHTML renders the table of contents as nested <ul><li> HTML for the sidebar.
// Entries deeper than depth are omitted; depth <= 0 renders everything.
func (t *TOC) ToHTML(depth int) string {
	var b strings.Builder
	renderTOC(&b, t, depth)
	return b.String()
}

func renderTOC(b *strings.Builder, node *TOC, depth int) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if depth > 0 && child.Level > depth {
			continue
		}
		fmt.Fprintf(b, `<li class="toc-level-%d"><a href="#%s">%s</a>`, child.Level, html.EscapeString(child.ID), html.EscapeString(child.Title))
		if len(child.Children) > 0 && (depth <= 0 || child.Level < depth) {
			b.WriteString("\n")
			renderTOC(b, child, depth)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
