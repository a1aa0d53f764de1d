package site

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shellmarks/catalog/internal/sectionmenu"
)

// maxSectionLevel is the deepest sect<N> container emitted for body headings.
const maxSectionLevel = 7

// sectionIDs generates heading ids for one catalog page. Generated ids carry
// the exclusion marker so that only section roots and headings with an
// explicit {#id} get a menu.
type sectionIDs struct {
	seen map[string]bool
}

func newSectionIDs() *sectionIDs {
	return &sectionIDs{seen: make(map[string]bool)}
}

// Generate implements parser.IDs.
func (s *sectionIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	slug := slugify(string(value))
	if slug == "" {
		slug = "section"
	}
	base := sectionmenu.ExclusionMarker + slug
	id := base
	for i := 1; s.seen[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	s.seen[id] = true
	return []byte(id)
}

// Put implements parser.IDs.
func (s *sectionIDs) Put(value []byte) {
	s.seen[string(value)] = true
}

// slugify lowercases s and joins runs of letters and digits with single dashes.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// headingLevel returns N for an <hN> element, or 0.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if l := int(n.Data[1] - '0'); l >= 1 && l <= 6 {
		return l
	}
	return 0
}

// sectionize wraps the rendered body of one section file in a div.sect1
// headed by <h2 id="name">. Body headings open nested div.sect<N> containers:
// an <hN> opens sect<N>, with h1 treated like h2 since sect1 is the file itself.
func sectionize(name, title string, body []*html.Node) *html.Node {
	root := newElement(atom.Div, html.Attribute{Key: "class", Val: sectionmenu.SectionClass(1)})
	h := newElement(atom.H2, html.Attribute{Key: "id", Val: name})
	h.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	root.AppendChild(h)

	type open struct {
		level int
		node  *html.Node
	}
	stack := []open{{level: 1, node: root}}

	for _, n := range body {
		if l := headingLevel(n); l > 0 {
			if l < 2 {
				l = 2
			}
			if l > maxSectionLevel {
				l = maxSectionLevel
			}
			for stack[len(stack)-1].level >= l {
				stack = stack[:len(stack)-1]
			}
			div := newElement(atom.Div, html.Attribute{Key: "class", Val: sectionmenu.SectionClass(l)})
			stack[len(stack)-1].node.AppendChild(div)
			stack = append(stack, open{level: l, node: div})
		}
		stack[len(stack)-1].node.AppendChild(n)
	}
	return root
}

// dropTitle removes the first top-level <h1> from body and returns its text.
func dropTitle(body []*html.Node) ([]*html.Node, string) {
	for i, n := range body {
		if n.Type != html.ElementNode {
			continue
		}
		if n.DataAtom != atom.H1 {
			break
		}
		out := append(body[:i:i], body[i+1:]...)
		return out, strings.TrimSpace(textContent(n))
	}
	return body, ""
}

func newElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
