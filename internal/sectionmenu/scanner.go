package sectionmenu

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LevelRange is an inclusive range of section nesting levels.
type LevelRange struct {
	Min int
	Max int
}

// DefaultLevels covers sect0 through sect7, the full nesting depth the
// rendering pipeline emits.
var DefaultLevels = LevelRange{Min: 0, Max: 7}

// Contains reports whether level lies within the range.
func (r LevelRange) Contains(level int) bool {
	return level >= r.Min && level <= r.Max
}

// Section is a structural container found by a Scanner.
type Section struct {
	Node  *html.Node
	Level int
}

// Scanner locates section containers in a document.
type Scanner interface {
	FindSections(doc *html.Node, levels LevelRange) []Section
}

// SectionClass returns the class token that marks a level-N container.
func SectionClass(level int) string {
	return "sect" + strconv.Itoa(level)
}

// ClassScanner finds <div> elements carrying a sect<N> class token.
// Results are grouped by level, lowest first, each group in document order.
type ClassScanner struct{}

// FindSections implements Scanner.
func (ClassScanner) FindSections(doc *html.Node, levels LevelRange) []Section {
	if doc == nil {
		return nil
	}
	var out []Section
	for level := levels.Min; level <= levels.Max; level++ {
		class := SectionClass(level)
		walk(doc, func(n *html.Node) {
			if n.Type == html.ElementNode && n.DataAtom == atom.Div && hasClass(n, class) {
				out = append(out, Section{Node: n, Level: level})
			}
		})
	}
	return out
}
