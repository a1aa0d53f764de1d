package sectionmenu

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ExclusionMarker prefixes ids assigned by the rendering pipeline. Sections
// carrying such ids are not meant to be edited by hand.
const ExclusionMarker = "_"

var headingTag = regexp.MustCompile(`^h\d$`)

// SectionID returns the id declared by the first heading among the
// section's direct children. Headings without an id, or with an empty one,
// are passed over. ok is false when no heading child supplies an id.
func SectionID(section *html.Node) (id string, ok bool) {
	if section == nil {
		return "", false
	}
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || !headingTag.MatchString(strings.ToLower(c.Data)) {
			continue
		}
		if v, found := attr(c, "id"); found && v != "" {
			return v, true
		}
	}
	return "", false
}

// Excluded reports whether id carries the exclusion marker.
func Excluded(id string) bool {
	return strings.HasPrefix(id, ExclusionMarker)
}
