// Package sectionmenu decorates rendered catalog pages with per-section
// edit menus.
//
// A page is scanned for structural section containers (div.sect0 through
// div.sect7). Each section whose first heading child declares an id gets a
// menu: a trigger icon inserted as the section's first child and a content
// panel inserted right after it, holding an "Edit Section" item that links
// to the synthetic URI editSection:<id>. Sections whose id starts with an
// underscore were named by the rendering pipeline rather than by an author
// and are left alone.
//
// The package works on golang.org/x/net/html trees and never touches the
// network or the filesystem; hosts decide what editSection links do.
package sectionmenu
