package sectionmenu

import (
	"golang.org/x/net/html"

	"github.com/shellmarks/catalog/internal/action"
)

// Class names the page stylesheet and script key on.
const (
	TriggerClass = "section-menu"
	PanelClass   = "section-menu-content"
	ItemClass    = "section-menu-item"
	ActiveClass  = "active"
)

// EditLabel is the text of the edit item.
const EditLabel = "Edit Section"

// Material "more vert" and "edit" icons, inlined so pages need no assets.
const (
	moreVertIcon = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' height='24px' viewBox='0 0 24 24' width='24px' fill='%23000000'%3E%3Cpath d='M0 0h24v24H0z' fill='none'/%3E%3Cpath d='M12 8c1.1 0 2-.9 2-2s-.9-2-2-2-2 .9-2 2 .9 2 2 2zm0 2c-1.1 0-2 .9-2 2s.9 2 2 2 2-.9 2-2-.9-2-2-2zm0 6c-1.1 0-2 .9-2 2s.9 2 2 2 2-.9 2-2-.9-2-2-2z'/%3E%3C/svg%3E"
	editIcon     = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' height='24px' viewBox='0 0 24 24' width='24px' fill='%23000000'%3E%3Cpath d='M0 0h24v24H0z' fill='none'/%3E%3Cpath d='M3 17.25V21h3.75L17.81 9.94l-3.75-3.75L3 17.25zM20.71 7.04c.39-.39.39-1.02 0-1.41l-2.34-2.34c-.39-.39-1.02-.39-1.41 0l-1.83 1.83 3.75 3.75 1.83-1.83z'/%3E%3C/svg%3E"
)

// MenuItem is one entry in a menu's content panel.
type MenuItem struct {
	Label  string
	Action action.Ref
	Node   *html.Node
}

// Menu is the trigger and content panel attached to one section.
type Menu struct {
	SectionID string
	Section   *html.Node
	Trigger   *html.Node
	Panel     *html.Node
	Items     []MenuItem

	active bool
}

// BuildMenu inserts a menu into section: the trigger becomes the first
// child and the panel the second, ahead of any existing content. Callers
// are expected to have filtered out absent and excluded ids.
func BuildMenu(section *html.Node, id string) *Menu {
	trigger := element("a", html.Attribute{Key: "class", Val: TriggerClass})
	trigger.AppendChild(element("img", html.Attribute{Key: "src", Val: moreVertIcon}))
	section.InsertBefore(trigger, section.FirstChild)

	panel := element("div", html.Attribute{Key: "class", Val: PanelClass})
	section.InsertBefore(panel, trigger.NextSibling)

	ref := action.EditSection(id)
	item := element("a",
		html.Attribute{Key: "href", Val: ref.String()},
		html.Attribute{Key: "class", Val: ItemClass},
	)
	item.AppendChild(element("img", html.Attribute{Key: "src", Val: editIcon}))
	label := element("span")
	label.AppendChild(text(EditLabel))
	item.AppendChild(label)
	panel.AppendChild(item)

	return &Menu{
		SectionID: id,
		Section:   section,
		Trigger:   trigger,
		Panel:     panel,
		Items:     []MenuItem{{Label: EditLabel, Action: ref, Node: item}},
	}
}

// Active reports whether the content panel is shown.
func (m *Menu) Active() bool { return m.active }
