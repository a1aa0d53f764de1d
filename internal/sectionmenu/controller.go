package sectionmenu

// Controller owns the open/closed state of a single menu. Controllers do
// not know about each other: opening one menu leaves every other menu as
// it was.
type Controller struct {
	menu *Menu
}

// NewController attaches a controller to m.
func NewController(m *Menu) *Controller {
	return &Controller{menu: m}
}

// Menu returns the controlled menu.
func (c *Controller) Menu() *Menu { return c.menu }

// Active reports whether the menu's panel is shown.
func (c *Controller) Active() bool { return c.menu.active }

// Click handles a click on the trigger: an inactive panel is activated, an
// active one deactivated. The panel's "active" class follows the state.
// It returns the new state.
func (c *Controller) Click() bool {
	m := c.menu
	m.active = !m.active
	if m.active {
		addClass(m.Panel, ActiveClass)
	} else {
		removeClass(m.Panel, ActiveClass)
	}
	return m.active
}
