package sectionmenu

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("html.Render: %v", err)
	}
	return buf.String()
}

// findByClass returns every element carrying class, in document order.
func findByClass(doc *html.Node, class string) []*html.Node {
	var out []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			out = append(out, n)
		}
	})
	return out
}

func findByID(doc *html.Node, id string) *html.Node {
	var found *html.Node
	walk(doc, func(n *html.Node) {
		if found != nil || n.Type != html.ElementNode {
			return
		}
		if v, ok := attr(n, "id"); ok && v == id {
			found = n
		}
	})
	return found
}

// checkDecorated asserts the section's first two children are a trigger and
// a panel whose only item links to editSection:id.
func checkDecorated(t *testing.T, section *html.Node, id string) {
	t.Helper()
	trigger := section.FirstChild
	if trigger == nil || !hasClass(trigger, TriggerClass) {
		t.Fatalf("section %q: first child is not a trigger", id)
	}
	panel := trigger.NextSibling
	if panel == nil || !hasClass(panel, PanelClass) {
		t.Fatalf("section %q: second child is not a panel", id)
	}
	var items []*html.Node
	for c := panel.FirstChild; c != nil; c = c.NextSibling {
		items = append(items, c)
	}
	if len(items) != 1 {
		t.Fatalf("section %q: panel has %d items, want 1", id, len(items))
	}
	href, _ := attr(items[0], "href")
	if want := "editSection:" + id; href != want {
		t.Errorf("section %q: item href = %q, want %q", id, href, want)
	}
	if !hasClass(items[0], ItemClass) {
		t.Errorf("section %q: item lacks %s class", id, ItemClass)
	}
}

func TestInjectNoSections(t *testing.T) {
	doc := parse(t, `<html><body><h2 id="intro">Intro</h2><p>text</p></body></html>`)
	before := render(t, doc)

	controllers := New().Inject(doc)

	if len(controllers) != 0 {
		t.Errorf("controllers = %d, want 0", len(controllers))
	}
	if after := render(t, doc); after != before {
		t.Errorf("document mutated:\nbefore %s\nafter  %s", before, after)
	}
}

func TestInjectAllLevels(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for level := 0; level <= 7; level++ {
		fmt.Fprintf(&b, `<div class="sect%d"><h3 id="s%d">Section %d</h3><p>body %d</p></div>`, level, level, level, level)
	}
	b.WriteString(`<div class="sect8"><h3 id="s8">Too deep</h3></div>`)
	b.WriteString("</body></html>")
	doc := parse(t, b.String())

	controllers := New().Inject(doc)

	if len(controllers) != 8 {
		t.Fatalf("controllers = %d, want 8", len(controllers))
	}
	for level := 0; level <= 7; level++ {
		id := fmt.Sprintf("s%d", level)
		checkDecorated(t, findByID(doc, id).Parent, id)
	}
	deep := findByID(doc, "s8").Parent
	if deep.FirstChild.Data != "h3" {
		t.Errorf("sect8 should not be decorated, first child = %q", deep.FirstChild.Data)
	}
}

func TestInjectPreservesContentOrder(t *testing.T) {
	doc := parse(t, `<html><body><div class="sect1"><h2 id="intro">Intro</h2><p id="p1">one</p><p id="p2">two</p></div></body></html>`)

	New().Inject(doc)

	section := findByID(doc, "intro").Parent
	var tags []string
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		tags = append(tags, c.Data)
	}
	want := []string{"a", "div", "h2", "p", "p"}
	if strings.Join(tags, ",") != strings.Join(want, ",") {
		t.Errorf("children = %v, want %v", tags, want)
	}
	if id, _ := attr(section.LastChild, "id"); id != "p2" {
		t.Errorf("last child id = %q, want p2", id)
	}
}

func TestInjectSkipsExcluded(t *testing.T) {
	doc := parse(t, `<html><body><div class="sect2"><h3 id="_usage">Usage</h3><p>x</p></div></body></html>`)

	controllers := New().Inject(doc)

	if len(controllers) != 0 {
		t.Errorf("controllers = %d, want 0", len(controllers))
	}
	if n := len(findByClass(doc, TriggerClass)); n != 0 {
		t.Errorf("triggers = %d, want 0", n)
	}
	if n := len(findByClass(doc, PanelClass)); n != 0 {
		t.Errorf("panels = %d, want 0", n)
	}
}

func TestInjectSkipsHeadingless(t *testing.T) {
	doc := parse(t, `<html><body>
<div class="sect1"><p>no heading</p></div>
<div class="sect1"><h2>no id</h2></div>
<div class="sect1"><div><h2 id="nested">nested heading</h2></div></div>
</body></html>`)

	controllers := New().Inject(doc)

	if len(controllers) != 0 {
		t.Errorf("controllers = %d, want 0", len(controllers))
	}
	if n := len(findByClass(doc, TriggerClass)); n != 0 {
		t.Errorf("triggers = %d, want 0", n)
	}
}

func TestSectionID(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		wantID string
		wantOK bool
	}{
		{"first heading", `<div class="sect1"><h2 id="a">A</h2><h3 id="b">B</h3></div>`, "a", true},
		{"any rank", `<div class="sect1"><h6 id="deep">D</h6></div>`, "deep", true},
		{"upper case tag", `<div class="sect1"><H2 id="up">U</H2></div>`, "up", true},
		{"heading without id passed over", `<div class="sect1"><h2>A</h2><h3 id="b">B</h3></div>`, "b", true},
		{"empty id passed over", `<div class="sect1"><h2 id="">A</h2><h3 id="b">B</h3></div>`, "b", true},
		{"no heading", `<div class="sect1"><p id="p">P</p></div>`, "", false},
		{"header tag is not a heading", `<div class="sect1"><header id="hdr">H</header></div>`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, "<html><body>"+tt.src+"</body></html>")
			section := findByClass(doc, "sect1")[0]
			id, ok := SectionID(section)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("SectionID = (%q, %v), want (%q, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}

	if _, ok := SectionID(nil); ok {
		t.Error("SectionID(nil) should report absent")
	}
}

func TestExcluded(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"_generated", true},
		{"_", true},
		{"intro", false},
		{"intro_", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Excluded(tt.id); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestInjectIsNotIdempotent(t *testing.T) {
	doc := parse(t, `<html><body><div class="sect1"><h2 id="intro">Intro</h2></div></body></html>`)
	injector := New()

	injector.Inject(doc)
	second := injector.Inject(doc)

	if len(second) != 1 {
		t.Fatalf("second pass controllers = %d, want 1", len(second))
	}
	if n := len(findByClass(doc, TriggerClass)); n != 2 {
		t.Errorf("triggers after two passes = %d, want 2", n)
	}
	if n := len(findByClass(doc, PanelClass)); n != 2 {
		t.Errorf("panels after two passes = %d, want 2", n)
	}
	// The newest menu sits in front of the previous one.
	section := findByID(doc, "intro").Parent
	if section.FirstChild != second[0].Menu().Trigger {
		t.Error("second pass trigger should be the first child")
	}
}

func TestControllerToggle(t *testing.T) {
	doc := parse(t, `<html><body>
<div class="sect1"><h2 id="one">One</h2></div>
<div class="sect1"><h2 id="two">Two</h2></div>
</body></html>`)
	controllers := New().Inject(doc)
	if len(controllers) != 2 {
		t.Fatalf("controllers = %d, want 2", len(controllers))
	}
	first, second := controllers[0], controllers[1]

	if first.Active() {
		t.Fatal("menu should start inactive")
	}
	if hasClass(first.Menu().Panel, ActiveClass) {
		t.Fatal("panel should start without active class")
	}

	if !first.Click() || !first.Active() {
		t.Error("first click should activate")
	}
	if !hasClass(first.Menu().Panel, ActiveClass) {
		t.Error("active panel should carry the active class")
	}

	second.Click()
	if !first.Active() {
		t.Error("clicking another menu must not change the first menu")
	}
	if !second.Active() {
		t.Error("second menu should be active after its click")
	}

	if first.Click() || first.Active() {
		t.Error("second click should deactivate")
	}
	if hasClass(first.Menu().Panel, ActiveClass) {
		t.Error("inactive panel should lose the active class")
	}
	if got, _ := attr(first.Menu().Panel, "class"); got != PanelClass {
		t.Errorf("panel class = %q, want %q", got, PanelClass)
	}
	if !second.Active() {
		t.Error("deactivating the first menu must not change the second")
	}
}

func TestMenuItems(t *testing.T) {
	doc := parse(t, `<html><body><div class="sect1"><h2 id="intro">Intro</h2></div></body></html>`)
	controllers := New().Inject(doc)
	menu := controllers[0].Menu()

	if menu.SectionID != "intro" {
		t.Errorf("SectionID = %q, want intro", menu.SectionID)
	}
	if len(menu.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(menu.Items))
	}
	item := menu.Items[0]
	if item.Label != EditLabel {
		t.Errorf("label = %q, want %q", item.Label, EditLabel)
	}
	if item.Action.String() != "editSection:intro" {
		t.Errorf("action = %q, want editSection:intro", item.Action.String())
	}
	if item.Node.Parent != menu.Panel {
		t.Error("item node should live inside the panel")
	}
}

func TestInjectWithLevels(t *testing.T) {
	doc := parse(t, `<html><body>
<div class="sect0"><h1 id="top">Top</h1></div>
<div class="sect1"><h2 id="mid">Mid</h2></div>
</body></html>`)

	controllers := New(WithLevels(LevelRange{Min: 1, Max: 1})).Inject(doc)

	if len(controllers) != 1 || controllers[0].Menu().SectionID != "mid" {
		t.Fatalf("expected only the sect1 section decorated, got %d menus", len(controllers))
	}
}

type fixedScanner struct {
	sections []Section
	levels   LevelRange
}

func (s *fixedScanner) FindSections(_ *html.Node, levels LevelRange) []Section {
	s.levels = levels
	return s.sections
}

func TestInjectWithScanner(t *testing.T) {
	doc := parse(t, `<html><body><section><h2 id="custom">Custom</h2></section></body></html>`)
	section := findByID(doc, "custom").Parent
	scanner := &fixedScanner{sections: []Section{{Node: section, Level: 1}}}

	controllers := New(WithScanner(scanner)).Inject(doc)

	if len(controllers) != 1 {
		t.Fatalf("controllers = %d, want 1", len(controllers))
	}
	if scanner.levels != DefaultLevels {
		t.Errorf("scanner levels = %+v, want %+v", scanner.levels, DefaultLevels)
	}
	checkDecorated(t, section, "custom")
}

func TestClassScannerOrder(t *testing.T) {
	doc := parse(t, `<html><body>
<div class="sect1"><h2 id="a">A</h2><div class="sect2"><h3 id="a1">A1</h3></div></div>
<div class="sect1 extra"><h2 id="b">B</h2></div>
<div class="sect10"><h2 id="not">Not</h2></div>
</body></html>`)

	sections := ClassScanner{}.FindSections(doc, DefaultLevels)

	var ids []string
	for _, s := range sections {
		id, _ := SectionID(s.Node)
		ids = append(ids, fmt.Sprintf("%s@%d", id, s.Level))
	}
	want := "a@1,b@1,a1@2"
	if got := strings.Join(ids, ","); got != want {
		t.Errorf("scan order = %s, want %s", got, want)
	}

	if got := (ClassScanner{}).FindSections(nil, DefaultLevels); got != nil {
		t.Errorf("nil document should yield no sections, got %d", len(got))
	}
}

func TestInjectHTMLEndToEnd(t *testing.T) {
	src := `<html><body>
<div class="sect1"><h2 id="intro">Introduction</h2><p>Hello</p></div>
<div class="sect1"><h3 id="_generated">Generated</h3><p>Auto</p></div>
</body></html>`

	var out bytes.Buffer
	n, err := New().InjectHTML(strings.NewReader(src), &out)
	if err != nil {
		t.Fatalf("InjectHTML: %v", err)
	}
	if n != 1 {
		t.Errorf("menus = %d, want 1", n)
	}

	doc := parse(t, out.String())
	checkDecorated(t, findByID(doc, "intro").Parent, "intro")

	generated := findByID(doc, "_generated").Parent
	if generated.FirstChild.Data != "h3" {
		t.Errorf("_generated section should be untouched, first child = %q", generated.FirstChild.Data)
	}
	if strings.Contains(out.String(), "editSection:_generated") {
		t.Error("output should not link to the generated section")
	}
	if c := strings.Count(out.String(), `href="editSection:intro"`); c != 1 {
		t.Errorf("editSection:intro links = %d, want 1", c)
	}
}
