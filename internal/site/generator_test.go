package site

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shellmarks/catalog/internal/catalog"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const deploySection = `# Deploy

Ships the current build.

## Usage

Run it from the project root.

## Options {#deploy-options}

None yet.
`

func newTestCatalog(t *testing.T) (*catalog.Catalog, string) {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "deploy.md"), deploySection)
	writeTestFile(t, filepath.Join(dir, "backup-db.md"), "Backs up the database.\n")
	return catalog.New([]string{dir}, nil, nil), dir
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Usage", "usage"},
		{"Getting Started", "getting-started"},
		{"  A -- B  ", "a-b"},
		{"Ünïcode Title", "ünïcode-title"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSectionIDs(t *testing.T) {
	ids := newSectionIDs()
	ids.Put([]byte("usage"))

	first := string(ids.Generate([]byte("Usage"), ast.KindHeading))
	second := string(ids.Generate([]byte("Usage"), ast.KindHeading))
	empty := string(ids.Generate([]byte("???"), ast.KindHeading))

	if first != "_usage" {
		t.Errorf("first id = %q, want _usage", first)
	}
	if second != "_usage-1" {
		t.Errorf("second id = %q, want _usage-1", second)
	}
	if empty != "_section" {
		t.Errorf("empty id = %q, want _section", empty)
	}
}

func parseBody(t *testing.T, s string) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		t.Fatal(err)
	}
	return nodes
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestSectionize(t *testing.T) {
	body := parseBody(t, `<p>intro</p><h2 id="a">A</h2><p>a</p><h3 id="b">B</h3><p>b</p><h2 id="c">C</h2>`)
	root := sectionize("deploy", "Deploy", body)

	got := render(t, root)
	want := `<div class="sect1"><h2 id="deploy">Deploy</h2><p>intro</p>` +
		`<div class="sect2"><h2 id="a">A</h2><p>a</p>` +
		`<div class="sect3"><h3 id="b">B</h3><p>b</p></div></div>` +
		`<div class="sect2"><h2 id="c">C</h2></div></div>`
	if got != want {
		t.Errorf("sectionize:\n got %s\nwant %s", got, want)
	}
}

func TestSectionizeH1AndDeepHeadings(t *testing.T) {
	body := parseBody(t, `<h1 id="x">X</h1><h6 id="y">Y</h6>`)
	root := sectionize("s", "S", body)
	got := render(t, root)
	if !strings.Contains(got, `<div class="sect2"><h1 id="x">X</h1><div class="sect6"><h6 id="y">Y</h6></div></div>`) {
		t.Errorf("unexpected nesting: %s", got)
	}
}

func TestDropTitle(t *testing.T) {
	body, title := dropTitle(parseBody(t, "<h1>Deploy <em>it</em></h1><p>x</p>"))
	if title != "Deploy it" {
		t.Errorf("title = %q", title)
	}
	if len(body) != 1 || body[0].DataAtom != atom.P {
		t.Errorf("expected only the paragraph to remain, got %d nodes", len(body))
	}

	body, title = dropTitle(parseBody(t, "<p>x</p><h1>Late</h1>"))
	if title != "" || len(body) != 2 {
		t.Errorf("a heading after content is not a title: title=%q nodes=%d", title, len(body))
	}
}

func TestRenderCatalogPage(t *testing.T) {
	cat, _ := newTestCatalog(t)
	gen := NewGenerator(cat, t.TempDir(), "Ops")

	var buf bytes.Buffer
	stats, err := gen.Render(&buf)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	out := buf.String()

	if stats.Sections != 2 {
		t.Errorf("sections = %d, want 2", stats.Sections)
	}
	// deploy, backup-db and the explicitly named options heading.
	if stats.Menus != 3 {
		t.Errorf("menus = %d, want 3", stats.Menus)
	}

	for _, want := range []string{
		`<h2 id="deploy">Deploy</h2>`,
		`<h2 id="backup-db">backup Db</h2>`,
		`href="editSection:deploy"`,
		`href="editSection:backup-db"`,
		`href="editSection:deploy-options"`,
		`id="_usage"`,
		`<span>Edit Section</span>`,
		`<a href="#deploy">Deploy</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page should contain %q", want)
		}
	}
	if strings.Contains(out, "editSection:_") {
		t.Error("generated heading ids must not receive a menu")
	}
	if strings.Contains(out, "data-live-reload") {
		t.Error("live reload should be off by default")
	}
}

func TestBuildProducesFreshTree(t *testing.T) {
	cat, _ := newTestCatalog(t)
	gen := NewGenerator(cat, t.TempDir(), "Ops")

	for i := 0; i < 2; i++ {
		page, err := gen.Build()
		if err != nil {
			t.Fatalf("Build %d: %v", i, err)
		}
		if len(page.Menus) != 3 {
			t.Errorf("build %d: menus = %d, want 3", i, len(page.Menus))
		}
	}
}

func TestBuildWarnsOnShadowedSection(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "deploy.md"), "# Deploy\n")
	writeTestFile(t, filepath.Join(dir, "release.md"), "# Release\n\n## Rollout {#deploy}\n\nSee deploy.\n")

	var logs bytes.Buffer
	gen := NewGenerator(catalog.New([]string{dir}, nil, nil), t.TempDir(), "Ops")
	gen.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	page, err := gen.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(page.Menus) != 3 {
		t.Errorf("menus = %d, want 3", len(page.Menus))
	}
	out := logs.String()
	if !strings.Contains(out, "heading id repeats a section name") ||
		!strings.Contains(out, "id=deploy") || !strings.Contains(out, "file=release.md") {
		t.Errorf("expected a shadowing warning, got:\n%s", out)
	}
}

func TestBuildNoShadowWarning(t *testing.T) {
	cat, _ := newTestCatalog(t)
	var logs bytes.Buffer
	gen := NewGenerator(cat, t.TempDir(), "Ops")
	gen.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	if _, err := gen.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(logs.String(), "repeats a section name") {
		t.Errorf("unexpected warning:\n%s", logs.String())
	}
}

func TestBuildMenusToggle(t *testing.T) {
	cat, _ := newTestCatalog(t)
	page, err := NewGenerator(cat, t.TempDir(), "Ops").Build()
	if err != nil {
		t.Fatal(err)
	}
	c := page.Menus[0]
	if c.Active() {
		t.Fatal("menus start inactive")
	}
	if !c.Click() || !strings.Contains(render(t, c.Menu().Panel), `class="section-menu-content active"`) {
		t.Error("click should activate the panel")
	}
}

func TestGenerate(t *testing.T) {
	cat, _ := newTestCatalog(t)
	outputDir := t.TempDir()

	gen := NewGenerator(cat, outputDir, "Ops")
	stats, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if stats.Sections != 2 {
		t.Errorf("sections = %d, want 2", stats.Sections)
	}

	for _, f := range []string{"index.html", "style.css", "script.js", "search-index.json"} {
		if _, err := os.Stat(filepath.Join(outputDir, f)); err != nil {
			t.Errorf("expected output file %s: %v", f, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "search-index.json"))
	if err != nil {
		t.Fatal(err)
	}
	var entries []SearchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("search index is not valid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("search entries = %d, want 2", len(entries))
	}
	// Sections are listed in file name order.
	if entries[0].Path != "#backup-db" || entries[1].Title != "Deploy" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestGenerateNoSections(t *testing.T) {
	cat := catalog.New([]string{t.TempDir()}, nil, nil)
	stats, err := NewGenerator(cat, t.TempDir(), "Empty").Generate()
	if err != nil {
		t.Fatalf("an empty catalog should still render: %v", err)
	}
	if stats.Sections != 0 || stats.Menus != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestBuildTOC(t *testing.T) {
	root := sectionize("deploy", "Deploy", parseBody(t, `<h2 id="_usage">Usage</h2><h3 id="_deep">Deep</h3><h2>No id</h2><h3 id="_lost">Lost</h3>`))
	toc := BuildTOC([]*html.Node{root})

	if len(toc.Children) != 1 {
		t.Fatalf("top entries = %d, want 1", len(toc.Children))
	}
	deploy := toc.Children[0]
	if deploy.ID != "deploy" || deploy.Title != "Deploy" || deploy.Level != 1 {
		t.Errorf("unexpected entry %+v", deploy)
	}
	// The heading without an id drops out along with its subsections.
	if len(deploy.Children) != 1 || deploy.Children[0].ID != "_usage" {
		t.Fatalf("unexpected children %+v", deploy.Children)
	}

	shallow := toc.ToHTML(1)
	if strings.Contains(shallow, "_usage") {
		t.Error("depth 1 should only list file sections")
	}
	full := toc.ToHTML(0)
	if !strings.Contains(full, `<a href="#_deep">Deep</a>`) {
		t.Errorf("full TOC missing nested entry:\n%s", full)
	}
}

func TestParseSectionForSearch(t *testing.T) {
	entry, err := parseSectionForSearch("deploy", []byte(deploySection))
	if err != nil {
		t.Fatal(err)
	}
	if entry.Path != "#deploy" {
		t.Errorf("path = %q", entry.Path)
	}
	if entry.Title != "Deploy" {
		t.Errorf("title = %q", entry.Title)
	}
	if entry.Summary != "Ships the current build." {
		t.Errorf("summary = %q", entry.Summary)
	}
	if !strings.Contains(entry.Content, "Run it from the project root.") {
		t.Errorf("content = %q", entry.Content)
	}

	untitled, err := parseSectionForSearch("notes", []byte("just text\n"))
	if err != nil {
		t.Fatal(err)
	}
	if untitled.Title != "notes" {
		t.Errorf("untitled title = %q, want file name", untitled.Title)
	}
}
