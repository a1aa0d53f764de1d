package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shellmarks/catalog/internal/catalog"
	"github.com/shellmarks/catalog/internal/logging"
	"github.com/shellmarks/catalog/internal/progress"
	"github.com/shellmarks/catalog/internal/sectionmenu"
)

// tocDepth limits the sidebar to file sections and their first level of headings.
const tocDepth = 2

// Generator renders the section files of a catalog into a single HTML page
// carrying section menus.
type Generator struct {
	Catalog     *catalog.Catalog
	OutputDir   string
	ProjectName string
	Injector    *sectionmenu.Injector
	Reporter    progress.Reporter
	Logger      *slog.Logger
	// LiveReload makes the page connect to /ws/reload. Only meaningful when
	// the page is served by the catalog server.
	LiveReload bool

	md   goldmark.Markdown
	tmpl *template.Template
}

// NewGenerator creates a Generator for the given catalog.
func NewGenerator(cat *catalog.Catalog, outputDir, projectName string) *Generator {
	return &Generator{
		Catalog:     cat,
		OutputDir:   outputDir,
		ProjectName: projectName,
		Injector:    sectionmenu.New(),
		md:          newMarkdown(),
		tmpl:        template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// newMarkdown initializes goldmark with the extensions section files may use.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// Stats summarizes one rendering of the catalog page.
type Stats struct {
	Sections int `json:"sections"`
	Menus    int `json:"menus"`
}

// Page is the catalog page before it is wrapped in the page template.
type Page struct {
	Sections []*html.Node
	TOC      *TOC
	Menus    []*sectionmenu.Controller
}

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	TOCHTML     template.HTML
	LiveReload  bool
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return logging.NewNop()
	}
	return g.Logger
}

// Build reads every section file, renders it and injects section menus.
// Each call produces a fresh tree.
func (g *Generator) Build() (*Page, error) {
	sections, err := g.Catalog.Sections()
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}

	if g.Reporter != nil {
		g.Reporter.Start(len(sections))
		defer g.Reporter.Finish()
	}

	// Section names are taken before any generated heading id.
	ids := newSectionIDs()
	for _, s := range sections {
		ids.Put([]byte(s.Name))
	}

	page := &Page{}
	for i, s := range sections {
		if g.Reporter != nil {
			g.Reporter.Update(i+1, s.File)
		}

		src, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.Path, err)
		}

		root, err := g.renderSection(s, src, parser.NewContext(parser.WithIDs(ids)))
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", s.File, err)
		}
		page.Sections = append(page.Sections, root)
	}

	g.warnShadowedSections(sections, page.Sections)
	page.TOC = BuildTOC(page.Sections)

	injector := g.Injector
	if injector == nil {
		injector = sectionmenu.New()
	}
	for _, root := range page.Sections {
		page.Menus = append(page.Menus, injector.Inject(root)...)
	}

	g.logger().Debug("catalog page built", "sections", len(page.Sections), "menus", len(page.Menus))
	return page, nil
}

// warnShadowedSections logs explicit heading ids that repeat a section name.
// Both headings then carry the same id and their menus edit the same file.
func (g *Generator) warnShadowedSections(sections []catalog.Section, roots []*html.Node) {
	names := make(map[string]bool, len(sections))
	for _, s := range sections {
		names[s.Name] = true
	}
	for i, root := range roots {
		for _, id := range headingIDs(root) {
			if names[id] {
				g.logger().Warn("heading id repeats a section name",
					"id", id, "file", sections[i].File)
			}
		}
	}
}

// headingIDs returns the ids of headings below the section root's own heading.
func headingIDs(root *html.Node) []string {
	var ids []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if headingLevel(c) > 0 && c.Parent != root {
				for _, a := range c.Attr {
					if a.Key == "id" {
						ids = append(ids, a.Val)
					}
				}
			}
			walk(c)
		}
	}
	walk(root)
	return ids
}

// renderSection converts one section file to a div.sect1 subtree.
func (g *Generator) renderSection(s catalog.Section, src []byte, pctx parser.Context) (*html.Node, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf, parser.WithContext(pctx)); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	body, err := html.ParseFragment(&buf, &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		return nil, fmt.Errorf("parsing rendered markdown: %w", err)
	}

	body, title := dropTitle(body)
	if title == "" {
		title = catalog.Label(s.Name)
	}
	return sectionize(s.Name, title, body), nil
}

// Render builds the catalog page and writes the complete HTML document to w.
func (g *Generator) Render(w io.Writer) (Stats, error) {
	page, err := g.Build()
	if err != nil {
		return Stats{}, err
	}

	var content bytes.Buffer
	for _, root := range page.Sections {
		if err := html.Render(&content, root); err != nil {
			return Stats{}, fmt.Errorf("rendering html: %w", err)
		}
		content.WriteByte('\n')
	}

	data := pageData{
		Title:       g.ProjectName,
		ProjectName: g.ProjectName,
		Content:     template.HTML(content.String()),
		TOCHTML:     template.HTML(page.TOC.ToHTML(tocDepth)),
		LiveReload:  g.LiveReload,
	}
	if err := g.tmpl.Execute(w, data); err != nil {
		return Stats{}, fmt.Errorf("executing page template: %w", err)
	}

	return Stats{Sections: len(page.Sections), Menus: len(page.Menus)}, nil
}

// Generate writes index.html, its assets and the search index to OutputDir.
func (g *Generator) Generate() (Stats, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return Stats{}, err
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return Stats{}, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return Stats{}, err
	}

	var buf bytes.Buffer
	stats, err := g.Render(&buf)
	if err != nil {
		return Stats{}, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "index.html"), buf.Bytes(), 0o644); err != nil {
		return Stats{}, err
	}

	entries, err := g.SearchIndex()
	if err != nil {
		return Stats{}, fmt.Errorf("building search index: %w", err)
	}
	if err := WriteSearchIndex(entries, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return Stats{}, fmt.Errorf("writing search index: %w", err)
	}

	g.logger().Info("site generated", "dir", g.OutputDir, "sections", stats.Sections, "menus", stats.Menus)
	return stats, nil
}

// SearchIndex returns one search entry per section file.
func (g *Generator) SearchIndex() ([]SearchEntry, error) {
	sections, err := g.Catalog.Sections()
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	entries := make([]SearchEntry, 0, len(sections))
	for _, s := range sections {
		src, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.Path, err)
		}
		entry, err := parseSectionForSearch(s.Name, src)
		if err != nil {
			return nil, fmt.Errorf("indexing %s: %w", s.File, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
