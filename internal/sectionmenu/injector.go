package sectionmenu

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/shellmarks/catalog/internal/logging"
)

// Injector runs the scan-and-decorate pass over a document.
type Injector struct {
	scanner Scanner
	levels  LevelRange
	logger  *slog.Logger
}

// Option configures an Injector.
type Option func(*Injector)

// WithScanner replaces the default ClassScanner.
func WithScanner(s Scanner) Option {
	return func(i *Injector) { i.scanner = s }
}

// WithLevels narrows or widens the scanned nesting levels.
func WithLevels(r LevelRange) Option {
	return func(i *Injector) { i.levels = r }
}

// WithLogger sets the logger used for per-section debug output.
func WithLogger(l *slog.Logger) Option {
	return func(i *Injector) { i.logger = l }
}

// New returns an Injector scanning DefaultLevels with a ClassScanner.
func New(opts ...Option) *Injector {
	i := &Injector{
		scanner: ClassScanner{},
		levels:  DefaultLevels,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inject decorates every eligible section of doc in place and returns one
// controller per menu created, in scan order.
//
// Running Inject twice over the same tree adds a second menu to every
// eligible section; callers that re-render must start from a fresh tree.
func (i *Injector) Inject(doc *html.Node) []*Controller {
	var controllers []*Controller
	for _, sec := range i.scanner.FindSections(doc, i.levels) {
		id, ok := SectionID(sec.Node)
		if !ok {
			i.logger.Debug("section has no heading id, skipping", "level", sec.Level)
			continue
		}
		if Excluded(id) {
			i.logger.Debug("generated section id, skipping", "id", id, "level", sec.Level)
			continue
		}
		menu := BuildMenu(sec.Node, id)
		controllers = append(controllers, NewController(menu))
	}
	i.logger.Debug("section menus injected", "count", len(controllers))
	return controllers
}

// InjectHTML parses an HTML document from r, decorates it and renders the
// result to w. It returns the number of menus created.
func (i *Injector) InjectHTML(r io.Reader, w io.Writer) (int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("parsing html: %w", err)
	}
	controllers := i.Inject(doc)
	if err := html.Render(w, doc); err != nil {
		return 0, fmt.Errorf("rendering html: %w", err)
	}
	return len(controllers), nil
}
