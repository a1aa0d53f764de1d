// Package linkrouter interprets the hrefs users click on a catalog page.
// Ordinary web links are opened outside the page, fragment links scroll,
// and synthetic action URIs such as editSection:<id> are dispatched to
// registered handlers.
package linkrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shellmarks/catalog/internal/action"
)

// ErrUnsupported is returned for links the host has no handler for.
var ErrUnsupported = errors.New("unsupported link")

// Kind classifies a routed link.
type Kind string

const (
	KindIgnored  Kind = "ignored"
	KindExternal Kind = "external"
	KindAnchor   Kind = "anchor"
	KindAction   Kind = "action"
)

// Result describes what the router did with a link.
type Result struct {
	Kind    Kind        `json:"kind"`
	Verb    action.Verb `json:"verb,omitempty"`
	Target  string      `json:"target,omitempty"`
	Path    string      `json:"path,omitempty"`
	Created bool        `json:"created,omitempty"`
}

// ActionFunc handles one action verb. The router fills in Kind, Verb and
// Target of the returned Result.
type ActionFunc func(ctx context.Context, target string) (Result, error)

// ExternalFunc opens an http(s) URL outside the catalog page.
type ExternalFunc func(ctx context.Context, url string) error

// Router dispatches links to handlers.
type Router struct {
	actions  map[action.Verb]ActionFunc
	external ExternalFunc
}

// New returns a Router with no handlers.
func New() *Router {
	return &Router{actions: make(map[action.Verb]ActionFunc)}
}

// Handle registers fn for verb, replacing any previous handler.
func (r *Router) Handle(verb action.Verb, fn ActionFunc) {
	r.actions[verb] = fn
}

// External registers the handler for http(s) links.
func (r *Router) External(fn ExternalFunc) {
	r.external = fn
}

// runHosts are pseudo-hosts that authors use to write run links as
// ordinary URLs, e.g. https://run/hello.php?firstName=Ann.
var runHosts = []string{"http://run/", "https://run/"}

// Route handles a clicked href.
func (r *Router) Route(ctx context.Context, href string) (Result, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return Result{Kind: KindIgnored}, nil
	}

	for _, prefix := range runHosts {
		if strings.HasPrefix(href, prefix) {
			href = string(action.VerbRun) + ":" + href[len(prefix):]
			break
		}
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		if r.external == nil {
			return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, href)
		}
		if err := r.external(ctx, href); err != nil {
			return Result{}, fmt.Errorf("opening %s: %w", href, err)
		}
		return Result{Kind: KindExternal, Target: href}, nil
	}

	if strings.HasPrefix(href, "#") {
		return Result{Kind: KindAnchor, Target: href[1:]}, nil
	}

	ref, err := action.Parse(href)
	if err != nil {
		// Not ours; the page keeps its default behavior.
		return Result{Kind: KindIgnored, Target: href}, nil
	}
	fn, ok := r.actions[ref.Verb]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, ref)
	}
	res, err := fn(ctx, ref.Target)
	if err != nil {
		return Result{}, err
	}
	res.Kind = KindAction
	res.Verb = ref.Verb
	res.Target = ref.Target
	return res, nil
}
