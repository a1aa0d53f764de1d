// Package action defines the synthetic link URIs that catalog pages carry
// for host-side interception, such as "editSection:intro".
package action

import (
	"errors"
	"fmt"
	"strings"
)

// Verb names a host action.
type Verb string

const (
	VerbEditSection Verb = "editSection"
	VerbRun         Verb = "run"
	VerbEdit        Verb = "edit"
	VerbDelete      Verb = "delete"
	VerbClone       Verb = "clone"
)

// knownVerbs is matched case-insensitively when parsing.
var knownVerbs = []Verb{VerbEditSection, VerbRun, VerbEdit, VerbDelete, VerbClone}

// ErrMalformed is returned by Parse for hrefs that are not action URIs.
var ErrMalformed = errors.New("malformed action reference")

// Ref is a typed action reference. Its wire form is "<verb>:<target>".
type Ref struct {
	Verb   Verb
	Target string
}

// EditSection returns the reference a section menu's edit item points at.
func EditSection(sectionID string) Ref {
	return Ref{Verb: VerbEditSection, Target: sectionID}
}

// String serializes the reference, e.g. "editSection:intro".
func (r Ref) String() string {
	return string(r.Verb) + ":" + r.Target
}

// Parse decodes an href into a Ref. The verb is matched without regard to
// case and normalized to its canonical spelling; the target is everything
// after the first colon and is kept verbatim.
func Parse(href string) (Ref, error) {
	idx := strings.Index(href, ":")
	if idx <= 0 {
		return Ref{}, fmt.Errorf("%w: %q", ErrMalformed, href)
	}
	scheme := href[:idx]
	for _, v := range knownVerbs {
		if strings.EqualFold(scheme, string(v)) {
			return Ref{Verb: v, Target: href[idx+1:]}, nil
		}
	}
	return Ref{}, fmt.Errorf("%w: unknown verb %q", ErrMalformed, scheme)
}
