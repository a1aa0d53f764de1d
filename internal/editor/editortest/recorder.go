// Package editortest provides an editor.Opener for tests.
package editortest

import (
	"context"
	"sync"
)

// Recorder is an Opener that only remembers what it was asked to open.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	opened []string
}

// Open implements editor.Opener.
func (r *Recorder) Open(_ context.Context, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, target)
	return nil
}

// Opened returns a copy of the targets opened so far, in order.
func (r *Recorder) Opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.opened...)
}
