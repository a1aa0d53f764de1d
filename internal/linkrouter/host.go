package linkrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shellmarks/catalog/internal/action"
	"github.com/shellmarks/catalog/internal/catalog"
	"github.com/shellmarks/catalog/internal/editor"
	"github.com/shellmarks/catalog/internal/history"
	"github.com/shellmarks/catalog/internal/logging"
)

// Host implements the edit actions of a catalog host: it resolves section
// and script names against the catalog, opens the file and records the
// request.
type Host struct {
	Catalog *catalog.Catalog
	// Opener opens files. Nil leaves opening to the caller.
	Opener editor.Opener
	// History records edit requests. Nil disables recording.
	History *history.Store
	Source  history.Source
	Logger  *slog.Logger
}

func (h *Host) logger() *slog.Logger {
	if h.Logger == nil {
		return logging.NewNop()
	}
	return h.Logger
}

// Register installs the host's handlers on r.
func (h *Host) Register(r *Router) {
	r.Handle(action.VerbEditSection, h.EditSection)
	r.Handle(action.VerbEdit, h.EditScript)
	if h.Opener != nil {
		r.External(h.Opener.Open)
	}
}

// EditSection opens the section file for name, creating it from the
// section template first when it does not exist.
func (h *Host) EditSection(ctx context.Context, name string) (Result, error) {
	sec, created, err := h.Catalog.GetOrCreate(name)
	if err != nil {
		return Result{}, fmt.Errorf("resolving section %q: %w", name, err)
	}
	if created {
		h.logger().Info("section file created", "section", name, "path", sec.Path)
	}

	if h.History != nil {
		if _, err := h.History.Log(ctx, history.Entry{
			Section: name,
			Path:    sec.Path,
			Created: created,
			Source:  h.Source,
		}); err != nil {
			// The edit itself can still go ahead.
			h.logger().Warn("recording edit request", "section", name, "error", err)
		}
	}

	if h.Opener != nil {
		if err := h.Opener.Open(ctx, sec.Path); err != nil {
			return Result{}, fmt.Errorf("opening section file %s: %w", sec.Path, err)
		}
	}
	return Result{Path: sec.Path, Created: created}, nil
}

// EditScript opens the script file called name.
func (h *Host) EditScript(ctx context.Context, name string) (Result, error) {
	path, err := h.Catalog.Script(name)
	if err != nil {
		return Result{}, err
	}
	if h.Opener != nil {
		if err := h.Opener.Open(ctx, path); err != nil {
			return Result{}, fmt.Errorf("opening script %s: %w", path, err)
		}
	}
	return Result{Path: path}, nil
}
