// Package editor opens files and URLs with desktop applications.
package editor

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Opener opens a file or URL for the user.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// CommandOpener starts an external program for each target. When Command
// is empty the platform's default handler is used. Command may carry
// arguments ("code --wait"); the target is appended as the last argument.
type CommandOpener struct {
	Command string
	// Wait blocks until the program exits. Terminal editors need it; GUI
	// launchers return immediately either way.
	Wait bool

	goos string
}

// Open implements Opener.
func (o *CommandOpener) Open(ctx context.Context, target string) error {
	name, args := o.commandLine(target)
	if o.Wait {
		if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
			return fmt.Errorf("running %s: %w", name, err)
		}
		return nil
	}

	// A launched editor outlives the request that asked for it.
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// commandLine resolves the program and arguments for target.
func (o *CommandOpener) commandLine(target string) (string, []string) {
	if fields := strings.Fields(o.Command); len(fields) > 0 {
		return fields[0], append(fields[1:], target)
	}
	goos := o.goos
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", target}
	case "darwin":
		return "open", []string{target}
	default:
		return "xdg-open", []string{target}
	}
}
