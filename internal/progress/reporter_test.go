package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}

	r.Start(2)
	r.Update(1, "backup-db.md")
	r.Update(2, "deploy.md")
	r.Finish()

	want := "Rendering 2 section files\n" +
		"[1/2] backup-db.md\n" +
		"[2/2] deploy.md\n" +
		"Catalog page rendered\n"
	if got := buf.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestNewReporter(t *testing.T) {
	if _, ok := NewReporter(true).(NopReporter); !ok {
		t.Error("quiet should return a NopReporter")
	}

	t.Setenv("CI", "true")
	if _, ok := NewReporter(false).(*CIReporter); !ok {
		t.Error("CI should return a CIReporter")
	}

	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter(false).(*TerminalReporter); !ok {
		t.Error("interactive runs should return a TerminalReporter")
	}
}
