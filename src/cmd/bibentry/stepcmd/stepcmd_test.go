package stepcmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"bibentry/src/internal/config"
	"bibentry/src/internal/store"
)

func run(t *testing.T, ctx context.Context, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestStepProtocol_FullSession(t *testing.T) {
	ctx := context.Background()
	state := filepath.Join(t.TempDir(), "state.yaml")

	out, err := run(t, ctx, Start(), "--state", state)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if want := "<author> <title> <pubdate> <ref>\nnext: author (Author (Last, First))\n"; out != want {
		t.Fatalf("start output=%q want %q", out, want)
	}

	steps := []struct{ value, wantNext string }{
		{"Bryan Kyle", "next: title (Title)"},
		{`"Test"`, "next: pubdate (Publication Date (DD MMM YYYY))"},
		{"01 Jan 2020", "next: ref (Reference)"},
	}
	for _, s := range steps {
		out, err := run(t, ctx, Submit(), "--state", state, s.value)
		if err != nil {
			t.Fatalf("submit %q: %v", s.value, err)
		}
		if !strings.Contains(out, s.wantNext) {
			t.Fatalf("submit %q: missing %q in %q", s.value, s.wantNext, out)
		}
	}

	out, err = run(t, ctx, Show(), "--state", state)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(out, "Kyle, Bryan. \"Test\" 01 Jan 2020. <ref>\n") {
		t.Fatalf("show output=%q", out)
	}

	out, err = run(t, ctx, Submit(), "--state", state, "http://example.com")
	if err != nil {
		t.Fatalf("final submit: %v", err)
	}
	if want := "Kyle, Bryan. \"Test\" 01 Jan 2020. <<http://example.com>>\n"; out != want {
		t.Fatalf("final output=%q want %q", out, want)
	}
	if _, err := os.Stat(state); !os.IsNotExist(err) {
		t.Fatalf("state file should be removed once resolved, stat err=%v", err)
	}
	if _, err := run(t, ctx, Show(), "--state", state); !errors.Is(err, store.ErrNoState) {
		t.Fatalf("show after completion: want ErrNoState, got %v", err)
	}
}

func TestStepProtocol_SelectionAndExplicitField(t *testing.T) {
	ctx := context.Background()
	state := filepath.Join(t.TempDir(), "state.yaml")

	out, err := run(t, ctx, Start(), "--state", state, "--selection", "http://example.com")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(out, "<<http://example.com>>") || !strings.Contains(out, "next: author") {
		t.Fatalf("start output=%q", out)
	}
	out, err = run(t, ctx, Submit(), "--state", state, "--field", "pubdate", "")
	if err != nil {
		t.Fatalf("submit --field: %v", err)
	}
	if !strings.Contains(out, "<author> <title> <<http://example.com>>") || !strings.Contains(out, "next: author") {
		t.Fatalf("submit --field output=%q", out)
	}
	if _, err := run(t, ctx, Submit(), "--state", state, "--field", "ref", "again"); err == nil {
		t.Fatalf("expected error when submitting ref twice")
	}
}

func TestStepProtocol_JSONReportUsesConfigStateFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.Output = config.OutputJSON
	cfg.StateFile = filepath.Join(t.TempDir(), "cfg-state.yaml")
	ctx := config.WithContext(context.Background(), cfg)

	out, err := run(t, ctx, Start())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	var r struct {
		Entry  string `json:"entry"`
		Next   string `json:"next"`
		Prompt string `json:"prompt"`
		Done   bool   `json:"done"`
	}
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if r.Next != "author" || r.Prompt != "Author (Last, First)" || r.Done {
		t.Fatalf("unexpected report: %+v", r)
	}
	if _, err := os.Stat(cfg.StateFile); err != nil {
		t.Fatalf("state file not written to configured path: %v", err)
	}
}

func TestSubmit_WithoutStart(t *testing.T) {
	state := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := run(t, context.Background(), Submit(), "--state", state, "x"); !errors.Is(err, store.ErrNoState) {
		t.Fatalf("want ErrNoState, got %v", err)
	}
}
