package entrycmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bibentry/src/internal/config"
	"bibentry/src/internal/entry"
)

func execEntry(t *testing.T, ctx context.Context, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestEntryCommand_AllFlags(t *testing.T) {
	out, _, err := execEntry(t, context.Background(), "",
		"--author", "Bryan Kyle", "--title", `"Test"`, "--pubdate", "01 Jan 2020", "--ref", "http://example.com")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if want := "Kyle, Bryan. \"Test\" 01 Jan 2020. <<http://example.com>>\n"; out != want {
		t.Fatalf("output=%q want %q", out, want)
	}
}

func TestEntryCommand_PromptsForMissingFields(t *testing.T) {
	out, prompts, err := execEntry(t, context.Background(), "Bryan Kyle\n\"Test\"\n\n", "--ref", "http://example.com")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if want := "Kyle, Bryan. \"Test\" <<http://example.com>>\n"; out != want {
		t.Fatalf("output=%q want %q", out, want)
	}
	for _, p := range []string{"Author (Last, First): ", "Title: ", "Publication Date (DD MMM YYYY): "} {
		if !strings.Contains(prompts, p) {
			t.Fatalf("missing prompt %q in %q", p, prompts)
		}
	}
	if strings.Contains(prompts, "Reference") {
		t.Fatalf("ref was given as a flag but still prompted: %q", prompts)
	}
}

func TestEntryCommand_NoPrompt(t *testing.T) {
	out, prompts, err := execEntry(t, context.Background(), "ignored\n", "--no-prompt", "--title", `"Test"`)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if out != "\"Test\"\n" || prompts != "" {
		t.Fatalf("output=%q prompts=%q", out, prompts)
	}
}

func TestEntryCommand_SelectionAndRefConflict(t *testing.T) {
	if _, _, err := execEntry(t, context.Background(), "", "--ref", "a", "--selection", "b"); err == nil {
		t.Fatalf("expected error when both --ref and --selection are set")
	}
}

func TestEntryCommand_SelectionPlaceholderIsFilled(t *testing.T) {
	out, _, err := execEntry(t, context.Background(), "",
		"--author", "Bryan Kyle", "--title", "Test", "--pubdate", "2020", "--selection", "see <title>")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if want := "Kyle, Bryan. \"Test\" 2020. <<see \"Test\">>\n"; out != want {
		t.Fatalf("output=%q want %q", out, want)
	}
}

func TestEntryCommand_YAMLOutput(t *testing.T) {
	cfg := config.Defaults()
	cfg.Output = config.OutputYAML
	ctx := config.WithContext(context.Background(), cfg)
	out, _, err := execEntry(t, ctx, "", "--no-prompt", "--author", "Cher")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	for _, want := range []string{"entry: Cher.", "field: author", "value: Cher"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

type scriptedDriver struct {
	answers []string
	asked   []string
	err     error
}

func (d *scriptedDriver) Input(_ context.Context, message, _ string) (string, error) {
	d.asked = append(d.asked, message)
	if d.err != nil {
		return "", d.err
	}
	if len(d.answers) == 0 {
		return "", nil
	}
	a := d.answers[0]
	d.answers = d.answers[1:]
	return a, nil
}

func TestRun_SelectionAsksRemainingFieldsInTemplateOrder(t *testing.T) {
	d := &scriptedDriver{answers: []string{"Bryan Kyle et all.", "\"Test\"", " 01 Jan 2020 "}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	res, err := Run(context.Background(), d, nil, "http://example.com", true, log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantAsked := []string{"Author (Last, First)", "Title", "Publication Date (DD MMM YYYY)"}
	if diff := cmp.Diff(wantAsked, d.asked); diff != "" {
		t.Fatalf("prompts (-want +got):\n%s", diff)
	}
	want := Result{
		Entry: `Kyle, Bryan et all. "Test" 01 Jan 2020. <<http://example.com>>`,
		Values: []entry.Value{
			{Field: "ref", Value: "http://example.com"},
			{Field: "author", Value: "Bryan Kyle et all."},
			{Field: "title", Value: `"Test"`},
			{Field: "pubdate", Value: "01 Jan 2020"},
		},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("result (-want +got):\n%s", diff)
	}
}

func TestRun_DriverErrorNamesField(t *testing.T) {
	boom := errors.New("boom")
	d := &scriptedDriver{err: boom}
	_, err := Run(context.Background(), d, map[string]string{"author": "x"}, "", true, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "title:") {
		t.Fatalf("want wrapped title error, got %v", err)
	}
}
