// Package prompt asks the user for field values, either through an
// interactive terminal prompt or line by line from a reader.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"bibentry/src/internal/config"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Driver asks a single question and returns the raw answer.
type Driver interface {
	Input(ctx context.Context, message, help string) (string, error)
}

// New picks a driver for mode. In auto mode survey is used only when in is a
// terminal; otherwise answers are read line by line from in.
func New(mode string, in io.Reader, out io.Writer) Driver {
	switch mode {
	case config.PromptSurvey:
		return surveyDriver{}
	case config.PromptPlain:
		return NewLineDriver(in, out)
	}
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return surveyDriver{}
	}
	return NewLineDriver(in, out)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

type surveyDriver struct{}

func (surveyDriver) Input(ctx context.Context, message, help string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	q := &survey.Input{Message: message + ":", Help: help}
	if err := survey.AskOne(q, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// LineDriver writes the prompt to out and reads one line from in. End of
// input answers with an empty value.
type LineDriver struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineDriver returns a LineDriver. The reader is buffered once so
// consecutive questions do not lose input.
func NewLineDriver(in io.Reader, out io.Writer) *LineDriver {
	return &LineDriver{in: bufio.NewReader(in), out: out}
}

func (d *LineDriver) Input(ctx context.Context, message, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(d.out, "%s: ", message); err != nil {
		return "", err
	}
	s, err := d.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
