package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bibentry/src/internal/dates"
	"bibentry/src/internal/schema"
)

// ErrNoState is returned when no session has been started.
var ErrNoState = errors.New("no entry in progress; run 'bibentry start' first")

// NewState returns an empty state for template.
func NewState(template string) schema.State {
	return schema.State{Template: template, Created: dates.NowISO(), Values: []schema.FieldValue{}}
}

// SaveState validates and writes st to path as YAML, creating parent directories.
func SaveState(path string, st schema.State) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	buf, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// LoadState reads and validates the state at path. A missing file yields ErrNoState.
func LoadState(path string) (schema.State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return schema.State{}, ErrNoState
	}
	if err != nil {
		return schema.State{}, err
	}
	var st schema.State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return schema.State{}, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := st.Validate(); err != nil {
		return schema.State{}, fmt.Errorf("invalid state in %s: %w", path, err)
	}
	return st, nil
}

// ClearState removes the state file; a missing file is not an error.
func ClearState(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ReadBatch loads and validates every record of a YAML batch file.
func ReadBatch(path string) (schema.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b schema.Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	for i := range b {
		if err := b[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid record %d in %s: %w", i+1, path, err)
		}
	}
	return b, nil
}
