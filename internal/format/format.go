// Package format loads and writes automaton descriptions.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nfakit/internal/automaton"
)

type Format int

const (
	Text Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	default:
		return "text"
	}
}

// ParseFormat maps a flag value to a Format. The empty string means "pick by
// file extension" and yields ok=false.
func ParseFormat(s string) (f Format, ok bool, err error) {
	switch strings.ToLower(s) {
	case "":
		return Text, false, nil
	case "text", "txt":
		return Text, true, nil
	case "yaml", "yml":
		return YAML, true, nil
	}
	return Text, false, fmt.Errorf("unknown format %q (want text or yaml)", s)
}

// ForPath picks the format from the file extension.
func ForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return Text
}

// Read parses an automaton in format f.
func Read(r io.Reader, name string, f Format) (*automaton.Automaton, error) {
	if f == YAML {
		return ParseYAML(name, r)
	}
	return ParseText(name, r)
}

// Write serializes a in format f.
func Write(w io.Writer, a *automaton.Automaton, f Format) error {
	if f == YAML {
		return WriteYAML(w, a)
	}
	return WriteText(w, a)
}

// Load opens path and parses it, choosing the format by extension.
func Load(path string) (*automaton.Automaton, error) {
	return LoadAs(path, ForPath(path))
}

// LoadAs reads the whole file before parsing, so read failures are reported
// as ErrUnavailable and never as ErrMalformed.
func LoadAs(path string, f Format) (*automaton.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return Read(bytes.NewReader(data), path, f)
}
