// Package section splits the text of a beatmap into its bracketed sections and
// folds key/value lines into typed records.
package section

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoSeparator is returned for a line of a key/value section that has no colon
var ErrNoSeparator = errors.New("section: line has no key separator")

// Sections holds the lines of each section, keyed by section name
type Sections struct {
	header string
	lines  map[string][]string
}

// Setter assigns the value of a single key onto the destination record
type Setter[T any] func(dst *T, value string) error

// Table maps the keys of a section to their setters
type Table[T any] map[string]Setter[T]

// Parse scans the text once and collects the trimmed, non-blank lines following
// every "[Name]" header up to the next header. Lines starting with "//" are
// comments and are dropped. When the same section appears twice, the lines are
// appended in order.
func Parse(text string) Sections {
	out := Sections{lines: make(map[string][]string)}
	current, inside := "", false
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "//"):
			continue
		case isHeader(line):
			current, inside = line[1:len(line)-1], true
			if _, ok := out.lines[current]; !ok {
				out.lines[current] = nil
			}
		case inside:
			out.lines[current] = append(out.lines[current], line)
		case out.header == "":
			out.header = line
		}
	}
	return out
}

// isHeader reports whether the line is a section header such as "[General]"
func isHeader(line string) bool {
	return len(line) >= 2 && line[0] == '[' && line[len(line)-1] == ']'
}

// Header returns the first non-blank line before any section, typically the
// "osu file format vN" declaration.
func (s Sections) Header() string {
	return s.header
}

// Lines returns the lines of the named section, or nil when the section is absent
func (s Sections) Lines(name string) []string {
	return s.lines[name]
}

// Has reports whether the named section is present, even if empty
func (s Sections) Has(name string) bool {
	_, ok := s.lines[name]
	return ok
}

// KeyValue splits a line on its first colon. Both key and value are trimmed.
func KeyValue(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	return strings.TrimSpace(key), strings.TrimSpace(value), ok
}

// Fold applies the table to every "Key: Value" line of a section. Keys missing
// from the table are ignored, while a line without a colon fails with
// ErrNoSeparator. The first setter to fail aborts the fold, and its error is
// annotated with the key.
func Fold[T any](lines []string, table Table[T], dst *T) error {
	for _, line := range lines {
		key, value, ok := KeyValue(line)
		if !ok {
			return errors.Wrapf(ErrNoSeparator, "line %q", line)
		}

		set, ok := table[key]
		if !ok {
			continue
		}

		if err := set(dst, value); err != nil {
			return errors.Wrapf(err, "key %q", key)
		}
	}
	return nil
}

// Pairs returns every "Key: Value" line of a section as a map. Later keys replace
// earlier ones, and a line without a colon fails with ErrNoSeparator.
func Pairs(lines []string) (map[string]string, error) {
	out := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, ok := KeyValue(line)
		if !ok {
			return nil, errors.Wrapf(ErrNoSeparator, "line %q", line)
		}
		out[key] = value
	}
	return out, nil
}

// Decode converts raw file bytes into text, honouring a UTF-8 or UTF-16 byte order
// mark and falling back to UTF-8 when none is present.
func Decode(data []byte) (string, error) {
	fallback := unicode.UTF8.NewDecoder()
	decoder := unicode.BOMOverride(fallback)

	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", errors.Wrap(err, "decode text")
	}

	// Some editors leave a stray BOM in front of the first header
	return string(bytes.TrimPrefix(out, []byte("\ufeff"))), nil
}
