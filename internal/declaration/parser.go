// Package declaration reads and validates the site declaration source.
//
// The source is an INI-style text file:
//
//	# comment
//	[DEFAULT]
//	listen = 80
//
//	[siteA]
//	server_name = example.com
//	root        = /storage/www/example.com
//
// Grammar, one construct per line:
//   - blank lines and lines starting with # or ; are ignored
//   - [name] opens a section; the name is trimmed and must not be empty
//   - key = value or key: value, the first = or : splits; whitespace around
//     key and value is dropped and keys are lower-cased
//   - a line indented deeper than the key line before it continues that
//     value on a new line
//
// Keys before any section, keys without a delimiter, duplicate sections and
// duplicate keys inside one section are errors. Fields of the DEFAULT section
// are inherited by every section that does not set them; DEFAULT itself is
// not returned.
package declaration

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	sgerrors "github.com/ksyq12/sitegen/internal/errors"
)

// DefaultSection holds fields inherited by all sections.
const DefaultSection = "DEFAULT"

// ParseFile parses the declaration source at path.
func ParseFile(path string) ([]Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sgerrors.ParseRead(path, err)
	}
	defer f.Close()

	return parse(f, path)
}

// Parse parses a declaration source from r.
func Parse(r io.Reader) ([]Section, error) {
	return parse(r, "<input>")
}

type parser struct {
	source   string
	sections []*Section
	defaults *Section
	current  *Section
	seen     map[string]bool

	// last key line, for continuation values
	lastField  int
	lastIndent int
}

func parse(r io.Reader, source string) ([]Section, error) {
	p := &parser{
		source:    source,
		seen:      make(map[string]bool),
		lastField: -1,
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.line(lineNo, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, sgerrors.ParseRead(source, err)
	}

	return p.result(), nil
}

func (p *parser) line(lineNo int, raw string) error {
	raw = strings.TrimSuffix(raw, "\r")
	if lineNo == 1 {
		raw = strings.TrimPrefix(raw, "\ufeff")
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		p.lastField = -1
		return nil
	}
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
		return nil
	}

	indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
	if p.current != nil && p.lastField >= 0 && indent > p.lastIndent {
		f := &p.current.Fields[p.lastField]
		if f.Value == "" {
			f.Value = trimmed
		} else {
			f.Value += "\n" + trimmed
		}
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		return p.header(lineNo, trimmed)
	}
	return p.field(lineNo, trimmed, indent)
}

func (p *parser) header(lineNo int, trimmed string) error {
	if !strings.HasSuffix(trimmed, "]") {
		return sgerrors.Parse(p.source, lineNo, fmt.Sprintf("unterminated section header %s", trimmed))
	}
	name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if name == "" {
		return sgerrors.Parse(p.source, lineNo, "empty section name")
	}
	if p.seen[name] {
		return sgerrors.Parse(p.source, lineNo, fmt.Sprintf("duplicate section [%s]", name))
	}
	p.seen[name] = true

	sec := &Section{Name: name, Line: lineNo}
	if name == DefaultSection {
		p.defaults = sec
	} else {
		p.sections = append(p.sections, sec)
	}
	p.current = sec
	p.lastField = -1
	return nil
}

func (p *parser) field(lineNo int, trimmed string, indent int) error {
	if p.current == nil {
		return sgerrors.Parse(p.source, lineNo, "key outside of any section")
	}

	i := strings.IndexAny(trimmed, "=:")
	if i < 0 {
		return sgerrors.Parse(p.source, lineNo, fmt.Sprintf("expected key = value, got %q", trimmed))
	}
	key := strings.ToLower(strings.TrimSpace(trimmed[:i]))
	value := strings.TrimSpace(trimmed[i+1:])
	if key == "" {
		return sgerrors.Parse(p.source, lineNo, "empty key")
	}
	if _, dup := p.current.Get(key); dup {
		return sgerrors.Parse(p.source, lineNo,
			fmt.Sprintf("duplicate key %q in section [%s]", key, p.current.Name))
	}

	p.current.Fields = append(p.current.Fields, Field{Key: key, Value: value})
	p.lastField = len(p.current.Fields) - 1
	p.lastIndent = indent
	return nil
}

func (p *parser) result() []Section {
	out := make([]Section, 0, len(p.sections))
	for _, sec := range p.sections {
		s := *sec
		if p.defaults != nil {
			for _, f := range p.defaults.Fields {
				if _, ok := s.Get(f.Key); !ok {
					s.Fields = append(s.Fields, f)
				}
			}
		}
		out = append(out, s)
	}
	return out
}
