package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/ksyq12/sitegen/internal/declaration"
	sgerrors "github.com/ksyq12/sitegen/internal/errors"
)

// Template is a parsed placeholder template. It is immutable once loaded.
type Template struct {
	source string
	tokens []token
}

type token struct {
	text        string // literal text, or placeholder name
	placeholder bool
	line        int
}

// Load reads and parses the template file at path.
func Load(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, sgerrors.Precondition(path, fmt.Sprintf("cannot read template: %v", err))
	}
	return Parse(path, string(content))
}

// Parse parses template text. source names it in error messages.
func Parse(source, text string) (*Template, error) {
	t := &Template{source: source}

	var lit strings.Builder
	line := 1
	flush := func() {
		if lit.Len() > 0 {
			t.tokens = append(t.tokens, token{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '{' && strings.HasPrefix(text[i:], "{{"):
			lit.WriteByte('{')
			i += 2
		case c == '}' && strings.HasPrefix(text[i:], "}}"):
			lit.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, t.syntaxError(line, "unterminated placeholder")
			}
			name := text[i+1 : i+1+end]
			if strings.ContainsAny(name, "{\n") {
				return nil, t.syntaxError(line, "unterminated placeholder")
			}
			flush()
			t.tokens = append(t.tokens, token{text: name, placeholder: true, line: line})
			i += end + 2
		case c == '}':
			return nil, t.syntaxError(line, "single '}' must be written as '}}'")
		default:
			if c == '\n' {
				line++
			}
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	return t, nil
}

// Source returns the path or name the template was parsed from.
func (t *Template) Source() string {
	return t.source
}

// Placeholders returns the placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	var names []string
	seen := make(map[string]bool)
	for _, tok := range t.tokens {
		if tok.placeholder && !seen[tok.text] {
			seen[tok.text] = true
			names = append(names, tok.text)
		}
	}
	return names
}

// Render substitutes the section's values into the template.
// Only listen, server_name and root are substitutable; values are inserted verbatim.
func (t *Template) Render(s declaration.Section) (string, error) {
	var b strings.Builder
	for _, tok := range t.tokens {
		if !tok.placeholder {
			b.WriteString(tok.text)
			continue
		}

		if !substitutable(tok.text) {
			return "", sgerrors.Render(s.Name,
				fmt.Sprintf("%s:%d: unknown placeholder {%s}", t.source, tok.line, tok.text))
		}
		value, ok := s.Get(tok.text)
		if !ok {
			return "", sgerrors.Render(s.Name,
				fmt.Sprintf("%s:%d: no value for placeholder {%s}", t.source, tok.line, tok.text))
		}
		b.WriteString(value)
	}
	return b.String(), nil
}

func (t *Template) syntaxError(line int, msg string) error {
	return sgerrors.Render("", fmt.Sprintf("%s:%d: %s", t.source, line, msg))
}

func substitutable(name string) bool {
	for _, key := range declaration.RequiredKeys() {
		if name == key {
			return true
		}
	}
	return false
}
