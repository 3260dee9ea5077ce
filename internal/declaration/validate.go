package declaration

import (
	"strings"

	sgerrors "github.com/ksyq12/sitegen/internal/errors"
)

// Required keys, checked in this order.
const (
	KeyListen     = "listen"
	KeyServerName = "server_name"
	KeyRoot       = "root"
)

// RequiredKeys returns the keys every section must declare.
func RequiredKeys() []string {
	return []string{KeyListen, KeyServerName, KeyRoot}
}

// Validate checks one section: required keys present, no blank values, and
// the section name and server_name usable as single path elements.
func Validate(s Section) error {
	for _, key := range RequiredKeys() {
		if _, ok := s.Get(key); !ok {
			return sgerrors.MissingKey(s.Name, key)
		}
	}

	for _, f := range s.Fields {
		if strings.TrimSpace(f.Value) == "" {
			return sgerrors.EmptyValue(s.Name, f.Key)
		}
	}

	if !isPathElement(s.Name) {
		return sgerrors.UnsafeName(s.Name, "section", s.Name)
	}
	if name := s.Value(KeyServerName); !isPathElement(name) {
		return sgerrors.UnsafeName(s.Name, KeyServerName, name)
	}

	return nil
}

// ValidateAll validates every section and returns the first failure.
func ValidateAll(sections []Section) error {
	for _, s := range sections {
		if err := Validate(s); err != nil {
			return err
		}
	}
	return nil
}

func isPathElement(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
