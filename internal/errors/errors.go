// Package errors provides the typed errors of the sitegen pipeline.
//
// Every fatal condition of a run is a *SiteError carrying a Code that names
// its category. The CLI prints the error and exits non-zero; nothing is
// retried.
//
// # Error Codes
//
//   - PRECONDITION: output directory, template or declaration source missing
//   - CONFIG: the sitegen config file is unreadable or invalid
//   - PARSE: the declaration source cannot be read or is malformed
//   - VALIDATION: a section is missing a required key or has an empty value
//   - RENDER: the template references an unknown placeholder
//   - WRITE: a config file or site directory cannot be written
//   - RELOAD: the web server test or reload failed (reported, never returned)
//
// # Error Checking
//
// Use errors.Is against the code sentinels:
//
//	if errors.Is(err, errors.ErrValidation) {
//	    // any validation failure
//	}
//
// Validation failures also match the reason that caused them:
//
//	if errors.Is(err, errors.ErrMissingKey) {
//	    // key absent, as opposed to errors.ErrEmptyValue
//	}
//
// Use errors.As to reach the section and key:
//
//	var siteErr *errors.SiteError
//	if errors.As(err, &siteErr) {
//	    fmt.Println(siteErr.Section, siteErr.Key)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for the pipeline stages.
const (
	ErrCodePrecondition ErrorCode = "PRECONDITION" // Required path missing
	ErrCodeConfig       ErrorCode = "CONFIG"       // sitegen config error
	ErrCodeParse        ErrorCode = "PARSE"        // Declaration source malformed
	ErrCodeValidation   ErrorCode = "VALIDATION"   // Section failed validation
	ErrCodeRender       ErrorCode = "RENDER"       // Template could not be rendered
	ErrCodeWrite        ErrorCode = "WRITE"        // File or directory write failed
	ErrCodeReload       ErrorCode = "RELOAD"       // Web server test/reload failed
)

// Validation reasons. A VALIDATION SiteError matches exactly one of them.
var (
	ErrMissingKey = errors.New("missing required key")
	ErrEmptyValue = errors.New("empty value")
	ErrUnsafeName = errors.New("unsafe name")
)

// SiteError is a pipeline error with the location it refers to.
type SiteError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Section string    // Declaration section (if applicable)
	Key     string    // Field key (if applicable)
	Path    string    // File or directory involved (if applicable)
	Line    int       // Line in Path, 1-based (if applicable)
	Reason  error     // Validation reason, matched by Is but not printed
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	var parts []string
	if e.Path != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.Path, e.Line))
		} else {
			parts = append(parts, e.Path)
		}
	}
	if e.Section != "" {
		parts = append(parts, fmt.Sprintf("section [%s]", e.Section))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error for error chain traversal.
func (e *SiteError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// A *SiteError target matches on code; any other target matches the reason.
func (e *SiteError) Is(target error) bool {
	if t, ok := target.(*SiteError); ok {
		return e.Code == t.Code
	}
	return e.Reason != nil && e.Reason == target
}

// Sentinels for errors.Is, one per code.
var (
	ErrPrecondition = &SiteError{Code: ErrCodePrecondition, Message: "precondition failed"}
	ErrConfig       = &SiteError{Code: ErrCodeConfig, Message: "invalid configuration"}
	ErrParse        = &SiteError{Code: ErrCodeParse, Message: "malformed declarations"}
	ErrValidation   = &SiteError{Code: ErrCodeValidation, Message: "invalid section"}
	ErrRender       = &SiteError{Code: ErrCodeRender, Message: "render failed"}
	ErrWrite        = &SiteError{Code: ErrCodeWrite, Message: "write failed"}
	ErrReload       = &SiteError{Code: ErrCodeReload, Message: "reload failed"}
)

// Precondition reports a required path that is missing or of the wrong kind.
func Precondition(path, msg string) error {
	return &SiteError{
		Code:    ErrCodePrecondition,
		Message: msg,
		Path:    path,
	}
}

// Config wraps a failure to load or validate the sitegen config.
func Config(path, msg string, err error) error {
	return &SiteError{
		Code:    ErrCodeConfig,
		Message: msg,
		Path:    path,
		Err:     err,
	}
}

// Parse reports a malformed line of a declaration source.
func Parse(path string, line int, msg string) error {
	return &SiteError{
		Code:    ErrCodeParse,
		Message: msg,
		Path:    path,
		Line:    line,
	}
}

// ParseRead wraps a failure to read a declaration source.
func ParseRead(path string, err error) error {
	return &SiteError{
		Code:    ErrCodeParse,
		Message: "cannot read declarations",
		Path:    path,
		Err:     err,
	}
}

// MissingKey reports a required key absent from a section.
func MissingKey(section, key string) error {
	return &SiteError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("missing required key %q", key),
		Section: section,
		Key:     key,
		Reason:  ErrMissingKey,
	}
}

// EmptyValue reports a key whose value is blank after trimming.
func EmptyValue(section, key string) error {
	return &SiteError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("empty value for key %q", key),
		Section: section,
		Key:     key,
		Reason:  ErrEmptyValue,
	}
}

// UnsafeName reports a value that cannot be used as a single path element.
func UnsafeName(section, key, value string) error {
	return &SiteError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("value %q of %q is not a valid file name", value, key),
		Section: section,
		Key:     key,
		Reason:  ErrUnsafeName,
	}
}

// Render reports a template that cannot be rendered for a section.
func Render(section, msg string) error {
	return &SiteError{
		Code:    ErrCodeRender,
		Message: msg,
		Section: section,
	}
}

// Write wraps a failed file or directory write.
func Write(section, path, msg string, err error) error {
	return &SiteError{
		Code:    ErrCodeWrite,
		Message: msg,
		Section: section,
		Path:    path,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
