// Package errors defines the stable error codes surfaced by cc-context-awareness.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error code.
type Code string

// Error codes.
const (
	ETemplateNotFound  Code = "TEMPLATE_NOT_FOUND"
	EBaseNotInstalled  Code = "BASE_NOT_INSTALLED"
	EConfigCorrupted   Code = "CONFIG_CORRUPTED"
	ESettingsCorrupted Code = "SETTINGS_CORRUPTED"
	ENotInstalled      Code = "NOT_INSTALLED"

	EMetaCorrupted   Code = "META_CORRUPTED"
	EInvalidManifest Code = "INVALID_MANIFEST"
	EUsage           Code = "USAGE"
)

// CLIError is the error type returned by every component for known failure kinds.
type CLIError struct {
	Code    Code
	Msg     string
	Cause   error
	Context map[string]string // offending id, path, scope...
}

// Error returns the human-readable message. The cause is reachable via Unwrap.
func (e *CLIError) Error() string {
	return e.Msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a CLIError with the given code and message.
func New(code Code, msg string) error {
	return &CLIError{Code: code, Msg: msg}
}

// Wrap creates a CLIError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &CLIError{Code: code, Msg: msg, Cause: err}
}

// WithContext creates a CLIError carrying structured context.
// The context map is copied (nil if empty).
func WithContext(code Code, msg string, err error, context map[string]string) error {
	return &CLIError{Code: code, Msg: msg, Cause: err, Context: copyContext(context)}
}

// TemplateNotFound reports an id absent from the catalog.
func TemplateNotFound(id string) error {
	return WithContext(ETemplateNotFound,
		fmt.Sprintf("Template %q not found. Run \"cc-context-awareness list\" to see available templates.", id),
		nil, map[string]string{"id": id})
}

// BaseNotInstalled reports an operation that requires a base install.
func BaseNotInstalled() error {
	return New(EBaseNotInstalled,
		`cc-context-awareness is not installed. Run "cc-context-awareness install" first.`)
}

// ConfigCorrupted reports a config.json that exists but cannot be used.
func ConfigCorrupted(path string, cause error) error {
	return WithContext(EConfigCorrupted,
		fmt.Sprintf("Config file contains invalid JSON: %s\nFix the file manually and re-run.", path),
		cause, map[string]string{"path": path})
}

// SettingsCorrupted reports a settings file that exists but cannot be parsed.
func SettingsCorrupted(path string, cause error) error {
	return WithContext(ESettingsCorrupted,
		fmt.Sprintf("Settings file contains invalid JSON: %s\nFix the file manually and re-run.", path),
		cause, map[string]string{"path": path})
}

// NotInstalled reports that nothing is installed for a scope.
func NotInstalled(scope string) error {
	return WithContext(ENotInstalled,
		fmt.Sprintf("cc-context-awareness is not installed (%s).", scope),
		nil, map[string]string{"scope": scope})
}

// MetaCorrupted reports an unreadable install metadata file.
func MetaCorrupted(path string, cause error) error {
	return WithContext(EMetaCorrupted,
		fmt.Sprintf("Install metadata is unreadable: %s\nRe-run \"cc-context-awareness install\" to repair it.", path),
		cause, map[string]string{"path": path})
}

// InvalidManifest reports a catalog, manifest, or bundled data file that cannot be used.
func InvalidManifest(path, reason string, cause error) error {
	return WithContext(EInvalidManifest,
		fmt.Sprintf("Invalid template data in %s: %s", path, reason),
		cause, map[string]string{"path": path})
}

// GetCode extracts the error code from an error, or "" if it is not a CLIError.
func GetCode(err error) Code {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// AsCLIError returns (*CLIError, true) if err is or wraps a CLIError.
func AsCLIError(err error) (*CLIError, bool) {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ExitCode returns 0 for nil, 2 for USAGE, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

func copyContext(context map[string]string) map[string]string {
	if len(context) == 0 {
		return nil
	}
	cp := make(map[string]string, len(context))
	for k, v := range context {
		cp[k] = v
	}
	return cp
}
