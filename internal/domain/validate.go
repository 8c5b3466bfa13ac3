package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StatusPass    = "pass"
	StatusWarning = "warning"
)

// ValidationResult is the verdict for an archive that validated without error.
type ValidationResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Pass marks a file that may be used as the project's primary file.
func Pass() ValidationResult {
	return ValidationResult{Status: StatusPass}
}

// Warning marks a file that is acceptable but must not be marked primary.
func Warning(reason string) ValidationResult {
	return ValidationResult{Status: StatusWarning, Reason: reason}
}

// Primary reports whether the file should be marked as primary.
func (r ValidationResult) Primary() bool { return r.Status == StatusPass }

func (r ValidationResult) String() string {
	if r.Reason == "" {
		return r.Status
	}
	return r.Status + ": " + r.Reason
}

var (
	// ErrArchive means the container could not be read at all.
	ErrArchive = errors.New("unable to read zip archive")
	// ErrManifest means a recognized manifest entry failed to decode.
	ErrManifest = errors.New("error while validating manifest")
	// ErrInvalidInput means the upload does not match what it declares.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEntryNotFound is returned by Archive.ReadFile for absent entries.
	ErrEntryNotFound = errors.New("entry not found")
)

// ValidationError is a failed validation. Kind is one of ErrArchive,
// ErrManifest or ErrInvalidInput; Err is the underlying cause, if any.
type ValidationError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ArchiveError wraps a container-level failure.
func ArchiveError(reason string, err error) *ValidationError {
	return &ValidationError{Kind: ErrArchive, Reason: reason, Err: err}
}

// ManifestError wraps a manifest decoding failure for the named entry.
func ManifestError(entry string, err error) *ValidationError {
	return &ValidationError{Kind: ErrManifest, Reason: entry, Err: err}
}

// InvalidInputError reports a semantic mismatch between the upload and its metadata.
func InvalidInputError(format string, args ...any) *ValidationError {
	return &ValidationError{Kind: ErrInvalidInput, Reason: fmt.Sprintf(format, args...)}
}

// ErrorKind returns the short name of the error's kind, or "" for errors
// that are not validation errors.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrArchive):
		return "archive"
	case errors.Is(err, ErrManifest):
		return "manifest"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return ""
	}
}

// FileInput is the upload metadata for a single validation call.
type FileInput struct {
	Data         []byte
	Extension    string
	ProjectType  string
	Loaders      []string
	GameVersions []string
}

// Report is the outward-facing summary of one validation call.
type Report struct {
	File         string      `json:"file,omitempty"`
	Extension    string      `json:"extension"`
	ProjectType  string      `json:"project_type"`
	Loaders      []string    `json:"loaders"`
	GameVersions []string    `json:"game_versions"`
	Status       string      `json:"status"`
	Reason       string      `json:"reason,omitempty"`
	ErrorKind    string      `json:"error_kind,omitempty"`
	Primary      bool        `json:"primary"`
	Candidates   []Candidate `json:"candidates,omitempty"`
}

const StatusError = "error"

// Candidate describes a validator whose project type, loader and game
// version preconditions held for an input.
type Candidate struct {
	Validator      string `json:"validator"`
	ExtensionMatch bool   `json:"extension_match"`
}

// NormalizeExtension lowercases ext and strips one leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// ValidatorInfo is the static description of a registered validator.
type ValidatorInfo struct {
	Name         string             `json:"name"`
	Extensions   []string           `json:"extensions"`
	ProjectTypes []string           `json:"project_types"`
	Loaders      []string           `json:"loaders"`
	GameVersions GameVersionSupport `json:"game_versions"`
}

// Describe captures a validator's descriptor.
func Describe(v Validator) ValidatorInfo {
	return ValidatorInfo{
		Name:         v.Name(),
		Extensions:   v.FileExtensions(),
		ProjectTypes: v.ProjectTypes(),
		Loaders:      v.SupportedLoaders(),
		GameVersions: v.SupportedGameVersions(),
	}
}
