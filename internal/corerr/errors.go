// Package corerr implements the structured error taxonomy used across
// archio: every failure carries a title plus ordered detail and hint
// lines, and is rendered exactly once at the process boundary.
package corerr

import "strings"

// Kind classifies the structured errors the core can produce.
type Kind int

const (
	KindUnsupportedFormat Kind = iota
	KindMissingExtension
	KindInvalidInput
	KindFileNotFound
	KindPermissionDenied
	KindAlreadyExists
	KindWalkError
	KindCompressingRootFolder
	KindNotFound
	KindWrapped
)

// Error is a title plus an ordered list of detail and hint lines.
// It never short-circuits the logger's pending buffer: callers are
// expected to flush the logging worker before rendering one of these.
type Error struct {
	Kind    Kind
	Title   string
	Details []string
	Hints   []string
	cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Title)
	for _, d := range e.Details {
		b.WriteString("\n  ")
		b.WriteString(d)
	}
	for _, h := range e.Hints {
		b.WriteString("\n  hint: ")
		b.WriteString(h)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// New starts a builder for a structured error with the given title.
func New(kind Kind, title string) *Error {
	return &Error{Kind: kind, Title: title}
}

// WithDetail appends a detail line and returns the same error for chaining.
func (e *Error) WithDetail(detail string) *Error {
	e.Details = append(e.Details, detail)
	return e
}

// WithHint appends a hint line and returns the same error for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hints = append(e.Hints, hint)
	return e
}

// WithCause records the underlying error for errors.Unwrap / errors.Is.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// UnsupportedFormat builds the UnsupportedFormat(reason) error kind.
func UnsupportedFormat(reason string) *Error {
	return New(KindUnsupportedFormat, "unsupported format").WithDetail(reason)
}

// MissingExtension builds the MissingExtension(path) error kind.
func MissingExtension(path string) *Error {
	return New(KindMissingExtension, "missing extension").
		WithDetail("could not infer a format from " + path).
		WithHint("pass --format to specify one explicitly")
}

// InvalidInput builds the InvalidInput(reason) error kind.
func InvalidInput(reason string) *Error {
	return New(KindInvalidInput, "invalid input").WithDetail(reason)
}

// FileNotFound builds the FileNotFound(path) error kind.
func FileNotFound(path string) *Error {
	return New(KindFileNotFound, "file not found").WithDetail(path)
}

// PermissionDenied builds the PermissionDenied error kind.
func PermissionDenied(path string) *Error {
	return New(KindPermissionDenied, "permission denied").WithDetail(path)
}

// AlreadyExists builds the AlreadyExists error kind.
func AlreadyExists(path string) *Error {
	return New(KindAlreadyExists, "already exists").WithDetail(path)
}

// WalkError builds the WalkError(underlying) error kind.
func WalkError(err error) *Error {
	return New(KindWalkError, "error while walking input tree").
		WithDetail(err.Error()).
		WithCause(err)
}

// CompressingRootFolder builds the CompressingRootFolder error kind.
func CompressingRootFolder(path string) *Error {
	return New(KindCompressingRootFolder, "refusing to compress a root folder").
		WithDetail(path).
		WithHint("pick a more specific source directory")
}

// NotFound builds the NotFound{title} error kind.
func NotFound(title string) *Error {
	return New(KindNotFound, title)
}

// Wrap maps an arbitrary I/O or codec error into the taxonomy as a
// detail string under a generic title.
func Wrap(title string, err error) *Error {
	return New(KindWrapped, title).WithDetail(err.Error()).WithCause(err)
}

// EOFOnPrompt is returned when a prompt is attempted on non-interactive
// stdin with no policy override set.
func EOFOnPrompt() *Error {
	return New(KindInvalidInput, "unexpected EOF waiting for confirmation").
		WithDetail("stdin is not interactive").
		WithHint("pass --yes or --no to run non-interactively")
}
