package dispatch

import (
	"errors"
	"fmt"

	"go.klb.dev/marklip/internal/clip"
)

// ExitCode is the process status a failed run maps to.
type ExitCode int

const (
	ExitSuccess        ExitCode = 0
	ExitMissingContent ExitCode = 1
	ExitConversion     ExitCode = 2
	ExitEnvironment    ExitCode = 255
)

// User-facing messages.
const (
	MsgMissingContent   = "Required clipboard format is missing."
	MsgConversionFailed = "Conversion failed."
	MsgToHTML           = "Converted Markdown to HTML and copied to clipboard."
	MsgToMarkdown       = "Converted HTML to Markdown and copied to clipboard."
)

// Error is a run failure carrying its exit code.
type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Underlying }

// Is matches any *Error with the same exit code, so callers can test
// errors.Is(err, ErrMissingContent).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrMissingContent   = &Error{Code: ExitMissingContent, Message: MsgMissingContent}
	ErrConversionFailed = &Error{Code: ExitConversion, Message: MsgConversionFailed}
)

// MissingContent reports that the clipboard lacks the required format.
func MissingContent(f clip.Format) *Error {
	return &Error{
		Code:       ExitMissingContent,
		Message:    MsgMissingContent,
		Underlying: fmt.Errorf("no %s on clipboard", f),
	}
}

// ConversionFailed wraps a converter error.
func ConversionFailed(err error) *Error {
	return &Error{Code: ExitConversion, Message: MsgConversionFailed, Underlying: err}
}

// Environment wraps a clipboard, notification or configuration failure.
func Environment(msg string, err error) *Error {
	return &Error{Code: ExitEnvironment, Message: msg, Underlying: err}
}

// CodeOf maps an error to the process exit code.
func CodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ExitEnvironment
}

// MessageOf returns the short message shown to the user for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Code == ExitEnvironment && e.Underlying != nil {
			return e.Error()
		}
		return e.Message
	}
	return err.Error()
}
