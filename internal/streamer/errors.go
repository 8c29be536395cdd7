package streamer

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies failures so the CLI can map them to exit codes.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryInvalidURL ErrorCategory = "invalid-url"
	CategoryNetwork    ErrorCategory = "network"
	CategoryTooSmall   ErrorCategory = "too-small"
	CategoryFilesystem ErrorCategory = "filesystem"
	CategoryTool       ErrorCategory = "tool"
)

// CategorizedError attaches an ErrorCategory to an underlying error.
type CategorizedError struct {
	Category ErrorCategory
	Err      error
}

func (e CategorizedError) Error() string {
	return e.Err.Error()
}

func (e CategorizedError) Unwrap() error {
	return e.Err
}

func wrapCategory(category ErrorCategory, err error) error {
	if err == nil {
		return nil
	}
	return CategorizedError{Category: category, Err: err}
}

// CategoryOf returns the category of err, or "" if it carries none.
func CategoryOf(err error) ErrorCategory {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ""
}

// ExitCode maps an error to the process exit status: 0 for a deliberate
// stop (cancellation is resolved to nil before reaching here), 1 for any
// failure. Categories classify the failure for reporting, not the code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

type reportedError struct {
	err error
}

func (e reportedError) Error() string {
	return e.err.Error()
}

func (e reportedError) Unwrap() error {
	return e.err
}

func markReported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

// IsReported returns true if the error has already been printed to stderr.
func IsReported(err error) bool {
	var re reportedError
	return errors.As(err, &re)
}

func categorizedf(category ErrorCategory, format string, args ...interface{}) error {
	return CategorizedError{Category: category, Err: fmt.Errorf(format, args...)}
}
