package sub

import (
	"fmt"
	"strings"

	"github.com/John-Robertt/subhub-go/internal/model"
)

const (
	CodeParse       = "SUB_PARSE_ERROR"
	CodeUnsupported = "SUB_UNSUPPORTED_SCHEME"
)

// ParseError reports why a descriptor line could not become a node. The
// conversion pipeline drops such lines; the error only feeds logs, metrics
// and tests.
type ParseError struct {
	AppError model.AppError
	Cause    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func newParseError(line string, code string, message string, hint string, cause error) error {
	return &ParseError{
		AppError: model.AppError{
			Code:    code,
			Message: message,
			Stage:   "parse_sub",
			Snippet: truncateSnippet(line, 200),
			Hint:    hint,
		},
		Cause: cause,
	}
}

func truncateSnippet(s string, max int) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max]
}
