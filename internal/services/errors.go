package services

import "fmt"

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError is returned when OpenRouter answers with a non-2xx status.
// Body is the raw response text, relayed verbatim to the caller.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Error de OpenRouter: %s", e.Body)
}

// UpstreamParseError is returned when a successful upstream response is not JSON.
type UpstreamParseError struct{ Cause error }

func (e *UpstreamParseError) Error() string {
	return fmt.Sprintf("invalid upstream response: %v", e.Cause)
}

func (e *UpstreamParseError) Unwrap() error { return e.Cause }

type UnsupportedFileError struct{ Extension string }

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type for text extraction: %s", e.Extension)
}
