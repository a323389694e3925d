package restbridge

import (
	"fmt"
	"net/http"
)

// Status is the symbolic form of an HTTP response status code.
type Status int

// The success family. Every other code turns the call into a *ResponseError.
const (
	StatusOK                   Status = 200
	StatusCreated              Status = 201
	StatusAccepted             Status = 202
	StatusNonAuthoritativeInfo Status = 203
	StatusNoContent            Status = 204
	StatusResetContent         Status = 205
	StatusPartialContent       Status = 206
)

// IsOK reports whether s belongs to the success family. The set is closed:
// codes like 207 or 226 are deliberately not part of it.
func (s Status) IsOK() bool {
	switch s {
	case StatusOK, StatusCreated, StatusAccepted, StatusNonAuthoritativeInfo,
		StatusNoContent, StatusResetContent, StatusPartialContent:
		return true
	}
	return false
}

// Text returns the standard reason phrase for s, or the empty string for
// codes outside the registered range.
func (s Status) Text() string {
	return http.StatusText(int(s))
}

func (s Status) String() string {
	if text := s.Text(); text != "" {
		return fmt.Sprintf("%d %s", int(s), text)
	}
	return fmt.Sprintf("%d", int(s))
}
