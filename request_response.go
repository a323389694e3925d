package restbridge

import "time"

// Request describes one call to be executed by a RestBridge. Route is either
// a path relative to the configured base URL or an absolute URL (which
// bypasses the base). Cache is nil for calls that must never touch the
// cache.
type Request struct {
	Method  string
	Route   string
	Query   QueryParameters
	Headers map[string]string
	Body    UploadBody
	Cache   *CacheCriteria
}

// WireRequest is the fully resolved request handed to a Transport: final
// URL, merged headers, materialized body. Timeout bounds the whole exchange;
// zero means no per-request bound beyond the context's.
type WireRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

// WireResponse is what a Transport produces: the status line split into code
// and message, lowercased single-valued headers, the full body, and the
// declared content type.
type WireResponse struct {
	StatusCode  int
	Message     string
	Headers     map[string]string
	Body        []byte
	ContentType MimeType
}

// Result is the raw outcome of a successful exchange. A response with an
// empty body produces no Result at all (nil), not an error.
type Result struct {
	Mime MimeType
	Body []byte
}
