// config.go
// ----------
// This file defines the Config structure, which fixes a RestBridge's
// behavior at construction time: base URL, default headers, timeout, TLS
// trust relaxation, logging, the codec registries, the cache store, and the
// retry policy.
//
// A Config is copied into the bridge by New and never mutated afterwards.
// The bridge holds the Cache and Transport by reference but does not own
// them: it never closes or disposes what the caller supplied.
package restbridge

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config carries the immutable settings of a RestBridge.
type Config struct {
	// BaseURL is prepended to relative routes. Optional: absolute routes
	// bypass it, but resolving a relative route without it is a caller
	// error.
	BaseURL string

	// DefaultHeaders are sent with every request unless overridden by the
	// body or the call (last writer wins, names canonicalized).
	DefaultHeaders map[string]string

	// Timeout bounds each request including body download. Zero means
	// DefaultTimeout.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification on the
	// default transport. Ignored when Transport is set.
	InsecureSkipVerify bool

	// Logger receives trace/debug events. nil disables logging.
	Logger *zerolog.Logger

	// Encoders and Decoders are ordered registries consulted first-match;
	// JSON-like types fall back to the built-in JSON codec when no binding
	// matches.
	Encoders []EncoderBinding
	Decoders []DecoderBinding

	// Cache enables the per-call cache policies. nil disables caching
	// regardless of any CacheCriteria.
	Cache CacheStore

	// Transport executes the wire exchanges. nil selects HTTPTransport.
	Transport Transport

	// Auth, when set, supplies the bearer token for every request.
	Auth TokenProvider

	// MaxRetries is the number of additional attempts after a transport
	// error, a 429, or a 5xx. Zero disables retrying.
	MaxRetries int

	// BaseBackoff is the initial delay for exponential backoff between
	// attempts; it doubles per attempt and is capped at 30s. Zero means one
	// second.
	BaseBackoff time.Duration
}
