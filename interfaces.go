package restbridge

import (
	"context"
	"time"
)

// Transport executes a single wire-level HTTP exchange. Implementations are
// long-lived, reused across calls, and must be safe for concurrent use. The
// default is HTTPTransport; tests substitute a scripted one.
type Transport interface {
	RoundTrip(ctx context.Context, req *WireRequest) (*WireResponse, error)
}

// CacheStore is a shared key/value byte store with age-aware retrieval.
// Implementations must be safe for concurrent use; the bridge performs no
// locking around reads and writes.
//
// Get returns the stored bytes for key together with a hit flag. A positive
// maxAge bounds the entry's age: entries stored longer ago than maxAge are
// reported as misses. A non-positive maxAge disables the age check. Absence
// is a miss, never an error.
type CacheStore interface {
	Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Encoder turns a typed value into raw bytes for one family of MIME types.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder fills a typed value from raw bytes. v follows the json.Unmarshal
// convention: a non-nil pointer to the target.
type Decoder interface {
	Decode(data []byte, v any) error
}

// EncoderBinding associates an Encoder with the MIME type it serves inside
// an ordered registry. The first binding whose type matches wins.
type EncoderBinding struct {
	Mime    MimeType
	Encoder Encoder
}

// DecoderBinding is the decoding counterpart of EncoderBinding.
type DecoderBinding struct {
	Mime    MimeType
	Decoder Decoder
}

// TokenProvider supplies bearer tokens for outgoing requests. Providers may
// cache and refresh tokens internally; Token is called once per request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
