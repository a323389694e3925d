// sdk.go
// ------
// The sdk.go file contains the core RestBridge struct and its methods.
// This is the main entry point of the SDK for users.
//
// Key functionalities include:
// - Initializing the SDK with New()
// - Making requests via the verb helpers (Get, Post, ...) or Do()
// - Running requests off the calling goroutine with DoAsync()
// - Dropping cached entries with Invalidate() / InvalidateKey()
//
// The RestBridge relies on a RequestExecutor to handle route resolution,
// body encoding, retries, and the cache policies, ensuring consistent
// behavior across all calls.
package restbridge

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

type RestBridge struct {
	cfg      Config
	log      zerolog.Logger
	executor *RequestExecutor
}

// New builds a bridge from cfg, filling in the defaults: a TLS-capable HTTP
// transport, a 30s timeout, and a disabled logger.
func New(cfg Config) *RestBridge {
	if cfg.Transport == nil {
		cfg.Transport = NewHTTPTransport(cfg.InsecureSkipVerify)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	sdk := &RestBridge{cfg: cfg, log: log}
	sdk.executor = NewRequestExecutor(sdk)
	return sdk
}

// Do executes an arbitrary request. The verb helpers below cover the common
// shapes; use Do directly for anything else (custom methods, per-request
// header overrides, cached writes).
func (sdk *RestBridge) Do(ctx context.Context, req *Request) (*Result, error) {
	return sdk.executor.Execute(ctx, req)
}

// Get issues a GET. A nil criteria makes the call bypass the cache entirely.
func (sdk *RestBridge) Get(ctx context.Context, route string, query QueryParameters, criteria *CacheCriteria) (*Result, error) {
	return sdk.Do(ctx, &Request{Method: http.MethodGet, Route: route, Query: query, Cache: criteria})
}

// Head issues a HEAD. Successful responses have no body, so the result is
// nil on success.
func (sdk *RestBridge) Head(ctx context.Context, route string, query QueryParameters, criteria *CacheCriteria) (*Result, error) {
	return sdk.Do(ctx, &Request{Method: http.MethodHead, Route: route, Query: query, Cache: criteria})
}

func (sdk *RestBridge) Post(ctx context.Context, route string, query QueryParameters, body UploadBody) (*Result, error) {
	return sdk.Do(ctx, &Request{Method: http.MethodPost, Route: route, Query: query, Body: body})
}

func (sdk *RestBridge) Put(ctx context.Context, route string, query QueryParameters, body UploadBody) (*Result, error) {
	return sdk.Do(ctx, &Request{Method: http.MethodPut, Route: route, Query: query, Body: body})
}

func (sdk *RestBridge) Patch(ctx context.Context, route string, query QueryParameters, body UploadBody) (*Result, error) {
	return sdk.Do(ctx, &Request{Method: http.MethodPatch, Route: route, Query: query, Body: body})
}

func (sdk *RestBridge) Delete(ctx context.Context, route string, query QueryParameters, body UploadBody) (*Result, error) {
	return sdk.Do(ctx, &Request{Method: http.MethodDelete, Route: route, Query: query, Body: body})
}

// Outcome is what DoAsync delivers on its channel.
type Outcome struct {
	Result *Result
	Err    error
}

// DoAsync runs the request on its own goroutine and delivers exactly one
// Outcome on the returned channel. The channel is buffered, so the result
// never blocks on a slow receiver.
func (sdk *RestBridge) DoAsync(ctx context.Context, req *Request) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		res, err := sdk.executor.Execute(ctx, req)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}

// Invalidate removes the cache entry a GET for route+query would read, i.e.
// the entry keyed by the resolved URL.
func (sdk *RestBridge) Invalidate(ctx context.Context, route string, query QueryParameters) error {
	full, err := sdk.executor.ResolveURL(route, query)
	if err != nil {
		return err
	}
	return sdk.InvalidateKey(ctx, full)
}

// InvalidateKey removes the entry stored under an explicit CacheCriteria.Key.
func (sdk *RestBridge) InvalidateKey(ctx context.Context, key string) error {
	if sdk.cfg.Cache == nil {
		return nil
	}
	if err := sdk.cfg.Cache.Remove(ctx, key); err != nil {
		return &GenericError{Message: "invalidate cache entry", Err: err}
	}
	sdk.log.Trace().Str("key", key).Msg("cache invalidate")
	return nil
}

// ResolveURL exposes the executor's route resolution, mainly so callers can
// predict cache keys.
func (sdk *RestBridge) ResolveURL(route string, query QueryParameters) (string, error) {
	return sdk.executor.ResolveURL(route, query)
}
