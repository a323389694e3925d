// request_executor.go
// -------------------
// RequestExecutor turns a Request into a Result: it resolves the route
// against the base URL, materializes the body, merges headers, and runs the
// cache-aware fetch.
//
// The cache flow around a fetch is strictly sequential:
//
//	pre-fetch cache read (policy arm 1) -> network fetch with retries ->
//	cache write on success / fallback cache read on failure (policy arm 2)
//
// Cache writes are best-effort and never fail the call. A fallback read that
// misses or fails re-raises the original fetch error unchanged.
package restbridge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opengovern/rest-bridge/internal"
)

// RequestExecutor resolves, executes, and caches requests on behalf of one
// RestBridge.
type RequestExecutor struct {
	bridge *RestBridge
}

func NewRequestExecutor(bridge *RestBridge) *RequestExecutor {
	return &RequestExecutor{bridge: bridge}
}

// Execute runs one request to completion, honoring the request's cache
// criteria when a store is configured.
func (re *RequestExecutor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req.Method == "" {
		return nil, &GenericError{Message: "request method is required"}
	}

	fullURL, err := re.ResolveURL(req.Route, req.Query)
	if err != nil {
		return nil, err
	}

	data, contentType, bodyHeaders, err := req.Body.materialize(re.encoderFor)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	applyHeaders(headers, re.bridge.cfg.DefaultHeaders)
	if contentType != "" {
		headers["Content-Type"] = string(contentType)
	}
	applyHeaders(headers, bodyHeaders)
	applyHeaders(headers, req.Headers)

	wire := &WireRequest{
		Method:  req.Method,
		URL:     fullURL,
		Headers: headers,
		Body:    data,
		Timeout: re.bridge.cfg.Timeout,
	}

	criteria := req.Cache
	store := re.bridge.cfg.Cache
	if criteria == nil || store == nil {
		// Not cacheable: plain fetch, errors propagate untouched.
		return re.fetch(ctx, wire)
	}

	key := criteria.Key
	if key == "" {
		key = fullURL
	}
	log := re.bridge.log.With().Str("key", key).Stringer("policy", criteria.Policy).Logger()

	if maxAge, ok := criteria.prefetchAge(); ok {
		if val, hit := re.cacheRead(ctx, key, maxAge); hit {
			log.Trace().Msg("cache hit, skipping network")
			return &Result{Mime: val.Mime, Body: val.Body}, nil
		}
		log.Trace().Msg("cache miss")
	}

	res, err := re.fetch(ctx, wire)
	if err == nil {
		if res != nil {
			re.cacheWrite(ctx, key, res)
		}
		return res, nil
	}

	if maxAge, ok := criteria.fallbackAge(); ok {
		if val, hit := re.cacheRead(ctx, key, maxAge); hit {
			log.Debug().Err(err).Msg("fetch failed, serving cached value")
			return &Result{Mime: val.Mime, Body: val.Body}, nil
		}
	}
	return nil, err
}

// ResolveURL combines a route with the configured base URL and appends the
// query parameters in their insertion order. Absolute routes bypass the base
// URL entirely; a relative route without a base URL is a caller error.
func (re *RequestExecutor) ResolveURL(route string, query QueryParameters) (string, error) {
	var full string
	if u, err := url.Parse(route); err == nil && u.IsAbs() {
		full = route
	} else {
		base := re.bridge.cfg.BaseURL
		if base == "" {
			return "", &GenericError{Message: fmt.Sprintf("route %q is not absolute and no base URL is configured", route)}
		}
		if trimmed := strings.TrimPrefix(route, "/"); trimmed == "" {
			full = base
		} else {
			full = strings.TrimSuffix(base, "/") + "/" + trimmed
		}
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(full, "?") {
			sep = "&"
		}
		full += sep + query.Encode()
	}
	return full, nil
}

// fetch performs the network exchange (with retries) and maps the response:
// transport failures become GenericError, non-2xx statuses become
// ResponseError, an empty body becomes an absent Result. Token acquisition
// happens here rather than before the cache reads: a prefetch hit is served
// without consulting the auth provider, and a token failure is a fetch
// failure that the fallback policies can recover.
func (re *RequestExecutor) fetch(ctx context.Context, wire *WireRequest) (*Result, error) {
	if err := re.applyAuth(ctx, wire.Headers); err != nil {
		return nil, err
	}
	resp, err := re.roundTripWithRetry(ctx, wire)
	if err != nil {
		return nil, &GenericError{Message: fmt.Sprintf("%s %s failed", wire.Method, wire.URL), Err: err}
	}

	status := Status(resp.StatusCode)
	if !status.IsOK() {
		return nil, &ResponseError{
			Status:  status,
			Message: resp.Message,
			Body:    resp.Body,
			Mime:    resp.ContentType,
		}
	}
	if len(resp.Body) == 0 {
		return nil, nil
	}
	return &Result{Mime: resp.ContentType, Body: resp.Body}, nil
}

// roundTripWithRetry sends the wire request, retrying transport errors, 429s
// and 5xx responses up to Config.MaxRetries times with exponential backoff.
// A 429 carrying a usable Retry-After hint waits that long instead.
func (re *RequestExecutor) roundTripWithRetry(ctx context.Context, wire *WireRequest) (*WireResponse, error) {
	cfg := re.bridge.cfg
	baseBackoff := cfg.BaseBackoff
	if baseBackoff == 0 {
		baseBackoff = time.Second
	}

	attempts := 0
	for {
		resp, err := cfg.Transport.RoundTrip(ctx, wire)
		if err != nil {
			if attempts < cfg.MaxRetries {
				wait := calculateBackoff(baseBackoff, attempts)
				re.bridge.log.Debug().Err(err).Dur("wait", wait).Int("attempt", attempts+1).Msg("transport error, retrying")
				if serr := sleepContext(ctx, wait); serr != nil {
					return nil, serr
				}
				attempts++
				continue
			}
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempts < cfg.MaxRetries {
			wait := internal.ParseRetryAfter(resp.Headers["retry-after"], time.Now())
			if wait == 0 {
				wait = calculateBackoff(baseBackoff, attempts)
			}
			re.bridge.log.Debug().Dur("wait", wait).Int("attempt", attempts+1).Msg("rate limited, retrying")
			if serr := sleepContext(ctx, wait); serr != nil {
				return nil, serr
			}
			attempts++
			continue
		}

		if resp.StatusCode >= 500 && attempts < cfg.MaxRetries {
			wait := calculateBackoff(baseBackoff, attempts)
			re.bridge.log.Debug().Int("status", resp.StatusCode).Dur("wait", wait).Int("attempt", attempts+1).Msg("server error, retrying")
			if serr := sleepContext(ctx, wait); serr != nil {
				return nil, serr
			}
			attempts++
			continue
		}

		return resp, nil
	}
}

// cacheRead loads and decodes a CacheValue. Store errors and corrupt
// entries count as misses: resilience reads must never introduce new
// failure modes.
func (re *RequestExecutor) cacheRead(ctx context.Context, key string, maxAge time.Duration) (CacheValue, bool) {
	raw, ok, err := re.bridge.cfg.Cache.Get(ctx, key, maxAge)
	if err != nil {
		re.bridge.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return CacheValue{}, false
	}
	if !ok {
		return CacheValue{}, false
	}
	var val CacheValue
	if err := val.UnmarshalBinary(raw); err != nil {
		re.bridge.log.Warn().Err(err).Str("key", key).Msg("corrupt cache entry")
		return CacheValue{}, false
	}
	return val, true
}

// cacheWrite stores a fresh result. Failures are logged and swallowed.
func (re *RequestExecutor) cacheWrite(ctx context.Context, key string, res *Result) {
	raw, err := CacheValue{Mime: res.Mime, Body: res.Body}.MarshalBinary()
	if err != nil {
		re.bridge.log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := re.bridge.cfg.Cache.Put(ctx, key, raw); err != nil {
		re.bridge.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		return
	}
	re.bridge.log.Trace().Str("key", key).Int("bytes", len(raw)).Msg("cache write")
}

// encoderFor returns the first registered encoder matching mime, or nil so
// body materialization can apply its own JSON fallback.
func (re *RequestExecutor) encoderFor(mime MimeType) Encoder {
	for _, b := range re.bridge.cfg.Encoders {
		if b.Mime.Matches(mime) {
			return b.Encoder
		}
	}
	return nil
}

func (re *RequestExecutor) applyAuth(ctx context.Context, headers map[string]string) error {
	auth := re.bridge.cfg.Auth
	if auth == nil {
		return nil
	}
	// An explicit Authorization header wins over the configured provider.
	if _, exists := headers["Authorization"]; exists {
		return nil
	}
	token, err := auth.Token(ctx)
	if err != nil {
		return &GenericError{Message: "acquire auth token", Err: err}
	}
	headers["Authorization"] = "Bearer " + token
	return nil
}

// applyHeaders copies src into dst with canonicalized names; later calls
// override earlier ones.
func applyHeaders(dst, src map[string]string) {
	for k, v := range src {
		dst[http.CanonicalHeaderKey(k)] = v
	}
}

// calculateBackoff doubles the base delay per attempt, capped at 30s. The
// shift is clamped and an overflowed product counts as the cap.
func calculateBackoff(base time.Duration, attempt int) time.Duration {
	const maxBackoff = 30 * time.Second
	if attempt > 30 {
		attempt = 30
	}
	backoff := base * (1 << attempt)
	if backoff <= 0 || backoff > maxBackoff {
		backoff = maxBackoff
	}
	return backoff
}

// sleepContext waits for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
