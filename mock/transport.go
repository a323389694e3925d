// Package mock provides scripted stand-ins for the bridge's pluggable
// pieces so tests can run without a network or a real store.
package mock

import (
	"context"
	"net/http"
	"sync"

	restbridge "github.com/opengovern/rest-bridge"
)

// Transport is a scripted restbridge.Transport. Each exchange is answered
// by Handler (or a canned 200 when Handler is nil), and every request is
// recorded for later inspection.
type Transport struct {
	Handler func(req *restbridge.WireRequest) (*restbridge.WireResponse, error)

	mu       sync.Mutex
	requests []*restbridge.WireRequest
}

func (t *Transport) RoundTrip(_ context.Context, req *restbridge.WireRequest) (*restbridge.WireResponse, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.mu.Unlock()
	if t.Handler == nil {
		return JSONResponse(200, `{"success":true}`), nil
	}
	return t.Handler(req)
}

// Calls reports how many exchanges the transport has served.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Requests returns the recorded requests in arrival order.
func (t *Transport) Requests() []*restbridge.WireRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*restbridge.WireRequest(nil), t.requests...)
}

// JSONResponse builds a wire response carrying a JSON body.
func JSONResponse(status int, body string) *restbridge.WireResponse {
	return &restbridge.WireResponse{
		StatusCode:  status,
		Message:     http.StatusText(status),
		Headers:     map[string]string{"content-type": "application/json"},
		Body:        []byte(body),
		ContentType: restbridge.MimeJSON,
	}
}
