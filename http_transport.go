package restbridge

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPTransport is the default Transport, backed by a net/http client. One
// instance is reused for every call of a bridge, with connection pooling
// handled by net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport builds a transport with standard pooling settings.
// insecureSkipVerify disables TLS certificate verification; leave it off
// outside of development setups.
func NewHTTPTransport(insecureSkipVerify bool) *HTTPTransport {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &HTTPTransport{client: &http.Client{Transport: transport}}
}

// WrapHTTPClient adapts an existing *http.Client, for callers that need
// custom redirect policy, cookies, or middleware.
func WrapHTTPClient(client *http.Client) *HTTPTransport {
	return &HTTPTransport{client: client}
}

// RoundTrip executes one exchange and reads the full response body into
// memory. A non-zero req.Timeout bounds the exchange via the context.
func (t *HTTPTransport) RoundTrip(ctx context.Context, req *WireRequest) (*WireResponse, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", req.URL, err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body from %s: %w", req.URL, err)
	}

	headers := make(map[string]string, len(resp.Header))
	for k, vals := range resp.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(k)] = vals[0]
		}
	}

	return &WireResponse{
		StatusCode:  resp.StatusCode,
		Message:     statusMessage(resp),
		Headers:     headers,
		Body:        data,
		ContentType: MimeType(resp.Header.Get("Content-Type")),
	}, nil
}

// statusMessage strips the numeric code from a status line like
// "404 Not Found".
func statusMessage(resp *http.Response) string {
	return strings.TrimPrefix(resp.Status, fmt.Sprintf("%d ", resp.StatusCode))
}
