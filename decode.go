// decode.go
// ---------
// Typed decoding on top of raw Results. Methods cannot carry type
// parameters, so the generic helpers are package functions taking the
// bridge as their first argument.
package restbridge

import "context"

// DecodeResult decodes res.Body into v using the decoder registered for
// res.Mime. Decoding failures surface as *DecoderError.
func (sdk *RestBridge) DecodeResult(res *Result, v any) error {
	if res == nil {
		return &GenericError{Message: "no result to decode"}
	}
	dec, err := resolveDecoder(sdk.cfg.Decoders, res.Mime)
	if err != nil {
		return err
	}
	if err := dec.Decode(res.Body, v); err != nil {
		return &DecoderError{Mime: res.Mime, Err: err}
	}
	return nil
}

// As decodes a result into a value of type T.
func As[T any](sdk *RestBridge, res *Result) (T, error) {
	var v T
	if err := sdk.DecodeResult(res, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// DoAs executes req and decodes the result into T. A successful call with
// no body (HEAD, 204-style responses) is an error here: there is nothing
// to decode.
func DoAs[T any](ctx context.Context, sdk *RestBridge, req *Request) (T, error) {
	res, err := sdk.Do(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](sdk, res)
}

// GetAs is the typed counterpart of Get.
func GetAs[T any](ctx context.Context, sdk *RestBridge, route string, query QueryParameters, criteria *CacheCriteria) (T, error) {
	res, err := sdk.Get(ctx, route, query, criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](sdk, res)
}

// PostAs is the typed counterpart of Post.
func PostAs[T any](ctx context.Context, sdk *RestBridge, route string, query QueryParameters, body UploadBody) (T, error) {
	res, err := sdk.Post(ctx, route, query, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](sdk, res)
}
