// errors.go
// ---------
// The closed set of failure kinds a caller can receive. Callers branch on
// the concrete type with errors.As; the library never leaks raw transport or
// serialization errors without wrapping them in one of these.
package restbridge

import "fmt"

// GenericError is the catch-all kind: transport failures, absent results,
// and violated preconditions such as a relative route without a base URL.
type GenericError struct {
	Message string
	Err     error // underlying cause, if any
}

func (e *GenericError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenericError) Unwrap() error { return e.Err }

// UnrecognizedEncodingError reports that no encoder or decoder is registered
// for a MIME type and the built-in JSON fallback does not apply.
type UnrecognizedEncodingError struct {
	Mime MimeType
}

func (e *UnrecognizedEncodingError) Error() string {
	return fmt.Sprintf("no codec available for mime type %q", string(e.Mime))
}

// ResponseError is a completed HTTP exchange whose status falls outside the
// success family. The raw body and its MIME type are preserved so callers
// can decode structured error payloads.
type ResponseError struct {
	Status  Status
	Message string // status message as reported by the server
	Body    []byte
	Mime    MimeType
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d %s", int(e.Status), e.Message)
	}
	return fmt.Sprintf("server returned %s", e.Status)
}

// EncoderError wraps a serialization failure for the MIME type whose encoder
// rejected the value.
type EncoderError struct {
	Mime MimeType
	Err  error
}

func (e *EncoderError) Error() string {
	return fmt.Sprintf("encode %q body: %v", string(e.Mime), e.Err)
}

func (e *EncoderError) Unwrap() error { return e.Err }

// DecoderError wraps a deserialization failure: malformed payload or a
// payload that does not fit the target type.
type DecoderError struct {
	Mime MimeType
	Err  error
}

func (e *DecoderError) Error() string {
	return fmt.Sprintf("decode %q body: %v", string(e.Mime), e.Err)
}

func (e *DecoderError) Unwrap() error { return e.Err }
