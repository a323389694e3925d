// codec.go
// --------
// Built-in Encoder/Decoder implementations and the registry resolution rule:
// walk the configured bindings in order, first match wins; when nothing
// matches a JSON-like type, fall back to JSONCodec, so JSON always works
// even against an empty registry.
package restbridge

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// JSONCodec encodes and decodes application/json payloads with
// encoding/json. It is the built-in fallback for every JSON-like MIME type.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// YAMLCodec encodes and decodes YAML payloads. Register it under
// MimeYAML (or text/yaml) to handle APIs that speak YAML.
type YAMLCodec struct{}

func (YAMLCodec) Encode(v any) ([]byte, error) { return yaml.Marshal(v) }

func (YAMLCodec) Decode(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// BinaryCodec passes raw bytes through untouched. Encode accepts []byte or
// string; Decode fills a *[]byte.
type BinaryCodec struct{}

func (BinaryCodec) Encode(v any) ([]byte, error) {
	switch data := v.(type) {
	case []byte:
		return data, nil
	case string:
		return []byte(data), nil
	}
	return nil, fmt.Errorf("binary codec needs []byte or string, got %T", v)
}

func (BinaryCodec) Decode(data []byte, v any) error {
	target, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("binary codec needs *[]byte target, got %T", v)
	}
	*target = append([]byte(nil), data...)
	return nil
}

// resolveEncoder picks the first registered encoder whose MIME type matches,
// falling back to JSONCodec for JSON-like types.
func resolveEncoder(bindings []EncoderBinding, mime MimeType) (Encoder, error) {
	for _, b := range bindings {
		if b.Mime.Matches(mime) {
			return b.Encoder, nil
		}
	}
	if mime.IsJSONLike() {
		return JSONCodec{}, nil
	}
	return nil, &UnrecognizedEncodingError{Mime: mime}
}

// resolveDecoder is the decoding counterpart of resolveEncoder.
func resolveDecoder(bindings []DecoderBinding, mime MimeType) (Decoder, error) {
	for _, b := range bindings {
		if b.Mime.Matches(mime) {
			return b.Decoder, nil
		}
	}
	if mime.IsJSONLike() {
		return JSONCodec{}, nil
	}
	return nil, &UnrecognizedEncodingError{Mime: mime}
}
