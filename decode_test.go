package restbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResultJSONFallback(t *testing.T) {
	sdk := New(Config{})
	res := &Result{Mime: "application/vnd.api+json", Body: []byte(`{"name":"ada"}`)}

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, sdk.DecodeResult(res, &out))
	assert.Equal(t, "ada", out.Name)
}

func TestAsUsesRegisteredDecoder(t *testing.T) {
	sdk := New(Config{Decoders: []DecoderBinding{{Mime: MimeYAML, Decoder: YAMLCodec{}}}})
	res := &Result{Mime: "text/yaml", Body: []byte("name: ada\n")}

	out, err := As[map[string]string](sdk, res)
	require.NoError(t, err)
	assert.Equal(t, "ada", out["name"])
}

func TestDecodeResultUnrecognizedMime(t *testing.T) {
	sdk := New(Config{})
	res := &Result{Mime: "application/xml", Body: []byte("<x/>")}

	var out any
	err := sdk.DecodeResult(res, &out)
	var unrecognized *UnrecognizedEncodingError
	require.ErrorAs(t, err, &unrecognized)
	assert.Equal(t, MimeType("application/xml"), unrecognized.Mime)
}

func TestAsMalformedPayload(t *testing.T) {
	sdk := New(Config{})
	res := &Result{Mime: MimeJSON, Body: []byte(`{"name":`)}

	_, err := As[map[string]any](sdk, res)
	var decErr *DecoderError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, MimeJSON, decErr.Mime)
}

func TestAsNilResult(t *testing.T) {
	sdk := New(Config{})
	_, err := As[string](sdk, nil)
	var generic *GenericError
	require.ErrorAs(t, err, &generic)
}
