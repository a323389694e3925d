// upload_body.go
// --------------
// UploadBody is a closed union over the request body variants. Exactly one
// variant is active per value; constructors fix the variant and materialize
// renders it into wire bytes plus the content type it implies. Variants may
// carry their own header overrides, which rank between the client defaults
// and the per-call headers.
package restbridge

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type bodyKind int

const (
	bodyEmpty bodyKind = iota
	bodyJSON
	bodyJSONCustom
	bodyForm
	bodyBinary
	bodyMultipart
)

// UploadBody is the request body of a call. The zero value is the empty
// body.
type UploadBody struct {
	kind    bodyKind
	value   any
	mime    MimeType
	fields  QueryParameters
	raw     []byte
	files   []FilePart
	headers map[string]string
}

// FilePart names a multipart field whose content is streamed from a file on
// disk. The part's file name is the base name of Path.
type FilePart struct {
	Field string
	Path  string
}

// EmptyBody returns a body that sends nothing and forces no content type.
func EmptyBody() UploadBody {
	return UploadBody{kind: bodyEmpty}
}

// JSONBody sends v serialized by the encoder registered for
// application/json (or the built-in JSON encoder).
func JSONBody(v any) UploadBody {
	return UploadBody{kind: bodyJSON, value: v}
}

// JSONBodyWithMime is JSONBody with the MIME type overridden, both for the
// encoder lookup and for the outgoing Content-Type.
func JSONBodyWithMime(v any, mime MimeType) UploadBody {
	return UploadBody{kind: bodyJSONCustom, value: v, mime: mime}
}

// FormBody sends the fields as an application/x-www-form-urlencoded body in
// their insertion order; duplicate names become duplicate fields.
func FormBody(fields QueryParameters) UploadBody {
	return UploadBody{kind: bodyForm, fields: fields}
}

// BinaryBody sends data verbatim as application/octet-stream.
func BinaryBody(data []byte) UploadBody {
	return UploadBody{kind: bodyBinary, raw: data}
}

// MultipartBody sends a multipart/form-data body: every field becomes a text
// part in order, every FilePart becomes a file part streamed from disk.
func MultipartBody(fields QueryParameters, files ...FilePart) UploadBody {
	return UploadBody{kind: bodyMultipart, fields: fields, files: files}
}

// WithHeaders returns a copy of b carrying header overrides that apply
// whenever this body is sent.
func (b UploadBody) WithHeaders(headers map[string]string) UploadBody {
	b.headers = headers
	return b
}

// IsEmpty reports whether b is the empty variant.
func (b UploadBody) IsEmpty() bool { return b.kind == bodyEmpty }

// materialize renders the body into wire bytes. lookup resolves a
// registered encoder for a MIME type and returns nil on a miss; JSON
// variants then fall back to the built-in JSON encoder, so a sparse registry
// never blocks a JSON upload. The returned content type is empty only for
// the empty variant.
func (b UploadBody) materialize(lookup func(MimeType) Encoder) (data []byte, contentType MimeType, headers map[string]string, err error) {
	switch b.kind {
	case bodyEmpty:
		return nil, "", b.headers, nil

	case bodyJSON:
		data, err = b.encodeValue(lookup, MimeJSON)
		return data, MimeJSON, b.headers, err

	case bodyJSONCustom:
		data, err = b.encodeValue(lookup, b.mime)
		return data, b.mime, b.headers, err

	case bodyForm:
		return []byte(b.fields.Encode()), MimeFormURLEncoded, b.headers, nil

	case bodyBinary:
		return b.raw, MimeOctetStream, b.headers, nil

	case bodyMultipart:
		data, contentType, err = b.buildMultipart()
		return data, contentType, b.headers, err
	}
	return nil, "", nil, &GenericError{Message: fmt.Sprintf("unknown body variant %d", int(b.kind))}
}

func (b UploadBody) encodeValue(lookup func(MimeType) Encoder, mime MimeType) ([]byte, error) {
	var enc Encoder
	if lookup != nil {
		enc = lookup(mime)
	}
	if enc == nil {
		enc = JSONCodec{}
	}
	data, err := enc.Encode(b.value)
	if err != nil {
		return nil, &EncoderError{Mime: mime, Err: err}
	}
	return data, nil
}

func (b UploadBody) buildMultipart() ([]byte, MimeType, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range b.fields {
		if err := w.WriteField(p.Name, p.Value); err != nil {
			return nil, "", &GenericError{Message: fmt.Sprintf("write multipart field %q", p.Name), Err: err}
		}
	}
	for _, fp := range b.files {
		if err := writeFilePart(w, fp); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", &GenericError{Message: "finish multipart body", Err: err}
	}
	return buf.Bytes(), MimeType(w.FormDataContentType()), nil
}

func writeFilePart(w *multipart.Writer, fp FilePart) error {
	f, err := os.Open(fp.Path)
	if err != nil {
		return &GenericError{Message: fmt.Sprintf("open multipart file for field %q", fp.Field), Err: err}
	}
	defer f.Close()
	part, err := w.CreateFormFile(fp.Field, filepath.Base(fp.Path))
	if err != nil {
		return &GenericError{Message: fmt.Sprintf("create multipart file part %q", fp.Field), Err: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return &GenericError{Message: fmt.Sprintf("stream multipart file for field %q", fp.Field), Err: err}
	}
	return nil
}
