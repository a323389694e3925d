// mime.go
// -------
// MimeType models a media type string ("type/subtype", optionally followed
// by parameters such as charset) and implements the matching rule used to
// pick encoders and decoders out of the configured registries:
//
//   - all JSON-like types (subtype "json", "javascript", or a "+json"
//     suffix) are mutually interchangeable;
//   - otherwise two types match when their subtypes are equal,
//     case-insensitively.
package restbridge

import "strings"

// MimeType is a media type string such as "application/json" or
// "text/plain; charset=utf-8". Comparisons ignore parameters and case.
type MimeType string

// Media types the library itself produces or falls back to.
const (
	MimeJSON           MimeType = "application/json"
	MimeYAML           MimeType = "application/yaml"
	MimeFormURLEncoded MimeType = "application/x-www-form-urlencoded"
	MimeOctetStream    MimeType = "application/octet-stream"
	MimeTextPlain      MimeType = "text/plain"
)

// Type returns the top-level type ("application" in "application/json"),
// lowercased and with parameters stripped. Empty when m is malformed.
func (m MimeType) Type() string {
	t, _ := m.split()
	return t
}

// Subtype returns the subtype ("json" in "application/json"), lowercased and
// with parameters stripped. Empty when m is malformed.
func (m MimeType) Subtype() string {
	_, s := m.split()
	return s
}

func (m MimeType) split() (string, string) {
	media := string(m)
	if i := strings.IndexByte(media, ';'); i >= 0 {
		media = media[:i]
	}
	media = strings.ToLower(strings.TrimSpace(media))
	slash := strings.IndexByte(media, '/')
	if slash < 0 {
		return media, ""
	}
	return media[:slash], media[slash+1:]
}

// IsJSONLike reports whether m carries a JSON payload: a subtype of exactly
// "json" or "javascript", or one ending in "+json" (e.g.
// "application/vnd.api+json").
func (m MimeType) IsJSONLike() bool {
	sub := m.Subtype()
	return sub == "json" || sub == "javascript" || strings.HasSuffix(sub, "+json")
}

// Matches reports whether m and other select the same codec. JSON-like types
// all match each other; everything else matches on subtype equality only.
func (m MimeType) Matches(other MimeType) bool {
	if m.IsJSONLike() && other.IsJSONLike() {
		return true
	}
	sub := m.Subtype()
	return sub != "" && sub == other.Subtype()
}
