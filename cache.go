// cache.go
// --------
// The caching vocabulary: the five CachePolicy values, the per-call
// CacheCriteria selector, and CacheValue, the {mime type, body} unit that
// round-trips through a CacheStore.
//
// A policy has two independent arms. The pre-fetch arm decides when cached
// data is trusted over the network (freshness); the fallback arm decides
// when cached data is trusted over a failed fetch (resilience). Both arms
// share the same store and key.
package restbridge

import (
	"encoding/binary"
	"fmt"
	"time"
)

// CachePolicy selects how a call interacts with the cache. The zero value is
// UseAge.
type CachePolicy int

const (
	// UseAge serves a cached entry younger than MaxAge without touching the
	// network; otherwise it fetches and stores the fresh response.
	UseAge CachePolicy = iota
	// ReturnCacheElseLoad serves any cached entry regardless of age and only
	// fetches when the cache is empty.
	ReturnCacheElseLoad
	// ReloadReturnCacheIfError always fetches, and on failure serves any
	// cached entry regardless of age.
	ReloadReturnCacheIfError
	// UseAgeReturnCacheIfError always fetches, and on failure serves a
	// cached entry younger than MaxAge.
	UseAgeReturnCacheIfError
	// ReloadReturnCacheWithAgeCheckIfError always fetches, and on failure
	// serves a cached entry younger than MaxAge.
	ReloadReturnCacheWithAgeCheckIfError
)

func (p CachePolicy) String() string {
	switch p {
	case UseAge:
		return "useAge"
	case ReturnCacheElseLoad:
		return "returnCacheElseLoad"
	case ReloadReturnCacheIfError:
		return "reloadReturnCacheIfError"
	case UseAgeReturnCacheIfError:
		return "useAgeReturnCacheIfError"
	case ReloadReturnCacheWithAgeCheckIfError:
		return "reloadReturnCacheWithAgeCheckIfError"
	}
	return fmt.Sprintf("CachePolicy(%d)", int(p))
}

// CacheCriteria attaches a caching policy to a single call. When absent from
// a Request, caching is disabled for that call even if a store is
// configured. An empty Key means the fully resolved URL is the cache key.
type CacheCriteria struct {
	Policy CachePolicy
	MaxAge time.Duration
	Key    string
}

// prefetchAge returns the age bound for the cache read that happens before
// the network fetch, and whether this policy performs such a read at all. A
// zero bound means any age is acceptable.
func (c *CacheCriteria) prefetchAge() (time.Duration, bool) {
	switch c.Policy {
	case UseAge:
		return c.MaxAge, true
	case ReturnCacheElseLoad:
		return 0, true
	}
	return 0, false
}

// fallbackAge is the counterpart for the cache read that happens after a
// failed fetch. Policies whose pre-fetch read already ran never read again.
func (c *CacheCriteria) fallbackAge() (time.Duration, bool) {
	switch c.Policy {
	case ReloadReturnCacheIfError:
		return 0, true
	case UseAgeReturnCacheIfError, ReloadReturnCacheWithAgeCheckIfError:
		return c.MaxAge, true
	}
	return 0, false
}

// CacheValue is the persisted unit: the response body together with its MIME
// type. Values are written wholesale and read back bit-identical.
type CacheValue struct {
	Mime MimeType
	Body []byte
}

// envelope: 4-byte big-endian MIME length, MIME bytes, body bytes.
const cacheValueHeaderLen = 4

// MarshalBinary renders the value in the store envelope format.
func (v CacheValue) MarshalBinary() ([]byte, error) {
	mime := []byte(v.Mime)
	out := make([]byte, cacheValueHeaderLen+len(mime)+len(v.Body))
	binary.BigEndian.PutUint32(out, uint32(len(mime)))
	copy(out[cacheValueHeaderLen:], mime)
	copy(out[cacheValueHeaderLen+len(mime):], v.Body)
	return out, nil
}

// UnmarshalBinary parses the store envelope format.
func (v *CacheValue) UnmarshalBinary(data []byte) error {
	if len(data) < cacheValueHeaderLen {
		return fmt.Errorf("cache value too short: %d bytes", len(data))
	}
	mimeLen := int(binary.BigEndian.Uint32(data))
	if mimeLen < 0 || cacheValueHeaderLen+mimeLen > len(data) {
		return fmt.Errorf("cache value mime length %d exceeds %d available bytes", mimeLen, len(data)-cacheValueHeaderLen)
	}
	v.Mime = MimeType(data[cacheValueHeaderLen : cacheValueHeaderLen+mimeLen])
	v.Body = append([]byte(nil), data[cacheValueHeaderLen+mimeLen:]...)
	return nil
}
