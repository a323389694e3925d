package restbridge

import (
	"net/url"
	"strings"
)

// Param is a single name/value pair.
type Param struct {
	Name  string
	Value string
}

// QueryParameters is an ordered list of name/value pairs used for query
// strings and form bodies. Insertion order is preserved exactly: adding
// ("a","1"), ("b","2"), ("a","3") encodes to "a=1&b=2&a=3". Duplicate names
// produce duplicate entries, never overwrites. A nil value means "no
// parameters".
type QueryParameters []Param

// Add appends a pair and returns the extended list, so calls can be chained
// the way append is.
func (q QueryParameters) Add(name, value string) QueryParameters {
	return append(q, Param{Name: name, Value: value})
}

// Set removes every pair named name and appends a single new one.
func (q QueryParameters) Set(name, value string) QueryParameters {
	return q.Del(name).Add(name, value)
}

// Del returns the list without any pair named name.
func (q QueryParameters) Del(name string) QueryParameters {
	out := q[:0:0]
	for _, p := range q {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return out
}

// Get returns all values recorded for name, in insertion order.
func (q QueryParameters) Get(name string) []string {
	var values []string
	for _, p := range q {
		if p.Name == name {
			values = append(values, p.Value)
		}
	}
	return values
}

// Has reports whether at least one pair named name exists.
func (q QueryParameters) Has(name string) bool {
	for _, p := range q {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Encode renders the pairs as a percent-encoded query string in insertion
// order. url.Values is not used here because it would sort names.
func (q QueryParameters) Encode() string {
	var sb strings.Builder
	for i, p := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
