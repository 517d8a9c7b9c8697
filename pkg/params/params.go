// Package params builds outgoing query strings. Absent optional values are
// never written, so a nil pointer or empty string stays off the wire.
package params

import (
	"net/url"
	"strconv"
	"strings"
)

// Ptr returns a pointer to v. Use it to set optional numeric and boolean fields.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Values accumulates query parameters.
type Values struct {
	v url.Values
}

// New returns an empty Values.
func New() *Values {
	return &Values{v: url.Values{}}
}

// Set always writes key, even when value is empty. Reserved for required fields.
func (p *Values) Set(key, value string) *Values {
	p.v.Set(key, value)
	return p
}

// String writes key when value is non-empty.
func (p *Values) String(key, value string) *Values {
	if value != "" {
		p.v.Set(key, value)
	}
	return p
}

// List writes key as a comma-joined list when values is non-empty.
func (p *Values) List(key string, values []string) *Values {
	if len(values) > 0 {
		p.v.Set(key, strings.Join(values, ","))
	}
	return p
}

// Int writes key when v is non-nil.
func (p *Values) Int(key string, v *int) *Values {
	if v != nil {
		p.v.Set(key, strconv.Itoa(*v))
	}
	return p
}

// Float writes key when v is non-nil.
func (p *Values) Float(key string, v *float64) *Values {
	if v != nil {
		p.v.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
	return p
}

// Bool writes key when v is non-nil.
func (p *Values) Bool(key string, v *bool) *Values {
	if v != nil {
		p.v.Set(key, strconv.FormatBool(*v))
	}
	return p
}

// Encode returns the url-encoded form, sorted by key.
func (p *Values) Encode() string {
	return p.v.Encode()
}

// URLValues returns a copy of the accumulated parameters.
func (p *Values) URLValues() url.Values {
	out := make(url.Values, len(p.v))
	for k, vs := range p.v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// Len returns the number of distinct keys.
func (p *Values) Len() int {
	return len(p.v)
}
