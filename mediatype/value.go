// Package mediatype parses parameterized media type strings such as the body
// of a Content-type or Content-disposition header field. It is the small
// collaborator the multipart and formdata packages share.
package mediatype

import (
	"fmt"
	"mime"
	"sort"
	"strings"
)

const (
	// Boundary is the name of the boundary parameter carried by a
	// multipart Content-type.
	Boundary = "boundary"

	// Name is the name of the name parameter carried by a form-data
	// Content-disposition.
	Name = "name"

	// Filename is the name of the filename parameter carried by a
	// Content-disposition.
	Filename = "filename"
)

// Value is a parsed parameterized media type: a primary value such as
// "multipart/form-data" plus its parameters. A Value is immutable.
type Value struct {
	v  string
	ps map[string]string
}

// Parse parses a media type string into a Value or returns an error. The
// primary value is lower-cased during parsing; parameter names are
// lower-cased too, parameter values are kept as given.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}
	return &Value{mt, ps}, nil
}

// New creates a Value with the given primary value and no parameters.
func New(v string) *Value {
	return &Value{v, map[string]string{}}
}

// Essence returns the primary value, e.g. "multipart/form-data".
func (v *Value) Essence() string {
	return v.v
}

// Type returns the part of the primary value before the slash, or an empty
// string if the primary value has no slash.
func (v *Value) Type() string {
	if ix := strings.IndexByte(v.v, '/'); ix >= 0 {
		return v.v[:ix]
	}
	return ""
}

// Subtype returns the part of the primary value after the slash, or an empty
// string if the primary value has no slash.
func (v *Value) Subtype() string {
	if ix := strings.IndexByte(v.v, '/'); ix >= 0 {
		return v.v[ix+1:]
	}
	return ""
}

// Parameter returns the value of the named parameter, or an empty string if
// the parameter is not set.
func (v *Value) Parameter(k string) string {
	return v.ps[k]
}

// Parameters returns the parameters as a map. Do not modify the returned
// map; make a copy first if you need to.
func (v *Value) Parameters() map[string]string {
	return v.ps
}

// String returns the serialized media type including the primary value and
// all parameters, with the parameters in sorted order.
func (v *Value) String() string {
	pks := make([]string, 0, len(v.ps))
	for k := range v.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)

	parts := make([]string, len(v.ps)+1)
	parts[0] = v.v
	for n, k := range pks {
		parts[n+1] = fmt.Sprintf("%s=%s", k, v.ps[k])
	}
	return strings.Join(parts, "; ")
}
