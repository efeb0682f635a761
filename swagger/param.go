package swagger

import (
	"fmt"
	"slices"

	"golang.org/x/net/http/httpguts"
)

// Location is the place of a parameter in the request.
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-locations
type Location string

const (
	InPath   Location = "path"
	InQuery  Location = "query"
	InHeader Location = "header"
	InCookie Location = "cookie"
)

func (l Location) valid() bool {
	switch l {
	case InPath, InQuery, InHeader, InCookie:
		return true
	}
	return false
}

// Param documents one operation parameter. A parameter without a type is
// documented as a string.
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-object
type Param struct {
	name        string
	in          Location
	description string
	required    bool
	deprecated  bool
	typ         any
	example     any
}

// NewParam creates a parameter with the given name and location.
func NewParam(name string, in Location) *Param {
	return &Param{name: name, in: in}
}

// PathParam creates a path parameter. Path parameters are always required.
func PathParam(name string) *Param {
	return &Param{name: name, in: InPath, required: true}
}

// QueryParam creates a query parameter.
func QueryParam(name string) *Param {
	return NewParam(name, InQuery)
}

// HeaderParam creates a header parameter. The name must be a valid HTTP
// header field name.
func HeaderParam(name string) *Param {
	return NewParam(name, InHeader)
}

// CookieParam creates a cookie parameter.
func CookieParam(name string) *Param {
	return NewParam(name, InCookie)
}

// Description sets the parameter description.
func (p *Param) Description(d string) *Param {
	p.description = d
	return p
}

// Required sets whether the parameter is mandatory.
func (p *Param) Required(required bool) *Param {
	p.required = required
	return p
}

// Deprecated marks the parameter as deprecated.
func (p *Param) Deprecated() *Param {
	p.deprecated = true
	return p
}

// Type sets the type witness used for the parameter schema: a sample
// value, a reflect.Type or an *openapi.Schema.
func (p *Param) Type(v any) *Param {
	p.typ = v
	return p
}

// Example sets an example value attached to the parameter schema.
func (p *Param) Example(v any) *Param {
	p.example = v
	return p
}

// addParams appends params to dst, replacing entries that share a name and
// location.
func addParams(dst, params []*Param) []*Param {
	for _, p := range params {
		if p == nil {
			continue
		}
		i := slices.IndexFunc(dst, func(q *Param) bool {
			return q.name == p.name && q.in == p.in
		})
		if i >= 0 {
			dst[i] = p
			continue
		}
		dst = append(dst, p)
	}
	return dst
}

func (p *Param) validate() error {
	if p.name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidParam)
	}
	if !p.in.valid() {
		return fmt.Errorf("%w: %q has unknown location %q", ErrInvalidParam, p.name, p.in)
	}
	if p.in == InHeader && !httpguts.ValidHeaderFieldName(p.name) {
		return fmt.Errorf("%w: %q", ErrInvalidHeaderName, p.name)
	}
	return nil
}
