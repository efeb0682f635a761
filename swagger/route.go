package swagger

import "github.com/vitalvas/routedoc/openapi"

// Route collects the documentation of one HTTP operation through a fluent
// API. It is read once when the document is built.
//
//	swagger.NewRoute().
//	    Summary("Find pet by ID").
//	    Tags("pet").
//	    Param(swagger.PathParam("petId").Type(int64(0))).
//	    Response(
//	        swagger.Status(http.StatusOK).JSON(Pet{}),
//	        swagger.Status(http.StatusNotFound).Description("Pet not found"),
//	    )
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type Route struct {
	description string
	summary     string
	operationID string
	tags        []string
	deprecated  bool
	security    []openapi.SecurityRequirement
	params      []*Param

	request            *Content
	requestDescription string
	requestRequired    *bool // nil = default (true)

	responses *openapi.OrderedMap[*ResponseEntry]
}

// NewRoute creates an empty route description.
func NewRoute() *Route {
	return &Route{responses: openapi.NewOrderedMap[*ResponseEntry]()}
}

// Description sets the operation description.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (description)
func (r *Route) Description(d string) *Route {
	r.description = d
	return r
}

// Summary sets the operation summary.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (summary)
func (r *Route) Summary(s string) *Route {
	r.summary = s
	return r
}

// OperationID sets the operation ID.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (operationId)
func (r *Route) OperationID(id string) *Route {
	r.operationID = id
	return r
}

// Tags adds one or more tags to the operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (tags)
func (r *Route) Tags(tags ...string) *Route {
	r.tags = append(r.tags, tags...)
	return r
}

// Deprecated marks the operation as deprecated.
func (r *Route) Deprecated() *Route {
	r.deprecated = true
	return r
}

// Security sets the operation security requirements. An empty call marks
// the operation as public.
func (r *Route) Security(reqs ...openapi.SecurityRequirement) *Route {
	if reqs == nil {
		reqs = []openapi.SecurityRequirement{}
	}
	r.security = reqs
	return r
}

// Param adds parameters. A parameter with the name and location of an
// earlier one replaces it in place, so names stay unique per location.
func (r *Route) Param(params ...*Param) *Route {
	r.params = addParams(r.params, params)
	return r
}

// Request sets the request body content.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
func (r *Route) Request(c *Content) *Route {
	r.request = c
	return r
}

// RequestDescription sets the request body description.
func (r *Route) RequestDescription(d string) *Route {
	r.requestDescription = d
	return r
}

// RequestRequired sets whether the request body is required.
// By default, request bodies are required.
func (r *Route) RequestRequired(required bool) *Route {
	r.requestRequired = &required
	return r
}

// Response adds response entries. Entries keep the order in which they
// were first added; adding a status again replaces the earlier entry in
// place.
//
// See: https://spec.openapis.org/oas/v3.1.0#responses-object
func (r *Route) Response(entries ...*ResponseEntry) *Route {
	if r.responses == nil {
		r.responses = openapi.NewOrderedMap[*ResponseEntry]()
	}
	for _, e := range entries {
		if e != nil {
			r.responses.Set(e.status, e)
		}
	}
	return r
}
