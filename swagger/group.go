package swagger

import (
	"slices"

	"github.com/vitalvas/routedoc/openapi"
)

// Group provides shared documentation defaults for a logical group of
// routes. Groups are a documentation concept only and do not affect
// routing. Routes created through a group start with the group's tags,
// security, deprecation, parameters and responses, and may add or override
// them.
//
//	pets := swagger.NewGroup().
//	    Tags("pet").
//	    Response(swagger.DefaultStatus().Description("Unexpected error"))
//
//	app.Get("/pet/:id", swagger.Documented(pets.Route().Summary("Find pet"), h))
type Group struct {
	tags        []string
	security    []openapi.SecurityRequirement
	securitySet bool // distinguishes nil (inherit) from empty (public)
	deprecated  bool
	params      []*Param
	responses   []*ResponseEntry
}

// NewGroup creates a group without defaults.
func NewGroup() *Group {
	return &Group{}
}

// Tags appends default tags.
func (g *Group) Tags(tags ...string) *Group {
	g.tags = append(g.tags, tags...)
	return g
}

// Security sets the default security requirements. An empty call marks the
// group's operations as public.
func (g *Group) Security(reqs ...openapi.SecurityRequirement) *Group {
	g.security = reqs
	g.securitySet = true
	return g
}

// Deprecated marks every operation of the group as deprecated.
func (g *Group) Deprecated() *Group {
	g.deprecated = true
	return g
}

// Param adds default parameters. A parameter with the name and location of
// an earlier one replaces it.
func (g *Group) Param(params ...*Param) *Group {
	g.params = addParams(g.params, params)
	return g
}

// Response appends default responses.
func (g *Group) Response(entries ...*ResponseEntry) *Group {
	g.responses = append(g.responses, entries...)
	return g
}

// Route creates a route pre-populated with the group defaults.
func (g *Group) Route() *Route {
	r := NewRoute()
	r.tags = slices.Clone(g.tags)
	r.deprecated = g.deprecated
	r.Param(g.params...)
	if g.securitySet {
		r.Security(g.security...)
	}
	r.Response(g.responses...)
	return r
}
