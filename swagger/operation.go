package swagger

import (
	"slices"

	"github.com/vitalvas/routedoc/openapi"
)

// buildOperation converts a route description into an Operation Object.
// Schemas of parameters and payloads are resolved through res, which
// registers object types as component schemas. pathParams are the
// parameter names of the path template; they become required string path
// parameters when inferPathParams is set and the route does not declare
// them itself.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
func buildOperation(res *openapi.SchemaResolver, route *Route, pathParams []string, inferPathParams bool) (*openapi.Operation, error) {
	op := &openapi.Operation{
		Tags:        slices.Clone(route.tags),
		Summary:     route.summary,
		Description: route.description,
		OperationID: route.operationID,
		Deprecated:  route.deprecated,
		Security:    route.security,
	}

	custom := make([]*openapi.Parameter, 0, len(route.params))
	for _, p := range route.params {
		if p == nil {
			continue
		}
		if err := p.validate(); err != nil {
			return nil, err
		}

		typ := p.typ
		if typ == nil {
			typ = ""
		}

		custom = append(custom, &openapi.Parameter{
			Name:        p.name,
			In:          string(p.in),
			Description: p.description,
			Required:    p.required,
			Deprecated:  p.deprecated,
			Schema:      res.Resolve(typ, p.example),
		})
	}

	var auto []*openapi.Parameter
	if inferPathParams {
		for _, name := range pathParams {
			auto = append(auto, &openapi.Parameter{
				Name:     name,
				In:       string(InPath),
				Required: true,
				Schema:   &openapi.Schema{Type: openapi.TypeString("string")},
			})
		}
	}
	op.Parameters = mergeParameters(auto, custom)

	if route.request != nil {
		required := true
		if route.requestRequired != nil {
			required = *route.requestRequired
		}
		op.RequestBody = &openapi.RequestBody{
			Description: route.requestDescription,
			Required:    required,
			Content:     mediaTypes(res, route.request),
		}
	}

	if route.responses.Len() > 0 {
		op.Responses = openapi.NewOrderedMap[*openapi.Response]()
		for status, entry := range route.responses.All() {
			if err := entry.validate(); err != nil {
				return nil, err
			}
			op.Responses.Set(status, entry.build(res))
		}
	}

	return op, nil
}

// mergeParameters combines inferred path parameters with declared
// parameters. Declared parameters with the same name+in replace the
// inferred ones.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object (parameters)
func mergeParameters(auto, custom []*openapi.Parameter) []*openapi.Parameter {
	if len(auto) == 0 && len(custom) == 0 {
		return nil
	}

	overrides := make(map[[2]string]struct{}, len(custom))
	for _, p := range custom {
		overrides[[2]string{p.Name, p.In}] = struct{}{}
	}

	var merged []*openapi.Parameter
	for _, p := range auto {
		if _, ok := overrides[[2]string{p.Name, p.In}]; !ok {
			merged = append(merged, p)
		}
	}

	return append(merged, custom...)
}
