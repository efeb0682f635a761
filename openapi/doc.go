// Package openapi provides the OpenAPI v3.1.0 object model and the reflection
// based schema resolver used to document routes.
//
// The package targets the OpenAPI Specification v3.1.0 and uses JSON Schema
// Draft 2020-12 for schema generation.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-validation
//
// # Schema Resolution
//
// A SchemaResolver turns Go types into schemas. Scalars, well-known types and
// enumerations are inlined; named struct types are stored once in the
// resolver's registry and referenced with $ref:
//
//	r := openapi.NewSchemaResolver(openapi.ResolverConfig{})
//	ref := r.Resolve(Pet{}, nil) // {$ref: "#/components/schemas/Pet"}
//	doc.Components.Schemas = r.Schemas()
//
// Type mappings:
//
//	bool                      -> boolean
//	int, int64, uint, uint64  -> integer (int64)
//	int8..int32, uint8..32    -> integer (int32)
//	float32                   -> number (float)
//	float64                   -> number (double)
//	string                    -> string
//	time.Time                 -> string (date-time)
//	uuid.UUID                 -> string (uuid)
//	[]byte                    -> string (byte)
//	[]T, [N]T                 -> array with items T
//	[]any                     -> array without items
//	map[string]T              -> object with additionalProperties T
//	struct                    -> $ref to a component schema
//	*T                        -> same as T
//
// # Documented Properties
//
// Only struct fields carrying an `openapi` tag become properties. The name
// comes from the `json` tag; the `openapi` tag carries the required flag and
// constraints:
//
//	type Pet struct {
//	    ID     int64     `json:"id" openapi:""`
//	    Name   string    `json:"name" openapi:"required,example=doggie"`
//	    Status PetStatus `json:"status" openapi:"description=pet status in the store"`
//	    cache  string
//	}
//
// Supported tag keys: required, description, example, default, format,
// title, minimum, maximum, multipleOf, minLength, maxLength, pattern,
// minItems, maxItems, uniqueItems, enum (pipe separated), deprecated,
// readOnly, writeOnly.
//
// Types that cannot be tagged, or that expose properties through accessor
// methods, implement PropertyDescriber instead:
//
//	func (Pet) OpenAPIProperties() []openapi.Property {
//	    return []openapi.Property{
//	        {Field: "ID", Name: "id"},
//	        {Method: "GetPhotoUrls"}, // -> "photoUrls"
//	    }
//	}
//
// # Enumerations
//
// A type implementing Enumer is rendered inline as a string schema with the
// given values in order; Describer adds its description:
//
//	func (PetStatus) OpenAPIEnum() []any { return []any{"available", "pending", "sold"} }
//
// # Rendering
//
// Marshal renders a Document as YAML (default) or JSON with stable ordering.
package openapi
