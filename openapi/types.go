package openapi

import "encoding/json"

// Version is the OpenAPI version written when the document shell leaves it empty.
const Version = "3.1.0"

// Document represents the root of an OpenAPI v3.1.0 document. Info, Servers,
// Tags, Security and ExternalDocs are owned by the caller; Paths and
// Components.Schemas are computed from the documented routes.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
type Document struct {
	OpenAPI      string                `json:"openapi"`
	Info         Info                  `json:"info"`
	Servers      []Server              `json:"servers,omitempty"`
	Paths        map[string]*PathItem  `json:"paths,omitempty"`
	Components   *Components           `json:"components,omitempty"`
	Tags         []Tag                 `json:"tags,omitempty"`
	Security     []SecurityRequirement `json:"security,omitempty"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#info-object
type Info struct {
	Title          string   `json:"title"`
	Summary        string   `json:"summary,omitempty"`
	Description    string   `json:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty"`
	License        *License `json:"license,omitempty"`
	Version        string   `json:"version"`
}

// Contact represents contact information for the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#contact-object
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License represents license information for the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#license-object
type License struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Server represents a server.
//
// See: https://spec.openapis.org/oas/v3.1.0#server-object
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PathItem describes the operations available on a single path.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
type PathItem struct {
	Summary     string     `json:"summary,omitempty"`
	Description string     `json:"description,omitempty"`
	Get         *Operation `json:"get,omitempty"`
	Put         *Operation `json:"put,omitempty"`
	Post        *Operation `json:"post,omitempty"`
	Delete      *Operation `json:"delete,omitempty"`
	Options     *Operation `json:"options,omitempty"`
	Head        *Operation `json:"head,omitempty"`
	Patch       *Operation `json:"patch,omitempty"`
	Trace       *Operation `json:"trace,omitempty"`
}

// Operations returns the non-nil operations of the path item in
// document order.
func (p *PathItem) Operations() []*Operation {
	var ops []*Operation
	for _, op := range []*Operation{p.Get, p.Put, p.Post, p.Delete, p.Options, p.Head, p.Patch, p.Trace} {
		if op != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

// Operation describes a single API operation on a path.
// Responses keep the order in which they were declared.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type Operation struct {
	Tags        []string               `json:"tags,omitempty"`
	Summary     string                 `json:"summary,omitempty"`
	Description string                 `json:"description,omitempty"`
	OperationID string                 `json:"operationId,omitempty"`
	Parameters  []*Parameter           `json:"parameters,omitempty"`
	RequestBody *RequestBody           `json:"requestBody,omitempty"`
	Responses   *OrderedMap[*Response] `json:"responses,omitempty"`
	Deprecated  bool                   `json:"deprecated,omitempty"`
	Security    []SecurityRequirement  `json:"security,omitempty"`
}

// Parameter describes a single operation parameter.
// The "in" field determines the parameter location: "query", "header",
// "path", or "cookie". Parameters with the same name and location
// must be unique within an operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-object
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Deprecated  bool    `json:"deprecated,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

// RequestBody describes a single request body.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
type RequestBody struct {
	Description string                `json:"description,omitempty"`
	Required    bool                  `json:"required,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// Response describes a single response from an API operation.
// The description field is always emitted.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object
type Response struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// MediaType describes a media type with a schema and optional examples.
//
// See: https://spec.openapis.org/oas/v3.1.0#media-type-object
type MediaType struct {
	Schema   *Schema             `json:"schema,omitempty"`
	Example  any                 `json:"example,omitempty"`
	Examples map[string]*Example `json:"examples,omitempty"`
}

// SchemaType represents a JSON Schema type that can be a single string
// or an array of strings (per JSON Schema Draft 2020-12, section 6.1.1).
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.1
type SchemaType struct {
	value []string
}

// TypeString creates a SchemaType with a single type.
func TypeString(t string) SchemaType {
	return SchemaType{value: []string{t}}
}

// TypeArray creates a SchemaType with multiple types (e.g., ["string", "null"]).
func TypeArray(types ...string) SchemaType {
	return SchemaType{value: types}
}

// Values returns the underlying type values.
func (st SchemaType) Values() []string {
	return st.value
}

// IsZero reports whether the schema type is unset. Used by the omitzero
// JSON option and by yaml.v3 omitempty.
func (st SchemaType) IsZero() bool {
	return len(st.value) == 0
}

// MarshalJSON encodes the schema type as a JSON string (single type)
// or JSON array (multiple types).
func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st.value) == 1 {
		return json.Marshal(st.value[0])
	}
	return json.Marshal(st.value)
}

// UnmarshalJSON decodes the schema type from either a JSON string or array.
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		st.value = []string{single}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	st.value = arr
	return nil
}

// Schema represents a JSON Schema object used in OpenAPI v3.1.0.
// Properties keep declaration order.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
// See: https://json-schema.org/draft/2020-12/json-schema-validation
type Schema struct {
	Ref string `json:"$ref,omitempty"`

	Type   SchemaType `json:"type,omitzero"`
	Format string     `json:"format,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Example     any    `json:"example,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty"`
	WriteOnly   bool   `json:"writeOnly,omitempty"`

	MultipleOf *float64 `json:"multipleOf,omitempty"`
	Minimum    *float64 `json:"minimum,omitempty"`
	Maximum    *float64 `json:"maximum,omitempty"`

	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	Items       *Schema `json:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	Properties           *OrderedMap[*Schema] `json:"properties,omitempty"`
	AdditionalProperties *Schema              `json:"additionalProperties,omitempty"`
	Required             []string             `json:"required,omitempty"`

	Enum []any `json:"enum,omitempty"`
}

// Components holds reusable OpenAPI objects. Schemas are filled from the
// schema registry of the build; the other maps pass through from the shell.
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object
type Components struct {
	Schemas         map[string]*Schema         `json:"schemas,omitempty"`
	Responses       map[string]*Response       `json:"responses,omitempty"`
	Parameters      map[string]*Parameter      `json:"parameters,omitempty"`
	Examples        map[string]*Example        `json:"examples,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

// Tag adds metadata to a single tag used by Operation Objects.
//
// See: https://spec.openapis.org/oas/v3.1.0#tag-object
type Tag struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty"`
}

// SecurityRequirement lists required security schemes for an operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#security-requirement-object
type SecurityRequirement map[string][]string

// ExternalDocs allows referencing external documentation.
//
// See: https://spec.openapis.org/oas/v3.1.0#external-documentation-object
type ExternalDocs struct {
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// Example represents a named example value.
//
// See: https://spec.openapis.org/oas/v3.1.0#example-object
type Example struct {
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Value       any    `json:"value,omitempty"`
}

// SecurityScheme defines a security scheme used by API operations.
//
// See: https://spec.openapis.org/oas/v3.1.0#security-scheme-object
type SecurityScheme struct {
	Type         string `json:"type"`
	Description  string `json:"description,omitempty"`
	Name         string `json:"name,omitempty"`
	In           string `json:"in,omitempty"`
	Scheme       string `json:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty"`
}
