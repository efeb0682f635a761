package openapi

// Exampler can be implemented by types to provide an example value
// for the generated component schema. The value is used only when no
// example was supplied by the route description.
//
//	func (u User) OpenAPIExample() any {
//	    return User{ID: 1, Name: "Alice"}
//	}
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-9.5
type Exampler interface {
	OpenAPIExample() any
}

// Describer supplies a type-level description. It is read for enumerated
// types and for object schemas.
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-9.1
type Describer interface {
	OpenAPIDescription() string
}

// Enumer marks a type as enumerated. The returned values become the enum
// list of an inline string schema, in the order given.
//
//	type Status string
//
//	func (Status) OpenAPIEnum() []any { return []any{"available", "pending", "sold"} }
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.2
type Enumer interface {
	OpenAPIEnum() []any
}

// Property declares one documented property of an object type.
//
// Exactly one source of the property's type is used, in this order: Type (a
// sample value, reflect.Type or *Schema), Field (an exported struct field
// name) or Method (an exported method name; its first result is the type).
// When Name is empty it defaults to the field name, or to the method name
// with a leading "Get"/"Set" removed and the first letter lowercased.
type Property struct {
	Name        string
	Field       string
	Method      string
	Type        any
	Required    bool
	Description string
}

// PropertyDescriber supplies an explicit, ordered property table for an
// object type. Types implementing it are not scanned for struct tags.
//
//	func (Pet) OpenAPIProperties() []openapi.Property {
//	    return []openapi.Property{
//	        {Field: "ID", Name: "id"},
//	        {Field: "Name", Name: "name", Required: true},
//	    }
//	}
type PropertyDescriber interface {
	OpenAPIProperties() []Property
}
