package openapi

import (
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ComponentsPrefix is the JSON pointer prefix of every component schema $ref.
const ComponentsPrefix = "#/components/schemas/"

var (
	timeType = reflect.TypeFor[time.Time]()
	uuidType = reflect.TypeFor[uuid.UUID]()
)

// ResolverConfig configures a SchemaResolver.
type ResolverConfig struct {
	// ArrayComponents additionally registers a pluralized array component
	// (e.g. "Pets" with items "#/components/schemas/Pet") whenever an array or
	// slice of an object type is resolved. The returned schema stays inline.
	ArrayComponents bool

	// Logger receives debug records about relaxed resolutions, such as a
	// collection whose element type cannot be determined. Nil discards them.
	Logger *slog.Logger
}

// SchemaResolver converts Go types to JSON Schema objects. Object types are
// stored once in the resolver's registry and referenced via $ref; primitive
// and enumerated types are always inlined. A resolver is meant to serve a
// single document build and is not safe for concurrent use.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
// See: https://spec.openapis.org/oas/v3.1.0#components-object (schemas)
type SchemaResolver struct {
	cfg       ResolverConfig
	logger    *slog.Logger
	schemas   map[string]*Schema
	typeNames map[reflect.Type]string // type -> chosen schema name
	nameTypes map[string]reflect.Type // schema name -> type that claimed it
}

// NewSchemaResolver creates a resolver with an empty registry.
func NewSchemaResolver(cfg ResolverConfig) *SchemaResolver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SchemaResolver{
		cfg:       cfg,
		logger:    logger,
		schemas:   make(map[string]*Schema),
		typeNames: make(map[reflect.Type]string),
		nameTypes: make(map[string]reflect.Type),
	}
}

// Schemas returns the registered component schemas keyed by schema name.
func (r *SchemaResolver) Schemas() map[string]*Schema {
	return r.schemas
}

// Resolve produces a schema for v. A *Schema is returned unchanged, a
// reflect.Type is resolved directly, and any other value is treated as a
// sample of its type. A non-nil example is attached to the resulting schema
// (for object types, to the component schema when it has none yet).
func (r *SchemaResolver) Resolve(v, example any) *Schema {
	switch t := v.(type) {
	case nil:
		return nil
	case *Schema:
		return t
	case reflect.Type:
		return r.ResolveType(t, example)
	}
	return r.ResolveType(reflect.TypeOf(v), example)
}

// ResolveType produces a schema for t. Resolution order: enumerated types,
// primitives and well-known types, arrays and slices, maps and interfaces,
// then object types via the registry. Channels and functions yield nil.
func (r *SchemaResolver) ResolveType(t reflect.Type, example any) *Schema {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if e, ok := implementation[Enumer](t); ok {
		schema := &Schema{
			Type:    TypeString("string"),
			Enum:    e.OpenAPIEnum(),
			Example: example,
		}
		if d, ok := implementation[Describer](t); ok {
			schema.Description = d.OpenAPIDescription()
		}
		return schema
	}

	if schema := primitiveSchema(t); schema != nil {
		schema.Example = example
		return schema
	}

	switch t.Kind() {
	case reflect.Array, reflect.Slice:
		return r.resolveArray(t, example)

	case reflect.Map:
		schema := &Schema{Type: TypeString("object"), Example: example}
		if t.Key().Kind() == reflect.String {
			schema.AdditionalProperties = r.ResolveType(t.Elem(), nil)
		}
		return schema

	case reflect.Interface:
		return &Schema{Example: example}

	case reflect.Struct:
		return r.resolveObject(t, example)
	}

	return nil
}

// primitiveSchema maps Go scalar kinds and well-known types to a type and
// format pair.
//
// See: https://spec.openapis.org/oas/v3.1.0#data-types
func primitiveSchema(t reflect.Type) *Schema {
	switch t {
	case timeType:
		return &Schema{Type: TypeString("string"), Format: "date-time"}
	case uuidType:
		return &Schema{Type: TypeString("string"), Format: "uuid"}
	}

	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: TypeString("boolean")}

	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return &Schema{Type: TypeString("integer"), Format: "int64"}

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &Schema{Type: TypeString("integer"), Format: "int32"}

	case reflect.Float32:
		return &Schema{Type: TypeString("number"), Format: "float"}

	case reflect.Float64:
		return &Schema{Type: TypeString("number"), Format: "double"}

	case reflect.String:
		return &Schema{Type: TypeString("string")}

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: TypeString("string"), Format: "byte"}
		}
	}

	return nil
}

// resolveArray builds an inline array schema. An element of interface kind
// carries no type information, so the array is left without an items
// constraint instead of failing.
func (r *SchemaResolver) resolveArray(t reflect.Type, example any) *Schema {
	schema := &Schema{Type: TypeString("array"), Example: example}

	elem := t.Elem()
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Interface {
		r.logger.Debug("collection element type is undetermined, items left unconstrained",
			slog.String("type", t.String()),
		)
		return schema
	}

	schema.Items = r.ResolveType(elem, nil)

	if r.cfg.ArrayComponents && schema.Items != nil && schema.Items.Ref != "" {
		name := Plural(strings.TrimPrefix(schema.Items.Ref, ComponentsPrefix))
		if _, taken := r.nameTypes[name]; !taken {
			r.nameTypes[name] = t
			r.schemas[name] = &Schema{
				Type:  TypeString("array"),
				Items: &Schema{Ref: schema.Items.Ref},
			}
		}
	}

	return schema
}

// resolveObject returns a $ref to the component schema of t, creating it on
// first use. The schema is registered before its properties are walked so
// that self-referencing types terminate.
func (r *SchemaResolver) resolveObject(t reflect.Type, example any) *Schema {
	name := r.schemaName(t)
	if name == "" {
		schema := &Schema{Type: TypeString("object"), Example: example}
		r.fillObject(schema, t)
		return schema
	}

	schema, ok := r.schemas[name]
	if !ok {
		schema = &Schema{Type: TypeString("object")}
		r.schemas[name] = schema
		r.fillObject(schema, t)

		if example == nil {
			if ex, ok := implementation[Exampler](t); ok {
				schema.Example = ex.OpenAPIExample()
			}
		}
	}

	if example != nil && schema.Example == nil {
		schema.Example = example
	}

	return &Schema{Ref: ComponentsPrefix + name}
}

// fillObject sets the description, properties and required list of an
// object schema. An explicit PropertyDescriber table wins over struct tags.
//
// See: https://json-schema.org/draft/2020-12/json-schema-core#section-10.3.2 (properties)
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.5.3 (required)
func (r *SchemaResolver) fillObject(schema *Schema, t reflect.Type) {
	if d, ok := implementation[Describer](t); ok {
		schema.Description = d.OpenAPIDescription()
	}

	props := NewOrderedMap[*Schema]()
	if pd, ok := implementation[PropertyDescriber](t); ok {
		for _, p := range pd.OpenAPIProperties() {
			name, prop := r.declaredProperty(t, p)
			if prop == nil {
				continue
			}
			props.Set(name, prop)
			if p.Required {
				schema.Required = append(schema.Required, name)
			}
		}
	} else {
		r.collectFields(t, props, &schema.Required)
	}

	if props.Len() > 0 {
		schema.Properties = props
	}
}

// declaredProperty resolves one entry of a property table.
func (r *SchemaResolver) declaredProperty(t reflect.Type, p Property) (string, *Schema) {
	name := p.Name
	var schema *Schema

	switch {
	case p.Type != nil:
		schema = r.Resolve(p.Type, nil)

	case p.Field != "":
		field, ok := t.FieldByName(p.Field)
		if !ok {
			r.logger.Debug("declared property field not found",
				slog.String("type", t.String()), slog.String("field", p.Field))
			return "", nil
		}
		if name == "" {
			name = p.Field
		}
		schema = r.ResolveType(field.Type, nil)

	case p.Method != "":
		method, ok := methodByName(t, p.Method)
		if !ok || method.Type.NumOut() == 0 {
			r.logger.Debug("declared property accessor not found",
				slog.String("type", t.String()), slog.String("method", p.Method))
			return "", nil
		}
		if name == "" {
			name = AccessorName(p.Method)
		}
		schema = r.ResolveType(method.Type.Out(0), nil)
	}

	if name == "" || schema == nil {
		return "", nil
	}

	if p.Description != "" {
		cp := *schema
		cp.Description = p.Description
		schema = &cp
	}
	return name, schema
}

// collectFields walks the exported fields of t in declaration order and
// keeps those carrying an `openapi` struct tag. Untagged embedded structs
// are flattened into the parent.
func (r *SchemaResolver) collectFields(t reflect.Type, props *OrderedMap[*Schema], required *[]string) {
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, documented := field.Tag.Lookup("openapi")

		if field.Anonymous && !documented {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				r.collectFields(ft, props, required)
			}
			continue
		}

		if !documented || tag == "-" {
			continue
		}

		name := jsonName(field.Tag.Get("json"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		schema := r.ResolveType(field.Type, nil)
		if schema == nil {
			continue
		}

		if applyOpenAPITag(schema, tag) {
			*required = append(*required, name)
		}
		props.Set(name, schema)
	}
}

func jsonName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// applyOpenAPITag parses the `openapi` struct tag, applies constraints to the
// schema and reports whether the property is marked required.
//
//	Name string `json:"name" openapi:"required,description=Pet name,example=doggie"`
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation
func applyOpenAPITag(schema *Schema, tag string) bool {
	var required bool

	for part := range strings.SplitSeq(tag, ",") {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if hasValue {
			value = strings.TrimSpace(value)
		}

		switch key {
		case "required":
			required = true
		case "description":
			schema.Description = value
		case "example":
			schema.Example = parseExampleValue(schema, value)
		case "default":
			schema.Default = parseExampleValue(schema, value)
		case "format":
			schema.Format = value
		case "title":
			schema.Title = value
		case "minimum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.Minimum = &v
			}
		case "maximum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.Maximum = &v
			}
		case "multipleOf":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.MultipleOf = &v
			}
		case "minLength":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MinLength = &v
			}
		case "maxLength":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MaxLength = &v
			}
		case "pattern":
			schema.Pattern = value
		case "minItems":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MinItems = &v
			}
		case "maxItems":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MaxItems = &v
			}
		case "uniqueItems":
			schema.UniqueItems = true
		case "enum":
			values := strings.Split(value, "|")
			schema.Enum = make([]any, len(values))
			for i, v := range values {
				schema.Enum[i] = v
			}
		case "deprecated":
			schema.Deprecated = true
		case "readOnly":
			schema.ReadOnly = true
		case "writeOnly":
			schema.WriteOnly = true
		}
	}

	return required
}

// parseExampleValue converts a string tag value to the Go type matching the
// schema's type field.
func parseExampleValue(schema *Schema, value string) any {
	types := schema.Type.Values()
	if len(types) == 0 {
		return value
	}

	switch types[0] {
	case "integer":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}

// schemaName returns a unique schema name for the given type. If two types
// from different packages share the same simple name (e.g., models.User and
// api.User), the second type gets a qualified name using its package's last
// path segment as a prefix (e.g., "ApiUser"). When the prefixed name still
// collides, a numeric suffix is appended (e.g., "ApiUser2"). Unnamed types
// return "".
//
// See: https://spec.openapis.org/oas/v3.1.0#components-object (schemas)
func (r *SchemaResolver) schemaName(t reflect.Type) string {
	simple := sanitizeSchemaName(t.Name())
	if simple == "" || t.PkgPath() == "" {
		return ""
	}

	if name, ok := r.typeNames[t]; ok {
		return name
	}

	name := simple
	if existing, ok := r.nameTypes[name]; ok && existing != t {
		name = pkgPrefix(t.PkgPath()) + simple
		if existing, ok := r.nameTypes[name]; ok && existing != t {
			base := name
			for i := 2; ; i++ {
				candidate := base + strconv.Itoa(i)
				if _, ok := r.nameTypes[candidate]; !ok {
					name = candidate
					break
				}
			}
		}
	}

	r.typeNames[t] = name
	r.nameTypes[name] = t
	return name
}

// pkgPrefix extracts the last segment of a Go package path and capitalizes
// it for use as a schema name prefix (e.g., "net/http" -> "Http").
func pkgPrefix(pkgPath string) string {
	if idx := strings.LastIndexByte(pkgPath, '/'); idx >= 0 {
		pkgPath = pkgPath[idx+1:]
	}
	if len(pkgPath) == 0 {
		return ""
	}
	pkgPath = strings.ReplaceAll(pkgPath, "-", "_")
	pkgPath = strings.ReplaceAll(pkgPath, ".", "_")
	return strings.ToUpper(pkgPath[:1]) + pkgPath[1:]
}

// sanitizeSchemaName cleans up Go type names for use as component schema
// keys. Generic type names like "Page[User]" become "PageUser", and
// "Page[[]User]" becomes "PageUserList". Package paths in type parameters
// are stripped.
func sanitizeSchemaName(name string) string {
	idx := strings.IndexByte(name, '[')
	if idx < 0 {
		return name
	}

	base := name[:idx]
	inner := name[idx+1 : len(name)-1]

	isList := strings.HasPrefix(inner, "[]")
	inner = strings.TrimPrefix(inner, "[]")

	if dot := strings.LastIndexByte(inner, '.'); dot >= 0 {
		inner = inner[dot+1:]
	}

	result := base + inner
	if isList {
		result += "List"
	}

	return result
}

// AccessorName normalizes an accessor method name into a property name:
// a leading "Get" or "Set" followed by an upper-case letter is removed and
// the first remaining letter is lowercased ("GetPhotoUrls" -> "photoUrls",
// "Settings" -> "settings").
func AccessorName(method string) string {
	for _, prefix := range []string{"Get", "Set", "get", "set"} {
		rest, ok := strings.CutPrefix(method, prefix)
		if !ok || rest == "" {
			continue
		}
		if first, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(first) {
			method = rest
			break
		}
	}

	first, size := utf8.DecodeRuneInString(method)
	if first == utf8.RuneError {
		return method
	}
	return string(unicode.ToLower(first)) + method[size:]
}

// Plural returns the English plural of a schema name, used for array
// component keys ("Pet" -> "Pets", "Category" -> "Categories").
func Plural(name string) string {
	switch {
	case name == "":
		return name
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"), strings.HasSuffix(name, "z"),
		strings.HasSuffix(name, "ch"), strings.HasSuffix(name, "sh"):
		return name + "es"
	case strings.HasSuffix(name, "y") && len(name) > 1 && !strings.ContainsRune("aeiouAEIOU", rune(name[len(name)-2])):
		return name[:len(name)-1] + "ies"
	}
	return name + "s"
}

// implementation reports whether t (or *t) implements T and returns a value
// whose methods can be called.
func implementation[T any](t reflect.Type) (T, bool) {
	if t.Kind() != reflect.Interface {
		if v, ok := reflect.Zero(t).Interface().(T); ok {
			return v, true
		}
	}
	v, ok := reflect.New(t).Interface().(T)
	return v, ok
}

func methodByName(t reflect.Type, name string) (reflect.Method, bool) {
	if m, ok := t.MethodByName(name); ok {
		return m, true
	}
	return reflect.PointerTo(t).MethodByName(name)
}
