package swagger

import "github.com/vitalvas/routedoc/openapi"

// MimeJSON is the media type used by the JSON shortcuts.
const MimeJSON = "application/json"

// Content maps media types to their documented payloads. Adding an entry
// for a media type that is already present replaces it.
//
// See: https://spec.openapis.org/oas/v3.1.0#media-type-object
type Content struct {
	entries *openapi.OrderedMap[*ContentEntry]
}

// NewContent creates a content block with the given entries.
func NewContent(entries ...*ContentEntry) *Content {
	c := &Content{entries: openapi.NewOrderedMap[*ContentEntry]()}
	return c.Entry(entries...)
}

// JSON is a shortcut for a content block with a single application/json
// entry of type v.
func JSON(v any) *Content {
	return NewContent(Mime(MimeJSON).Type(v))
}

// Entry adds entries to the content block.
func (c *Content) Entry(entries ...*ContentEntry) *Content {
	if c.entries == nil {
		c.entries = openapi.NewOrderedMap[*ContentEntry]()
	}
	for _, e := range entries {
		if e != nil {
			c.entries.Set(e.mime, e)
		}
	}
	return c
}

// Len returns the number of media types.
func (c *Content) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// ContentEntry documents the payload of one media type.
type ContentEntry struct {
	mime     string
	typ      any
	example  any
	examples *openapi.OrderedMap[any]
}

// Mime starts a content entry for the given media type.
func Mime(mime string) *ContentEntry {
	return &ContentEntry{mime: mime}
}

// Type sets the type witness for the payload schema: a sample value, a
// reflect.Type or an *openapi.Schema.
func (e *ContentEntry) Type(v any) *ContentEntry {
	e.typ = v
	return e
}

// Example sets the example attached to the payload schema. For object
// types the example lands on the component schema, unless an earlier
// route already supplied one.
func (e *ContentEntry) Example(v any) *ContentEntry {
	e.example = v
	return e
}

// NamedExample adds a named example to the media type.
func (e *ContentEntry) NamedExample(name string, v any) *ContentEntry {
	if e.examples == nil {
		e.examples = openapi.NewOrderedMap[any]()
	}
	e.examples.Set(name, v)
	return e
}

// mediaTypes resolves every entry of c.
func mediaTypes(res *openapi.SchemaResolver, c *Content) map[string]*openapi.MediaType {
	if c.Len() == 0 {
		return nil
	}

	out := make(map[string]*openapi.MediaType, c.entries.Len())
	for mime, e := range c.entries.All() {
		mt := &openapi.MediaType{Schema: res.Resolve(e.typ, e.example)}
		if e.examples.Len() > 0 {
			mt.Examples = make(map[string]*openapi.Example, e.examples.Len())
			for name, v := range e.examples.All() {
				mt.Examples[name] = &openapi.Example{Value: v}
			}
		}
		out[mime] = mt
	}
	return out
}
