package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaType(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		tests := []struct {
			name     string
			input    SchemaType
			expected string
		}{
			{"single type marshals as string", TypeString("string"), `"string"`},
			{"multiple types marshal as array", TypeArray("string", "null"), `["string","null"]`},
			{"empty type marshals as null", SchemaType{}, "null"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				data, err := json.Marshal(tt.input)
				require.NoError(t, err)
				assert.JSONEq(t, tt.expected, string(data))
			})
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		tests := []struct {
			name     string
			input    string
			expected []string
			wantErr  bool
		}{
			{"single string", `"integer"`, []string{"integer"}, false},
			{"array", `["string","null"]`, []string{"string", "null"}, false},
			{"invalid", `123`, nil, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var st SchemaType
				err := json.Unmarshal([]byte(tt.input), &st)
				if tt.wantErr {
					assert.Error(t, err)
				} else {
					require.NoError(t, err)
					assert.Equal(t, tt.expected, st.Values())
				}
			})
		}
	})

	t.Run("IsZero", func(t *testing.T) {
		var empty SchemaType
		assert.True(t, empty.IsZero())
		assert.False(t, TypeString("string").IsZero())
	})
}

func TestSchemaJSON(t *testing.T) {
	tests := []struct {
		name     string
		schema   *Schema
		expected string
	}{
		{
			name:     "ref only",
			schema:   &Schema{Ref: "#/components/schemas/Pet"},
			expected: `{"$ref":"#/components/schemas/Pet"}`,
		},
		{
			name:     "empty type omitted",
			schema:   &Schema{},
			expected: `{}`,
		},
		{
			name:     "enum",
			schema:   &Schema{Type: TypeString("string"), Enum: []any{"a", "b"}},
			expected: `{"type":"string","enum":["a","b"]}`,
		},
		{
			name: "ordered properties",
			schema: func() *Schema {
				props := NewOrderedMap[*Schema]()
				props.Set("zeta", &Schema{Type: TypeString("string")})
				props.Set("alpha", &Schema{Type: TypeString("integer")})
				return &Schema{Type: TypeString("object"), Properties: props, Required: []string{"zeta"}}
			}(),
			expected: `{"type":"object","properties":{"zeta":{"type":"string"},"alpha":{"type":"integer"}},"required":["zeta"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.schema)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestOperationJSON(t *testing.T) {
	responses := NewOrderedMap[*Response]()
	responses.Set("200", &Response{Description: "OK"})
	responses.Set("default", &Response{Description: "Default response"})

	op := &Operation{
		Tags:        []string{"pet"},
		Summary:     "Find pet by ID",
		OperationID: "getPetById",
		Parameters: []*Parameter{
			{Name: "petId", In: "path", Required: true, Schema: &Schema{Type: TypeString("integer")}},
		},
		Responses:  responses,
		Deprecated: true,
	}

	data, err := json.Marshal(op)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "getPetById", parsed["operationId"])
	assert.Equal(t, true, parsed["deprecated"])
	assert.Contains(t, string(data), `"responses":{"200":{"description":"OK"},"default":{"description":"Default response"}}`)
}

func TestPathItemOperations(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, (&PathItem{}).Operations())
	})

	t.Run("document order", func(t *testing.T) {
		get := &Operation{OperationID: "get"}
		post := &Operation{OperationID: "post"}
		trace := &Operation{OperationID: "trace"}
		item := &PathItem{Trace: trace, Post: post, Get: get}
		assert.Equal(t, []*Operation{get, post, trace}, item.Operations())
	})

	t.Run("json keys", func(t *testing.T) {
		item := &PathItem{Get: &Operation{}, Delete: &Operation{}}
		data, err := json.Marshal(item)
		require.NoError(t, err)
		assert.JSONEq(t, `{"get":{},"delete":{}}`, string(data))
	})
}

func TestDocumentJSON(t *testing.T) {
	doc := Document{
		OpenAPI: Version,
		Info: Info{
			Title:   "Test API",
			Version: "1.0.0",
			License: &License{Name: "MIT"},
		},
		Servers: []Server{{URL: "http://localhost:7000"}},
		Components: &Components{
			SecuritySchemes: map[string]*SecurityScheme{
				"api_key": {Type: "apiKey", Name: "api_key", In: "header"},
			},
		},
		Security: []SecurityRequirement{{"api_key": {}}},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "3.1.0", parsed["openapi"])
	assert.NotContains(t, parsed, "paths")
	assert.NotContains(t, parsed, "tags")

	info := parsed["info"].(map[string]any)
	assert.Equal(t, "Test API", info["title"])
	assert.Equal(t, "MIT", info["license"].(map[string]any)["name"])
}
