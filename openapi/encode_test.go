package openapi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleDocument() *Document {
	props := NewOrderedMap[*Schema]()
	props.Set("name", &Schema{Type: TypeString("string"), Example: "doggie"})
	props.Set("id", &Schema{Type: TypeString("integer"), Format: "int64"})

	responses := NewOrderedMap[*Response]()
	responses.Set("200", &Response{
		Description: "OK",
		Content: map[string]*MediaType{
			"application/json": {Schema: &Schema{Ref: ComponentsPrefix + "Pet"}},
		},
	})
	responses.Set("default", &Response{Description: "Default response"})

	return &Document{
		OpenAPI: Version,
		Info:    Info{Title: "Swagger Petstore", Version: "1.0.0"},
		Paths: map[string]*PathItem{
			"/pet/{id}": {Get: &Operation{Summary: "Find pet <by> ID", Responses: responses}},
			"/pet":      {Post: &Operation{Summary: "Add pet"}},
		},
		Components: &Components{
			Schemas: map[string]*Schema{
				"Pet": {Type: TypeString("object"), Properties: props, Required: []string{"name"}},
			},
		},
	}
}

func TestMarshalYAML(t *testing.T) {
	data, err := Marshal(sampleDocument(), FormatYAML)
	require.NoError(t, err)
	out := string(data)

	t.Run("block style with two space indent", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out, "openapi: 3.1.0\n"))
		assert.Contains(t, out, "\ninfo:\n  title: Swagger Petstore\n")
		assert.NotContains(t, out, "{\"")
	})

	t.Run("status keys are quoted", func(t *testing.T) {
		assert.Contains(t, out, `"200":`)
		assert.Contains(t, out, "default:")
	})

	t.Run("paths sorted", func(t *testing.T) {
		assert.Less(t, strings.Index(out, "/pet:"), strings.Index(out, "/pet/{id}:"))
	})

	t.Run("properties keep declaration order", func(t *testing.T) {
		assert.Less(t, strings.Index(out, "name:"), strings.Index(out, "id:"))
	})

	t.Run("html is not escaped", func(t *testing.T) {
		assert.Contains(t, out, "Find pet <by> ID")
	})

	t.Run("round trip", func(t *testing.T) {
		var parsed map[string]any
		require.NoError(t, yaml.Unmarshal(data, &parsed))
		assert.Equal(t, "3.1.0", parsed["openapi"])

		paths := parsed["paths"].(map[string]any)
		get := paths["/pet/{id}"].(map[string]any)["get"].(map[string]any)
		responses := get["responses"].(map[string]any)
		assert.Contains(t, responses, "200")
		assert.Contains(t, responses, "default")
	})
}

func TestMarshalDefaultFormat(t *testing.T) {
	withDefault, err := Marshal(sampleDocument(), "")
	require.NoError(t, err)
	explicit, err := Marshal(sampleDocument(), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, string(explicit), string(withDefault))
}

func TestMarshalJSON(t *testing.T) {
	data, err := Marshal(sampleDocument(), FormatJSON)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "3.1.0", parsed["openapi"])
	assert.Contains(t, string(data), "\n  \"info\": {")
	assert.Contains(t, string(data), `"properties": {`+"\n"+`          "name"`)
}

func TestMarshalUnknownFormat(t *testing.T) {
	_, err := Marshal(sampleDocument(), Format("xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestMarshalStable(t *testing.T) {
	first, err := Marshal(sampleDocument(), FormatYAML)
	require.NoError(t, err)
	for range 5 {
		again, err := Marshal(sampleDocument(), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
