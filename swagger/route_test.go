package swagger

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/routedoc/openapi"
	"github.com/vitalvas/routedoc/web"
)

func TestRouteSecurity(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		assert.Nil(t, NewRoute().security)
	})

	t.Run("empty call marks public", func(t *testing.T) {
		r := NewRoute().Security()
		assert.NotNil(t, r.security)
		assert.Empty(t, r.security)
	})
}

func TestRouteTagsAccumulate(t *testing.T) {
	r := NewRoute().Tags("pet").Tags("store")
	assert.Equal(t, []string{"pet", "store"}, r.tags)
}

func TestContent(t *testing.T) {
	var nilContent *Content
	assert.Equal(t, 0, nilContent.Len())

	zero := &Content{}
	assert.Equal(t, 0, zero.Len())
	zero.Entry(Mime(MimeJSON).Type(pet{}))
	assert.Equal(t, 1, zero.Len())

	c := NewContent(Mime(MimeJSON).Type(pet{}), nil)
	assert.Equal(t, 1, c.Len())

	c.Entry(Mime(MimeJSON).Type(category{}), Mime("application/xml").Type(pet{}))
	assert.Equal(t, 2, c.Len())

	entry, ok := c.entries.Get(MimeJSON)
	require.True(t, ok)
	assert.Equal(t, category{}, entry.typ)
}

func TestResponseDescription(t *testing.T) {
	assert.Equal(t, "OK", responseDescription("200"))
	assert.Equal(t, "Not Found", responseDescription("404"))
	assert.Equal(t, "Default response", responseDescription(StatusDefault))
	assert.Equal(t, "299", responseDescription("299"))
}

func TestResponseValidate(t *testing.T) {
	assert.NoError(t, Status(http.StatusOK).validate())
	assert.NoError(t, DefaultStatus().validate())
	assert.NoError(t, Status(599).validate())
	assert.ErrorIs(t, Status(99).validate(), ErrInvalidStatus)
	assert.ErrorIs(t, Status(600).validate(), ErrInvalidStatus)
}

func TestGroup(t *testing.T) {
	secured := []openapi.SecurityRequirement{{"petstore_auth": {"write:pets"}}}

	pets := NewGroup().
		Tags("pet").
		Security(secured...).
		Param(HeaderParam("X-Request-ID")).
		Response(DefaultStatus().Description("Unexpected error"))

	t.Run("defaults", func(t *testing.T) {
		doc, err := Build(nil, []Endpoint{{
			Method: web.HandlerGet,
			Path:   "/pet/:petId",
			Route: pets.Route().
				Param(PathParam("petId")).
				Response(Status(http.StatusOK).JSON(pet{})),
		}}, BuildConfig{})
		require.NoError(t, err)

		op := doc.Paths["/pet/{petId}"].Get
		assert.Equal(t, []string{"pet"}, op.Tags)
		assert.Equal(t, secured, op.Security)
		require.Len(t, op.Parameters, 2)
		assert.Equal(t, "X-Request-ID", op.Parameters[0].Name)
		assert.Equal(t, "petId", op.Parameters[1].Name)
		assert.Equal(t, []string{"default", "200"}, op.Responses.Keys())
	})

	t.Run("route overrides", func(t *testing.T) {
		r := pets.Route().
			Tags("store").
			Security().
			Response(DefaultStatus().Description("Error"))

		assert.Equal(t, []string{"pet", "store"}, r.tags)
		assert.Empty(t, r.security)
		assert.NotNil(t, r.security)

		def, ok := r.responses.Get(StatusDefault)
		require.True(t, ok)
		assert.Equal(t, "Error", def.description)
	})

	t.Run("route overrides params", func(t *testing.T) {
		paged := NewGroup().Param(QueryParam("limit"), QueryParam("offset"))

		doc, err := Build(nil, []Endpoint{{
			Method: web.HandlerGet,
			Path:   "/pet",
			Route:  paged.Route().Param(QueryParam("limit").Type(int64(0)).Required(true)),
		}}, BuildConfig{})
		require.NoError(t, err)

		params := doc.Paths["/pet"].Get.Parameters
		require.Len(t, params, 2)
		assert.Equal(t, "limit", params[0].Name)
		assert.True(t, params[0].Required)
		assert.Equal(t, openapi.TypeString("integer"), params[0].Schema.Type)
		assert.Equal(t, "offset", params[1].Name)
		assert.Equal(t, openapi.TypeString("string"), params[1].Schema.Type)

		require.Len(t, paged.params, 2)
		assert.False(t, paged.params[0].required, "group default stays untouched")
	})

	t.Run("routes do not share state", func(t *testing.T) {
		a := pets.Route().Tags("a")
		b := pets.Route()

		assert.Equal(t, []string{"pet", "a"}, a.tags)
		assert.Equal(t, []string{"pet"}, b.tags)
		assert.Equal(t, []string{"pet"}, pets.tags)
	})

	t.Run("deprecated", func(t *testing.T) {
		r := NewGroup().Deprecated().Route()
		assert.True(t, r.deprecated)
		assert.Nil(t, r.security)
	})
}
