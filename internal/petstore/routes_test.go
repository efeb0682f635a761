package petstore

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/routedoc/openapi"
	"github.com/vitalvas/routedoc/swagger"
	"github.com/vitalvas/routedoc/web"
)

func newTestApp(t *testing.T) (*web.App, *Store) {
	t.Helper()
	app := web.New(web.Config{Logger: slog.New(slog.DiscardHandler)})
	store := NewStore()
	Register(app, store)
	return app, store
}

func do(app *web.App, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestDocument(t *testing.T) {
	app, _ := newTestApp(t)

	doc, err := swagger.Build(
		Shell("Javalin petstore", "Test API on petstore", "1.0.0"),
		swagger.Endpoints(app.Routes()),
		swagger.BuildConfig{},
	)
	require.NoError(t, err)

	assert.Equal(t, "Javalin petstore", doc.Info.Title)
	assert.Equal(t, []openapi.Tag{{Name: "pet", Description: "Everything about your pets"}}, doc.Tags)
	assert.ElementsMatch(t,
		[]string{"/pet", "/pet/findByStatus", "/pet/findByTags", "/pet/{petId}"},
		keys(doc.Paths),
	)

	t.Run("add pet", func(t *testing.T) {
		post := doc.Paths["/pet"].Post
		require.NotNil(t, post)
		assert.Equal(t, "Add a new pet to the store", post.Summary)
		assert.Equal(t, []string{"pet"}, post.Tags)
		assert.Equal(t, "Pet object that needs to be added to the store", post.RequestBody.Description)
		assert.Equal(t, "#/components/schemas/Pet", post.RequestBody.Content[swagger.MimeJSON].Schema.Ref)
		assert.Equal(t, []string{"default", "200", "405"}, post.Responses.Keys())
	})

	t.Run("pet schema", func(t *testing.T) {
		pet := doc.Components.Schemas["Pet"]
		require.NotNil(t, pet)
		assert.Equal(t, []string{"id", "category", "name", "photoUrls", "tags", "status"}, pet.Properties.Keys())
		assert.Equal(t, []string{"name", "photoUrls"}, pet.Required)

		status, _ := pet.Properties.Get("status")
		assert.Equal(t, []any{"available", "pending", "sold"}, status.Enum)
		assert.Equal(t, "pet status in the store", status.Description)

		category, _ := pet.Properties.Get("category")
		assert.Equal(t, "#/components/schemas/Category", category.Ref)

		tags, _ := pet.Properties.Get("tags")
		assert.Equal(t, "#/components/schemas/Tag", tags.Items.Ref)

		example, ok := pet.Example.(Pet)
		require.True(t, ok)
		assert.Equal(t, "doggie", example.Name)
	})

	t.Run("find by status", func(t *testing.T) {
		get := doc.Paths["/pet/findByStatus"].Get
		require.Len(t, get.Parameters, 1)
		param := get.Parameters[0]
		assert.Equal(t, "status", param.Name)
		assert.Equal(t, "query", param.In)
		assert.True(t, param.Required)
		assert.Equal(t, []any{"available", "pending", "sold"}, param.Schema.Enum)
	})

	t.Run("find by tags", func(t *testing.T) {
		get := doc.Paths["/pet/findByTags"].Get
		assert.True(t, get.Deprecated)
		assert.Equal(t, openapi.TypeString("string"), get.Parameters[0].Schema.Type)
	})

	t.Run("pet by id", func(t *testing.T) {
		item := doc.Paths["/pet/{petId}"]
		require.NotNil(t, item.Get)
		require.NotNil(t, item.Delete)
		assert.Equal(t, []openapi.SecurityRequirement{{"api_key": {}}}, item.Delete.Security)
	})

	t.Run("one component per type", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"Pet", "Category", "Tag", "APIError"}, keys(doc.Components.Schemas))
		assert.Contains(t, doc.Components.SecuritySchemes, "api_key")
	})
}

func TestHandlers(t *testing.T) {
	app, store := newTestApp(t)

	t.Run("add", func(t *testing.T) {
		w := do(app, http.MethodPost, "/pet", `{"name":"doggie","photoUrls":[],"status":"available","tags":[{"name":"tag1"}]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var pet Pet
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pet))
		assert.Equal(t, int64(1), pet.ID)
		assert.Equal(t, "doggie", pet.Name)
	})

	t.Run("add invalid", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, do(app, http.MethodPost, "/pet", `{"photoUrls":[]}`).Code)
		assert.Equal(t, http.StatusMethodNotAllowed, do(app, http.MethodPost, "/pet", `{`).Code)
		assert.Equal(t, http.StatusMethodNotAllowed,
			do(app, http.MethodPost, "/pet", `{"name":"x","photoUrls":[],"status":"lost"}`).Code)
	})

	t.Run("get", func(t *testing.T) {
		w := do(app, http.MethodGet, "/pet/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		assert.Equal(t, http.StatusNotFound, do(app, http.MethodGet, "/pet/42", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(app, http.MethodGet, "/pet/abc", "").Code)
	})

	t.Run("update", func(t *testing.T) {
		w := do(app, http.MethodPut, "/pet", `{"id":1,"name":"doggie","photoUrls":[],"status":"sold"}`)
		require.Equal(t, http.StatusOK, w.Code)

		pet, err := store.Get(1)
		require.NoError(t, err)
		assert.Equal(t, StatusSold, pet.Status)

		assert.Equal(t, http.StatusNotFound,
			do(app, http.MethodPut, "/pet", `{"id":42,"name":"x","photoUrls":[]}`).Code)
		assert.Equal(t, http.StatusBadRequest,
			do(app, http.MethodPut, "/pet", `{"name":"x","photoUrls":[]}`).Code)
	})

	t.Run("find by status", func(t *testing.T) {
		w := do(app, http.MethodGet, "/pet/findByStatus?status=available,sold", "")
		require.Equal(t, http.StatusOK, w.Code)

		var pets []Pet
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pets))
		require.Len(t, pets, 1)
		assert.Equal(t, int64(1), pets[0].ID)

		assert.Equal(t, http.StatusBadRequest, do(app, http.MethodGet, "/pet/findByStatus", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(app, http.MethodGet, "/pet/findByStatus?status=lost", "").Code)
	})

	t.Run("find by tags", func(t *testing.T) {
		w := do(app, http.MethodGet, "/pet/findByTags?tags=tag1&tags=tag3", "")
		require.Equal(t, http.StatusOK, w.Code)

		var pets []Pet
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pets))
		assert.Len(t, pets, 1)

		assert.Equal(t, http.StatusBadRequest, do(app, http.MethodGet, "/pet/findByTags?tags=,", "").Code)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(app, http.MethodDelete, "/pet/1", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(app, http.MethodDelete, "/pet/1", "").Code)
	})
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
