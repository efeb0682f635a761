package petstore

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/vitalvas/routedoc/openapi"
	"github.com/vitalvas/routedoc/swagger"
	"github.com/vitalvas/routedoc/web"
)

var (
	validate     = validator.New()
	queryDecoder = schema.NewDecoder()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// Shell returns the caller-owned part of the petstore document.
func Shell(title, description, version string) *openapi.Document {
	return &openapi.Document{
		Info: openapi.Info{
			Title:       title,
			Description: description,
			Version:     version,
		},
		Tags: []openapi.Tag{
			{Name: "pet", Description: "Everything about your pets"},
		},
		Components: &openapi.Components{
			SecuritySchemes: map[string]*openapi.SecurityScheme{
				"api_key": {Type: "apiKey", Name: "api_key", In: "header"},
			},
		},
	}
}

type handlers struct {
	store  *Store
	logger *slog.Logger
}

// Register adds the documented pet routes to the app.
func Register(app *web.App, store *Store) {
	h := &handlers{store: store, logger: app.Logger()}

	pets := swagger.NewGroup().
		Tags("pet").
		Response(swagger.DefaultStatus().Description("Unexpected error").JSON(APIError{}))

	examplePet := Pet{
		Category:  &Category{Name: "string"},
		Name:      "doggie",
		PhotoUrls: []string{"string"},
		Tags:      []Tag{{Name: "string"}},
		Status:    StatusAvailable,
	}

	app.Post("/pet", swagger.DocumentedFunc(
		pets.Route().
			Summary("Add a new pet to the store").
			OperationID("addPet").
			RequestDescription("Pet object that needs to be added to the store").
			Request(swagger.NewContent(
				swagger.Mime(swagger.MimeJSON).Type(Pet{}).Example(examplePet),
			)).
			Response(
				swagger.Status(http.StatusOK).Description("Successful operation").JSON(Pet{}),
				swagger.Status(http.StatusMethodNotAllowed).Description("Invalid input"),
			),
		h.addPet,
	))

	app.Put("/pet", swagger.DocumentedFunc(
		pets.Route().
			Summary("Update an existing pet").
			OperationID("updatePet").
			RequestDescription("Pet object that needs to be added to the store").
			Request(swagger.JSON(Pet{})).
			Response(
				swagger.Status(http.StatusOK).Description("Successful operation").JSON(Pet{}),
				swagger.Status(http.StatusMethodNotAllowed).Description("Validation exception"),
				swagger.Status(http.StatusBadRequest).Description("Invalid ID supplied"),
				swagger.Status(http.StatusNotFound).Description("Pet not found"),
			),
		h.updatePet,
	))

	app.Get("/pet/findByStatus", swagger.DocumentedFunc(
		pets.Route().
			Summary("Finds Pets by status").
			Description("Multiple status values can be provided with comma separated strings").
			OperationID("findPetsByStatus").
			Param(swagger.QueryParam("status").
				Description("Status values that need to be considered for filter").
				Type(PetStatus("")).
				Required(true)).
			Response(
				swagger.Status(http.StatusOK).Description("Successful operation").JSON([]Pet{}),
				swagger.Status(http.StatusBadRequest).Description("Invalid status value"),
			),
		h.findByStatus,
	))

	app.Get("/pet/findByTags", swagger.DocumentedFunc(
		pets.Route().
			Deprecated().
			Summary("Finds Pets by tags").
			Description("Multiple tags can be provided with comma separated strings. Use tag1, tag2, tag3 for testing.").
			OperationID("findPetsByTags").
			Param(swagger.QueryParam("tags").
				Description("Tags to filter by").
				Required(true)).
			Response(
				swagger.Status(http.StatusOK).Description("Successful operation").JSON([]Pet{}),
				swagger.Status(http.StatusBadRequest).Description("Invalid tag value"),
			),
		h.findByTags,
	))

	app.Get("/pet/:petId", swagger.DocumentedFunc(
		pets.Route().
			Summary("Find pet by ID").
			Description("Returns a single pet").
			OperationID("getPetById").
			Param(swagger.PathParam("petId").Description("ID of pet to return").Type(int64(0))).
			Response(
				swagger.Status(http.StatusOK).Description("Successful operation").JSON(Pet{}),
				swagger.Status(http.StatusBadRequest).Description("Invalid ID supplied"),
				swagger.Status(http.StatusNotFound).Description("Pet not found"),
			),
		h.getPet,
	))

	app.Delete("/pet/:petId", swagger.DocumentedFunc(
		pets.Route().
			Summary("Deletes a pet").
			OperationID("deletePet").
			Security(openapi.SecurityRequirement{"api_key": {}}).
			Param(
				swagger.HeaderParam("api_key"),
				swagger.PathParam("petId").Description("Pet id to delete").Type(int64(0)),
			).
			Response(
				swagger.Status(http.StatusNoContent).Description("Pet deleted"),
				swagger.Status(http.StatusBadRequest).Description("Invalid pet value"),
			),
		h.deletePet,
	))
}

func (h *handlers) addPet(w http.ResponseWriter, r *http.Request) {
	pet, ok := h.decodePet(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.store.Add(pet))
}

func (h *handlers) updatePet(w http.ResponseWriter, r *http.Request) {
	pet, ok := h.decodePet(w, r)
	if !ok {
		return
	}
	if pet.ID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	if err := h.store.Update(pet); err != nil {
		writeError(w, http.StatusNotFound, "Pet not found")
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

type statusQuery struct {
	Status []string `schema:"status" validate:"required,min=1"`
}

func (h *handlers) findByStatus(w http.ResponseWriter, r *http.Request) {
	var q statusQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil || validate.Struct(q) != nil {
		writeError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	var statuses []PetStatus
	for _, s := range splitList(q.Status) {
		status := PetStatus(s)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid status value")
			return
		}
		statuses = append(statuses, status)
	}

	writeJSON(w, http.StatusOK, h.store.ByStatus(statuses...))
}

type tagsQuery struct {
	Tags []string `schema:"tags" validate:"required,min=1,dive,required"`
}

func (h *handlers) findByTags(w http.ResponseWriter, r *http.Request) {
	var q tagsQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tag value")
		return
	}
	q.Tags = splitList(q.Tags)
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tag value")
		return
	}

	writeJSON(w, http.StatusOK, h.store.ByTags(q.Tags...))
}

func (h *handlers) getPet(w http.ResponseWriter, r *http.Request) {
	id, ok := petID(w, r)
	if !ok {
		return
	}

	pet, err := h.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Pet not found")
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (h *handlers) deletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := petID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, ErrPetNotFound) {
			writeError(w, http.StatusBadRequest, "Invalid pet value")
			return
		}
		h.logger.Error("failed to delete pet", slog.Int64("id", id), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	h.logger.Debug("pet deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) decodePet(w http.ResponseWriter, r *http.Request) (Pet, bool) {
	var pet Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		h.logger.Debug("invalid pet body", slog.String("error", err.Error()))
		writeError(w, http.StatusMethodNotAllowed, "Invalid input")
		return Pet{}, false
	}
	if err := validate.Struct(pet); err != nil {
		writeError(w, http.StatusMethodNotAllowed, "Invalid input")
		return Pet{}, false
	}
	return pet, true
}

func petID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["petId"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return 0, false
	}
	return id, true
}

// splitList flattens repeated and comma separated query values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIError{Code: status, Message: message})
}
