// Package petstore is a small in-memory pet store whose routes are
// documented for the OpenAPI document.
package petstore

// PetStatus is the availability of a pet.
type PetStatus string

const (
	StatusAvailable PetStatus = "available"
	StatusPending   PetStatus = "pending"
	StatusSold      PetStatus = "sold"
)

// OpenAPIEnum lists the statuses in declaration order.
func (PetStatus) OpenAPIEnum() []any {
	return []any{string(StatusAvailable), string(StatusPending), string(StatusSold)}
}

func (PetStatus) OpenAPIDescription() string { return "pet status in the store" }

// Valid reports whether s is a known status.
func (s PetStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

type Category struct {
	ID   int64  `json:"id" openapi:"example=1"`
	Name string `json:"name" openapi:"example=Dogs"`
}

type Tag struct {
	ID   int64  `json:"id" openapi:""`
	Name string `json:"name" openapi:""`
}

// Pet is the resource managed by the store.
type Pet struct {
	ID        int64     `json:"id" openapi:"example=10"`
	Category  *Category `json:"category,omitempty" openapi:""`
	Name      string    `json:"name" openapi:"required,example=doggie" validate:"required"`
	PhotoUrls []string  `json:"photoUrls" openapi:"required" validate:"required"`
	Tags      []Tag     `json:"tags,omitempty" openapi:""`
	Status    PetStatus `json:"status,omitempty" openapi:"" validate:"omitempty,oneof=available pending sold"`
}

// APIError is the body of every error response.
type APIError struct {
	Code    int    `json:"code" openapi:"required,example=404"`
	Message string `json:"message" openapi:"required,example=Pet not found"`
}

func (APIError) OpenAPIDescription() string { return "Error returned for a failed request" }
