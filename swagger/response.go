package swagger

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vitalvas/routedoc/openapi"
)

// StatusDefault is the response key covering every undeclared status.
const StatusDefault = "default"

// ResponseEntry documents the response for one status code.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object
type ResponseEntry struct {
	status      string
	description string
	content     *Content
}

// Status starts a response entry for an HTTP status code.
func Status(code int) *ResponseEntry {
	return &ResponseEntry{status: strconv.Itoa(code)}
}

// DefaultStatus starts the "default" response entry.
func DefaultStatus() *ResponseEntry {
	return &ResponseEntry{status: StatusDefault}
}

// Description sets the response description. When empty, the standard
// status text is used.
func (e *ResponseEntry) Description(d string) *ResponseEntry {
	e.description = d
	return e
}

// Content sets the response payload.
func (e *ResponseEntry) Content(c *Content) *ResponseEntry {
	e.content = c
	return e
}

// JSON is a shortcut for Content(JSON(v)).
func (e *ResponseEntry) JSON(v any) *ResponseEntry {
	return e.Content(JSON(v))
}

func (e *ResponseEntry) validate() error {
	if e.status == StatusDefault {
		return nil
	}
	code, err := strconv.Atoi(e.status)
	if err != nil || code < 100 || code > 599 {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, e.status)
	}
	return nil
}

// responseDescription returns a human-readable description for a response key.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object (description)
func responseDescription(key string) string {
	if key == StatusDefault {
		return "Default response"
	}
	code, err := strconv.Atoi(key)
	if err == nil {
		if text := http.StatusText(code); text != "" {
			return text
		}
	}
	return key
}

func (e *ResponseEntry) build(res *openapi.SchemaResolver) *openapi.Response {
	desc := e.description
	if desc == "" {
		desc = responseDescription(e.status)
	}
	return &openapi.Response{
		Description: desc,
		Content:     mediaTypes(res, e.content),
	}
}
