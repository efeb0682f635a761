package swagger

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vitalvas/routedoc/openapi"
	"github.com/vitalvas/routedoc/web"
)

var (
	// ErrUnsupportedMethod is returned for a handler type that is neither a
	// documentable HTTP method nor one of the ignored types.
	ErrUnsupportedMethod = errors.New("swagger: unsupported handler type")

	// ErrInvalidParam is returned for a parameter without a name or with an
	// unknown location.
	ErrInvalidParam = errors.New("swagger: invalid parameter")

	// ErrInvalidHeaderName is returned for a header parameter whose name is
	// not a valid HTTP header field name.
	ErrInvalidHeaderName = errors.New("swagger: invalid header parameter name")

	// ErrInvalidStatus is returned for a response status outside 100-599.
	ErrInvalidStatus = errors.New("swagger: invalid response status")

	// ErrInvalidPattern is returned for a malformed exclude pattern.
	ErrInvalidPattern = errors.New("swagger: invalid exclude pattern")
)

// Endpoint is one registered route: its handler type, its raw colon-style
// path and its documentation. Endpoints without documentation are skipped.
type Endpoint struct {
	Method web.HandlerType
	Path   string
	Route  *Route
}

// BuildConfig configures a document build.
type BuildConfig struct {
	// ArrayComponents registers a pluralized array component schema for
	// every array of object types (e.g. "Pets").
	ArrayComponents bool

	// InferPathParams documents colon path segments that the route does not
	// declare as required string path parameters.
	InferPathParams bool

	// Exclude lists doublestar patterns matched against the raw route
	// path; matching endpoints are left out of the document.
	Exclude []string

	// Logger receives debug records about the build. Nil discards them.
	Logger *slog.Logger
}

func (cfg BuildConfig) logger() *slog.Logger {
	if cfg.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.Logger
}

// Build assembles an OpenAPI document from the documented endpoints.
//
// The shell supplies the caller-owned parts (info, servers, tags, security,
// non-schema components) and is not modified; the returned document is a
// copy carrying the computed paths and component schemas. Every call uses
// a fresh schema registry, so builds are independent of each other.
//
// Endpoints are grouped by raw path in order of first appearance and their
// paths rewritten to OpenAPI templates. CONNECT, BEFORE, AFTER, INVALID and
// WEBSOCKET endpoints are ignored; any other handler type without a Path
// Item slot fails the build with ErrUnsupportedMethod.
//
// See: https://spec.openapis.org/oas/v3.1.0#paths-object
// See: https://spec.openapis.org/oas/v3.1.0#components-object
func Build(shell *openapi.Document, endpoints []Endpoint, cfg BuildConfig) (*openapi.Document, error) {
	logger := cfg.logger()

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}

	var order []string
	byPath := make(map[string][]Endpoint)
	for _, ep := range endpoints {
		if ep.Route == nil {
			continue
		}
		if excluded(cfg.Exclude, ep.Path) {
			logger.Debug("endpoint excluded", slog.String("path", ep.Path))
			continue
		}
		if _, ok := byPath[ep.Path]; !ok {
			order = append(order, ep.Path)
		}
		byPath[ep.Path] = append(byPath[ep.Path], ep)
	}

	res := openapi.NewSchemaResolver(openapi.ResolverConfig{
		ArrayComponents: cfg.ArrayComponents,
		Logger:          logger,
	})

	paths := make(map[string]*openapi.PathItem)
	for _, raw := range order {
		key := RewritePath(raw)
		params := pathParams(raw)

		for _, ep := range byPath[raw] {
			set, ignored, err := operationSlot(ep.Method)
			if err != nil {
				return nil, fmt.Errorf("%w: %s %s", err, ep.Method, raw)
			}
			if ignored {
				continue
			}

			op, err := buildOperation(res, ep.Route, params, cfg.InferPathParams)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", ep.Method, raw, err)
			}

			item, ok := paths[key]
			if !ok {
				item = &openapi.PathItem{}
				paths[key] = item
			}
			set(item, op)
		}
	}

	doc := assemble(shell, paths, res.Schemas())
	logger.Debug("openapi document built",
		slog.Int("paths", len(doc.Paths)),
		slog.Int("schemas", len(res.Schemas())),
	)

	return doc, nil
}

// assemble copies the shell and attaches the computed tables.
func assemble(shell *openapi.Document, paths map[string]*openapi.PathItem, schemas map[string]*openapi.Schema) *openapi.Document {
	var doc openapi.Document
	if shell != nil {
		doc = *shell
	}
	if doc.OpenAPI == "" {
		doc.OpenAPI = openapi.Version
	}

	if len(paths) > 0 {
		doc.Paths = paths
	} else {
		doc.Paths = nil
	}

	var components openapi.Components
	if doc.Components != nil {
		components = *doc.Components
	}
	if len(schemas) > 0 {
		merged := make(map[string]*openapi.Schema, len(components.Schemas)+len(schemas))
		maps.Copy(merged, components.Schemas)
		maps.Copy(merged, schemas)
		components.Schemas = merged
	}
	if len(components.Schemas)+len(components.Responses)+len(components.Parameters)+
		len(components.Examples)+len(components.SecuritySchemes) > 0 {
		doc.Components = &components
	}

	return &doc
}

func excluded(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
