package swagger

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/vitalvas/routedoc/openapi"
	"github.com/vitalvas/routedoc/web"
)

// ErrNilApp is returned by Serve when no app is given.
var ErrNilApp = errors.New("swagger: app must not be nil")

var (
	validate     = validator.New()
	queryDecoder = schema.NewDecoder()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// DocumentedHandler is an http.Handler carrying the documentation of the
// route it is registered on.
type DocumentedHandler struct {
	route   *Route
	handler http.Handler
}

// Documented attaches a route description to a handler:
//
//	app.Post("/pet", swagger.Documented(
//	    swagger.NewRoute().Summary("Add a new pet").Request(swagger.JSON(Pet{})),
//	    http.HandlerFunc(addPet),
//	))
func Documented(route *Route, h http.Handler) *DocumentedHandler {
	return &DocumentedHandler{route: route, handler: h}
}

// DocumentedFunc is Documented for a handler function.
func DocumentedFunc(route *Route, fn func(http.ResponseWriter, *http.Request)) *DocumentedHandler {
	return Documented(route, http.HandlerFunc(fn))
}

// Route returns the attached route description.
func (d *DocumentedHandler) Route() *Route {
	return d.route
}

func (d *DocumentedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if d.handler == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	d.handler.ServeHTTP(w, r)
}

// Endpoints converts a routing table into build input. Entries whose
// handler carries no documentation yield endpoints without a Route.
func Endpoints(routes []web.RouteEntry) []Endpoint {
	endpoints := make([]Endpoint, 0, len(routes))
	for _, entry := range routes {
		ep := Endpoint{Method: entry.Type, Path: entry.Path}
		if d, ok := entry.Handler.(interface{ Route() *Route }); ok {
			ep.Route = d.Route()
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints
}

// Config configures the endpoints registered by Serve.
type Config struct {
	// Path is the document endpoint (default: "/swagger/yaml").
	// The document is YAML; "?format=json" selects JSON.
	Path string

	// UIPath is the prefix of the interactive docs UI (default:
	// "/swagger/ui/"). Set to "-" to disable.
	UIPath string

	// UIFS, when set, is served under UIPath as a static bundle (for
	// example an embedded swagger-ui-dist). Otherwise a page loading
	// Swagger UI from a CDN is generated.
	UIFS fs.FS

	// UITitle overrides the HTML page title (default: info.title).
	UITitle string

	// CacheControl is the Cache-Control value of the document responses
	// (default: "no-cache", so clients revalidate with the ETag).
	CacheControl string

	// CORSOrigins enables CORS for the given origins on the app, e.g.
	// "https://editor.swagger.io".
	CORSOrigins []string

	// Build configures the document build.
	Build BuildConfig

	// Logger receives build and serving records. Also used for the build
	// when Build.Logger is nil.
	Logger *slog.Logger
}

func (cfg *Config) path() string {
	if cfg.Path == "" {
		return "/swagger/yaml"
	}
	return cfg.Path
}

func (cfg *Config) uiPath() string {
	if cfg.UIPath == "" {
		return "/swagger/ui/"
	}
	return cfg.UIPath
}

func (cfg *Config) cacheControl() string {
	if cfg.CacheControl == "" {
		return "no-cache"
	}
	return cfg.CacheControl
}

func (cfg *Config) logger() *slog.Logger {
	if cfg.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.Logger
}

// Serve builds the document from the app's current routing table and
// registers the document endpoint and, unless disabled, the docs UI. Routes
// must be registered before Serve is called; the document is built once.
//
//	if err := swagger.Serve(app, &openapi.Document{
//	    Info: openapi.Info{Title: "Petstore", Version: "1.0.0"},
//	}, nil); err != nil {
//	    log.Fatal(err)
//	}
func Serve(app *web.App, shell *openapi.Document, cfg *Config) error {
	if app == nil {
		return ErrNilApp
	}
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.logger()

	buildCfg := cfg.Build
	if buildCfg.Logger == nil {
		buildCfg.Logger = logger
	}

	doc, err := Build(shell, Endpoints(app.Routes()), buildCfg)
	if err != nil {
		return fmt.Errorf("failed to build OpenAPI document: %w", err)
	}

	yamlData, err := openapi.Marshal(doc, openapi.FormatYAML)
	if err != nil {
		return err
	}
	jsonData, err := openapi.Marshal(doc, openapi.FormatJSON)
	if err != nil {
		return err
	}

	if len(cfg.CORSOrigins) > 0 {
		if err := app.EnableCORS(web.CORSConfig{AllowedOrigins: cfg.CORSOrigins}); err != nil {
			return err
		}
	}

	specPath := cfg.path()
	if err := app.Add(web.HandlerGet, specPath, documentHandler(yamlData, jsonData, cfg.cacheControl())); err != nil {
		return err
	}

	if uiPath := cfg.uiPath(); uiPath != "-" {
		if err := registerUI(app, cfg, uiPath, specPath, doc.Info.Title); err != nil {
			return err
		}
	}

	logger.Info("openapi document served",
		slog.String("path", specPath),
		slog.Int("paths", len(doc.Paths)),
	)
	return nil
}

type documentQuery struct {
	Format string `schema:"format" validate:"omitempty,oneof=yaml json"`
}

// documentHandler serves the pre-rendered document. Each rendering carries
// a strong ETag; a matching If-None-Match is answered with 304.
func documentHandler(yamlData, jsonData []byte, cacheControl string) http.Handler {
	yamlTag, jsonTag := etag(yamlData), etag(jsonData)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var q documentQuery
		if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
			http.Error(w, "invalid query", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(q); err != nil {
			http.Error(w, "format must be yaml or json", http.StatusBadRequest)
			return
		}

		data, contentType, tag := yamlData, "application/x-yaml", yamlTag
		if openapi.Format(q.Format) == openapi.FormatJSON {
			data, contentType, tag = jsonData, "application/json", jsonTag
		}

		w.Header().Set("ETag", tag)
		w.Header().Set("Cache-Control", cacheControl)
		if r.Header.Get("If-None-Match") == tag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}

func etag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func registerUI(app *web.App, cfg *Config, uiPath, specPath, title string) error {
	if cfg.UIFS != nil {
		return app.Static(uiPath, web.StaticFilesConfig{FS: cfg.UIFS})
	}

	if cfg.UITitle != "" {
		title = cfg.UITitle
	}
	page := []byte(swaggerUITemplate(title, specPath))

	if !strings.HasSuffix(uiPath, "/") {
		uiPath += "/"
	}
	return app.Add(web.HandlerGet, uiPath, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	}))
}
