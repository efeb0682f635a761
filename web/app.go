package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gorilla/mux"
)

var (
	// ErrInvalidPath is returned when a route path is empty, uses brace
	// placeholders instead of colon segments, or is rejected by the router.
	ErrInvalidPath = errors.New("web: invalid route path")

	// ErrInvalidHandlerType is returned for a handler type that cannot be
	// registered.
	ErrInvalidHandlerType = errors.New("web: invalid handler type")

	// ErrNilHandler is returned when a nil handler is registered.
	ErrNilHandler = errors.New("web: handler must not be nil")
)

// Config configures an App.
type Config struct {
	// Logger receives route registration and panic records.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// DisableRecovery turns off the panic recovery middleware installed by New.
	DisableRecovery bool

	// RequestID, when set, installs the request ID middleware ahead of
	// recovery so that panic records carry the request ID.
	RequestID *RequestIDConfig
}

func (cfg Config) logger() *slog.Logger {
	if cfg.Logger == nil {
		return slog.Default()
	}
	return cfg.Logger
}

// RouteEntry is one entry of the routing table as registered, with the
// path in its original colon form.
type RouteEntry struct {
	Type    HandlerType
	Path    string
	Handler http.Handler
}

type filter struct {
	pattern string
	handler http.Handler
}

func (f filter) matches(path string) bool {
	ok, err := doublestar.Match(f.pattern, path)
	return err == nil && ok
}

// App is a small web application with colon-style path parameters
// ("/pet/:id") backed by a gorilla/mux router. Routes should be registered
// before the app starts serving.
type App struct {
	router      *mux.Router
	logger      *slog.Logger
	mu          sync.RWMutex
	routes      []RouteEntry
	before      []filter
	after       []filter
	middlewares []mux.MiddlewareFunc
}

// New creates an App. Panic recovery is enabled unless disabled in cfg.
func New(cfg Config) *App {
	a := &App{
		router: mux.NewRouter(),
		logger: cfg.logger(),
	}

	if cfg.RequestID != nil {
		a.Use(RequestIDMiddleware(*cfg.RequestID))
	}
	if !cfg.DisableRecovery {
		a.Use(RecoveryMiddleware(RecoveryConfig{Logger: a.logger}))
	}

	return a
}

// Logger returns the logger the app was configured with.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Use appends middleware. Middleware wraps the whole request dispatch,
// including filters and unmatched requests; the first registered is the
// outermost.
func (a *App) Use(mwf ...mux.MiddlewareFunc) *App {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.middlewares = append(a.middlewares, mwf...)
	return a
}

// Add registers h for the given handler type and colon-style path.
// Before and After filters accept "*" and "*" segments as wildcards; colon
// segments in filter paths match any single segment.
func (a *App) Add(t HandlerType, path string, h http.Handler) error {
	if h == nil {
		return ErrNilHandler
	}

	path, err := normalizePath(path)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	switch t {
	case HandlerBefore, HandlerAfter:
		pattern, err := filterPattern(path)
		if err != nil {
			return err
		}
		f := filter{pattern: pattern, handler: h}
		if t == HandlerBefore {
			a.before = append(a.before, f)
		} else {
			a.after = append(a.after, f)
		}

	default:
		method := t.HTTPMethod()
		if method == "" {
			return fmt.Errorf("%w: %s", ErrInvalidHandlerType, t)
		}
		route := a.router.Handle(routerPath(path), h).Methods(method)
		if err := route.GetError(); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidPath, path, err)
		}
	}

	a.routes = append(a.routes, RouteEntry{Type: t, Path: path, Handler: h})
	a.logger.Debug("route added",
		slog.String("type", t.String()),
		slog.String("path", path),
	)

	return nil
}

func (a *App) must(t HandlerType, path string, h http.Handler) *App {
	if err := a.Add(t, path, h); err != nil {
		panic(err)
	}
	return a
}

// Get registers a GET endpoint. It panics on an invalid path, like
// http.ServeMux.Handle does.
func (a *App) Get(path string, h http.Handler) *App { return a.must(HandlerGet, path, h) }

// Post registers a POST endpoint.
func (a *App) Post(path string, h http.Handler) *App { return a.must(HandlerPost, path, h) }

// Put registers a PUT endpoint.
func (a *App) Put(path string, h http.Handler) *App { return a.must(HandlerPut, path, h) }

// Patch registers a PATCH endpoint.
func (a *App) Patch(path string, h http.Handler) *App { return a.must(HandlerPatch, path, h) }

// Delete registers a DELETE endpoint.
func (a *App) Delete(path string, h http.Handler) *App { return a.must(HandlerDelete, path, h) }

// Head registers a HEAD endpoint.
func (a *App) Head(path string, h http.Handler) *App { return a.must(HandlerHead, path, h) }

// Options registers an OPTIONS endpoint.
func (a *App) Options(path string, h http.Handler) *App { return a.must(HandlerOptions, path, h) }

// Before registers a filter run before the endpoint for matching paths.
func (a *App) Before(path string, h http.Handler) *App { return a.must(HandlerBefore, path, h) }

// After registers a filter run after the endpoint for matching paths.
func (a *App) After(path string, h http.Handler) *App { return a.must(HandlerAfter, path, h) }

// WebSocket registers an upgrade endpoint; h performs the upgrade.
func (a *App) WebSocket(path string, h http.Handler) *App { return a.must(HandlerWebSocket, path, h) }

// Routes returns the routing table in registration order.
func (a *App) Routes() []RouteEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]RouteEntry(nil), a.routes...)
}

// ServeHTTP dispatches the request through middleware, Before filters,
// the matched endpoint and After filters.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	middlewares := a.middlewares
	a.mu.RUnlock()

	var h http.Handler = http.HandlerFunc(a.dispatch)
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i].Middleware(h)
	}
	h.ServeHTTP(w, r)
}

func (a *App) dispatch(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	before, after := a.before, a.after
	a.mu.RUnlock()

	for _, f := range before {
		if f.matches(r.URL.Path) {
			f.handler.ServeHTTP(w, r)
		}
	}

	a.router.ServeHTTP(w, r)

	for _, f := range after {
		if f.matches(r.URL.Path) {
			f.handler.ServeHTTP(w, r)
		}
	}
}

// ListenAndServe serves the app on addr until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func normalizePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || strings.ContainsAny(path, "{}") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if path == "*" {
		return path, nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, nil
}

// routerPath converts colon segments to gorilla/mux variables:
// "/pet/:id" -> "/pet/{id}".
func routerPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if len(seg) > 1 && seg[0] == ':' {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// filterPattern converts a filter path to a doublestar pattern:
// "*" -> "**", "/api/*" -> "/api/**", "/pet/:id" -> "/pet/*".
func filterPattern(path string) (string, error) {
	if path == "*" {
		return "**", nil
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		switch {
		case seg == "*":
			segments[i] = "**"
		case len(seg) > 1 && seg[0] == ':':
			segments[i] = "*"
		}
	}

	pattern := strings.Join(segments, "/")
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return pattern, nil
}
