package web

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// ErrWildcardCredentials is returned when AllowedOrigins contains "*" and
// AllowCredentials is true.
var ErrWildcardCredentials = errors.New("web: wildcard origin \"*\" cannot be used with AllowCredentials")

// CORSConfig configures the CORS middleware behaviour.
//
// Spec references:
//   - CORS protocol: https://fetch.spec.whatwg.org/#http-cors-protocol
//   - Web Origin:    https://www.rfc-editor.org/rfc/rfc6454
type CORSConfig struct {
	// AllowedOrigins is a list of exact origin strings, "*" for wildcard,
	// or subdomain wildcard patterns like "https://*.example.com".
	AllowedOrigins []string

	// AllowedMethods overrides the methods advertised in preflight and
	// actual responses. When empty the methods registered for the
	// requested path are discovered from the app.
	AllowedMethods []string

	// AllowedHeaders lists the headers the client may send. When empty the
	// Access-Control-Request-Headers value of the preflight is reflected.
	AllowedHeaders []string

	// ExposeHeaders lists the headers the browser may expose to client code.
	ExposeHeaders []string

	// AllowCredentials sets Access-Control-Allow-Credentials: true.
	AllowCredentials bool

	// MaxAge is the duration in seconds a preflight result may be cached.
	// Zero omits the header.
	MaxAge int
}

type wildcardPattern struct {
	prefix string
	suffix string
}

func (c *CORSConfig) hasWildcardOrigin() bool {
	return slices.Contains(c.AllowedOrigins, "*")
}

// parseOrigins normalizes AllowedOrigins to lowercase and splits them into
// exact matches and wildcard patterns.
func parseOrigins(origins []string) ([]string, []wildcardPattern, error) {
	var exact []string
	var patterns []wildcardPattern

	for _, o := range origins {
		if o == "*" {
			exact = append(exact, o)
			continue
		}

		lower := strings.ToLower(strings.TrimRight(o, "/"))

		if prefix, suffix, ok := strings.Cut(lower, "*"); ok {
			if strings.Contains(suffix, "*") {
				return nil, nil, errors.New("web: origin pattern contains multiple wildcards: " + o)
			}
			patterns = append(patterns, wildcardPattern{prefix: prefix, suffix: suffix})
		} else {
			exact = append(exact, lower)
		}
	}

	return exact, patterns, nil
}

func matchOrigin(originLower string, exactOrigins []string, patterns []wildcardPattern) bool {
	for _, o := range exactOrigins {
		if o == "*" || o == originLower {
			return true
		}
	}

	for _, wp := range patterns {
		if len(originLower) >= len(wp.prefix)+len(wp.suffix) &&
			strings.HasPrefix(originLower, wp.prefix) &&
			strings.HasSuffix(originLower, wp.suffix) {
			return true
		}
	}

	return false
}

// EnableCORS installs a CORS middleware on the app. Preflight requests from
// allowed origins are answered with 204 No Content without reaching the
// endpoint.
func (a *App) EnableCORS(cfg CORSConfig) error {
	if cfg.hasWildcardOrigin() && cfg.AllowCredentials {
		return ErrWildcardCredentials
	}

	exactOrigins, patterns, err := parseOrigins(cfg.AllowedOrigins)
	if err != nil {
		return err
	}

	a.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !matchOrigin(strings.ToLower(origin), exactOrigins, patterns) {
				next.ServeHTTP(w, r)
				return
			}

			if cfg.hasWildcardOrigin() {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			methods := cfg.AllowedMethods
			if len(methods) == 0 {
				methods = routeMethods(a.router, r)
			}
			if len(methods) > 0 {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(methods, ","))
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				if len(cfg.ExposeHeaders) > 0 {
					w.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ","))
				}
				next.ServeHTTP(w, r)
				return
			}

			if len(cfg.AllowedHeaders) > 0 {
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ","))
			} else if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
			}
			if cfg.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			w.Header().Add("Vary", "Access-Control-Request-Method")
			w.Header().Add("Vary", "Access-Control-Request-Headers")
			w.WriteHeader(http.StatusNoContent)
		})
	})

	return nil
}

// routeMethods returns the HTTP methods registered for routes matching the
// request path.
func routeMethods(router *mux.Router, req *http.Request) []string {
	var methods []string

	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		registered, err := route.GetMethods()
		if err != nil {
			return nil
		}

		for _, method := range registered {
			probe := req.Clone(req.Context())
			probe.Method = method
			if route.Match(probe, &mux.RouteMatch{}) && !slices.Contains(methods, method) {
				methods = append(methods, method)
			}
		}

		return nil
	})

	return methods
}
