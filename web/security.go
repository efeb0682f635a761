package web

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

// ErrInvalidFrameOption is returned when SecurityHeadersConfig.FrameOption is
// set to something other than DENY or SAMEORIGIN.
var ErrInvalidFrameOption = errors.New("web: frame option must be DENY or SAMEORIGIN")

// SecurityHeadersConfig configures the Security Headers middleware behaviour.
type SecurityHeadersConfig struct {
	// FrameOption sets X-Frame-Options. Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy sets Referrer-Policy. Defaults to
	// "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// ContentSecurityPolicy sets Content-Security-Policy when not empty.
	ContentSecurityPolicy string
}

// SecurityHeadersMiddleware returns a middleware that sets common security
// response headers before the next handler runs.
func SecurityHeadersMiddleware(cfg SecurityHeadersConfig) (mux.MiddlewareFunc, error) {
	switch cfg.FrameOption {
	case "":
		cfg.FrameOption = "DENY"
	case "DENY", "SAMEORIGIN":
	default:
		return nil, ErrInvalidFrameOption
	}

	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", cfg.FrameOption)
			h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
