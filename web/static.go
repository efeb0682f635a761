package web

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

// ErrStaticFilesNoFS is returned when StaticFilesConfig.FS is nil.
var ErrStaticFilesNoFS = errors.New("web: static file system must not be nil")

// StaticFilesConfig configures a static file mount.
type StaticFilesConfig struct {
	// FS is the file system to serve files from. Required.
	// Works with os.DirFS, embed.FS, and any fs.FS implementation.
	FS fs.FS

	// EnableDirectoryListing allows directory contents to be listed
	// when no index.html is present.
	EnableDirectoryListing bool
}

// noDirListingFS hides directories without an index.html so that
// http.FileServer responds with 404 instead of a listing.
type noDirListingFS struct {
	fs fs.FS
}

func (n *noDirListingFS) Open(name string) (fs.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if !stat.IsDir() {
		return f, nil
	}

	indexPath := name + "/index.html"
	if name == "." {
		indexPath = "index.html"
	}

	if _, err := fs.Stat(n.fs, indexPath); err != nil {
		f.Close()
		return nil, fs.ErrNotExist
	}

	return f, nil
}

// StaticFilesHandler returns an http.Handler serving files from cfg.FS.
func StaticFilesHandler(cfg StaticFilesConfig) (http.Handler, error) {
	if cfg.FS == nil {
		return nil, ErrStaticFilesNoFS
	}

	fileSystem := cfg.FS
	if !cfg.EnableDirectoryListing {
		fileSystem = &noDirListingFS{fs: fileSystem}
	}

	return http.FileServerFS(fileSystem), nil
}

// Static mounts a file system under the URL prefix. Static mounts answer
// GET and HEAD and are not part of Routes.
func (a *App) Static(prefix string, cfg StaticFilesConfig) error {
	handler, err := StaticFilesHandler(cfg)
	if err != nil {
		return err
	}

	normalized, err := normalizePath(prefix)
	if err != nil || strings.ContainsAny(normalized, ":*") {
		return fmt.Errorf("%w: static prefix %q", ErrInvalidPath, prefix)
	}
	prefix = normalized
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.router.PathPrefix(prefix).
		Methods(http.MethodGet, http.MethodHead).
		Handler(http.StripPrefix(prefix, handler))

	a.logger.Debug("static files mounted", slog.String("prefix", prefix))
	return nil
}
