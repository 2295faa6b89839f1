// Package serve serves a built site for local preview.
package serve

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handler serves dir under basePath. Directory listings are never shown, and
// unknown paths get the site's 404.html when it exists.
func Handler(dir, basePath string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(noCache)

	files := http.StripPrefix(strings.TrimSuffix(basePath, "/"), http.FileServer(http.Dir(dir)))
	r.Get(path.Join(basePath, "*"), func(w http.ResponseWriter, req *http.Request) {
		rel := strings.TrimPrefix(req.URL.Path, strings.TrimSuffix(basePath, "/"))
		if !exists(dir, rel) {
			notFound(w, req, dir)
			return
		}
		files.ServeHTTP(w, req)
	})
	if basePath != "/" {
		toBase := func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, basePath, http.StatusFound)
		}
		r.Get("/", toBase)
		r.Get(strings.TrimSuffix(basePath, "/"), toBase)
	}
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		notFound(w, req, dir)
	})
	return r
}

// exists reports whether rel maps to a file, or to a directory with an index.html.
func exists(dir, rel string) bool {
	local := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+rel)))
	info, err := os.Stat(local)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	_, err = os.Stat(filepath.Join(local, "index.html"))
	return err == nil
}

func notFound(w http.ResponseWriter, req *http.Request, dir string) {
	page, err := os.ReadFile(filepath.Join(dir, "404.html"))
	if err != nil {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}

// noCache keeps browsers from holding on to pages between rebuilds.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Msg("request")
		})
	}
}
