// Package site serves the dashboard's embedded static assets.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Prefix is the URL path the assets are mounted under.
const Prefix = "/static/"

// Error constants
var (
	ErrServe = errors.New("static asset serve failed")
)

// Register attaches the static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(Prefix, Handler())
}

// Handler serves the embedded assets with Prefix stripped. Directory
// listings are refused.
func Handler() http.Handler {
	files := http.StripPrefix(Prefix, http.FileServer(FS()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path == Prefix || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}
