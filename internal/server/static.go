package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// staticHandler serves files from dir. "/" maps to index.html; anything
// that is not a regular file is a 404.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dir == "" {
			http.NotFound(w, r)
			return
		}

		name := path.Clean("/" + r.URL.Path)
		if name == "/" {
			name = "/index.html"
		}
		full := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(name, "/")))

		fi, err := os.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			http.NotFound(w, r)
			return
		}

		f, err := os.Open(full)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
	}
}
