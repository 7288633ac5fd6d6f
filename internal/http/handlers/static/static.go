// Package static serves the single-page front end. Paths that do not name a
// file under the root fall back to the index document so client-side routes
// survive a reload.
package static

import (
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/aanand-mishra/attendance-api/internal/utils/response"
)

// New serves files from dir, falling back to index for anything else.
func New(dir, index string) http.HandlerFunc {
	root := http.Dir(dir)
	indexPath := "/" + index

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && serveFile(w, r, root, r.URL.Path) {
			return
		}

		if !serveFile(w, r, root, indexPath) {
			slog.Warn("index document missing", slog.String("dir", dir), slog.String("file", index))
			response.WriteJSON(w, http.StatusNotFound, response.Error(http.StatusText(http.StatusNotFound)))
		}
	}
}

// serveFile writes the regular file at name and reports whether it did.
// http.Dir keeps name inside the root; dot-prefixed segments such as .env
// or .git are never served.
func serveFile(w http.ResponseWriter, r *http.Request, root http.FileSystem, name string) bool {
	name = path.Clean(name)
	if hasHiddenSegment(name) {
		return false
	}

	f, err := root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

func hasHiddenSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
