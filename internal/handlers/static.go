package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
}

// StaticHandler serves the single-page application from a public directory.
type StaticHandler struct {
	root string
}

func NewStaticHandler(publicDir string) (*StaticHandler, error) {
	root, err := filepath.Abs(publicDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve public dir: %w", err)
	}
	return &StaticHandler{root: root}, nil
}

// Serve answers any method; "/" maps to index.html and paths escaping the
// public root are refused with 403.
func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	requested := r.URL.Path
	if requested == "/" {
		requested = "/index.html"
	}

	resolved := filepath.Join(h.root, filepath.FromSlash(requested))
	if !h.contains(resolved) {
		writeText(w, http.StatusForbidden, "Acceso denegado")
		return
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		writeText(w, http.StatusNotFound, "Not found")
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(resolved))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *StaticHandler) contains(path string) bool {
	return path == h.root || strings.HasPrefix(path, h.root+string(filepath.Separator))
}

func contentTypeFor(path string) string {
	if ct, ok := contentTypes[filepath.Ext(path)]; ok {
		return ct
	}
	return "application/octet-stream"
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}
