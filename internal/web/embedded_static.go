package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed static/*
var EmbeddedStaticFS embed.FS

//go:embed templates/*.html
var EmbeddedTemplatesFS embed.FS

// staticCacheControl lets browsers keep editor assets for an hour
const staticCacheControl = "public, max-age=3600"

// templateSource returns the directory when set, the embedded templates otherwise.
func templateSource(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(EmbeddedTemplatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}

// staticSource returns the directory when set, the embedded static files otherwise.
func staticSource(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(EmbeddedStaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("embedded static files: %w", err)
	}
	return sub, nil
}

// ListStaticFiles returns every regular file below the root of fsys
func ListStaticFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// StaticHandler returns a Gin handler serving files from fsys below prefix.
// Directory paths are answered with 404 instead of a listing.
func StaticHandler(prefix string, fsys fs.FS) gin.HandlerFunc {
	fileServer := http.FileServer(http.FS(fsys))

	return func(c *gin.Context) {
		// Strip the URL path prefix to get the file path
		path := strings.TrimPrefix(c.Request.URL.Path, prefix)
		if path == "" || strings.HasSuffix(path, "/") {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.Request.URL.Path = path
		c.Header("Cache-Control", staticCacheControl)
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
