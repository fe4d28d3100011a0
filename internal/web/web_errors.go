package web

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
)

// BindError is returned by Start when the listener cannot acquire its address.
// It is fatal: the server never retries on another port.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// TemplateNotFoundError means a template identifier did not resolve to a file.
type TemplateNotFoundError struct {
	Name string
	Err  error
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found", e.Name)
}

func (e *TemplateNotFoundError) Unwrap() error { return e.Err }

// renderError answers with a plain text error body.
// Internal detail is only included when ExposeErrors is set.
func (s *WebServer) renderError(c *gin.Context, statusCode int, message string, err error) {
	log.Printf("[WEB]: Error %d %s %s: %s - %v", statusCode, c.Request.Method, c.Request.URL.Path, message, err)
	c.Header("Cache-Control", "no-store")
	if s.Config.ExposeErrors && err != nil {
		c.String(statusCode, "%d %s: %v", statusCode, message, err)
		return
	}
	c.String(statusCode, "%d %s", statusCode, message)
}
