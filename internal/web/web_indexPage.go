package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexTemplate is the template identifier served on "/"
const IndexTemplate = "index"

// indexPage serves the editor shell. The request itself is never inspected.
func (s *WebServer) indexPage(c *gin.Context) {
	page, err := s.Pages.Render(IndexTemplate)
	if err != nil {
		var notFound *TemplateNotFoundError
		if errors.As(err, &notFound) {
			log.Printf("[WEB]: index page unavailable: %v", err)
		}
		s.renderError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
