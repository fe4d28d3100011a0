package web

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// Route binds a method and path to the handlers serving it
type Route struct {
	Method  string
	Path    string
	Handler []gin.HandlerFunc
}

// Routes returns the route table of the server
func (s *WebServer) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Handler: []gin.HandlerFunc{s.indexPage}},
		{Method: http.MethodGet, Path: "/static/*filepath", Handler: []gin.HandlerFunc{StaticHandler("/static", s.staticFS)}},
		{Method: http.MethodGet, Path: "/ping", Handler: []gin.HandlerFunc{func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		}}},
	}
}

// setupRoutes configures middleware and all HTTP routes
func (s *WebServer) setupRoutes() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(s.ApacheLogFormat())
	s.Router.Use(secure.New(s.secureConfig()))

	for _, route := range s.Routes() {
		s.Router.Handle(route.Method, route.Path, route.Handler...)
	}
}

// secureConfig configures security headers based on SSL setup
func (s *WebServer) secureConfig() secure.Config {
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if s.Config.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.SSLProxyHeaders = map[string]string{"X-Forwarded-Proto": "https"}
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	return secureConfig
}

func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
