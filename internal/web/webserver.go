// Package web provides the HTTP server that hosts the go-modot editor page
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-modot/internal/config"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ServerState is the lifecycle position of a WebServer
type ServerState int32

const (
	StateNotStarted ServerState = iota
	StateListening
	StateStopped
)

func (st ServerState) String() string {
	switch st {
	case StateNotStarted:
		return "not-started"
	case StateListening:
		return "listening"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(st))
	}
}

// WebServer represents the web server
type WebServer struct {
	Router    *gin.Engine
	Config    *config.WebConfig
	Pages     *PageRenderer
	StartTime time.Time // Track server start time for uptime calculations

	staticFS fs.FS
	state    atomic.Int32

	mux      sync.Mutex
	listener net.Listener
}

// NewServer creates a new web server instance. Nothing is bound until Start.
func NewServer(webconfig *config.WebConfig) (*WebServer, error) {
	if err := webconfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid web config: %w", err)
	}

	templates, err := templateSource(webconfig.TemplateDir)
	if err != nil {
		return nil, err
	}
	static, err := staticSource(webconfig.StaticDir)
	if err != nil {
		return nil, err
	}

	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Configure Gin to trust reverse proxy headers
	// Set trusted proxies for common reverse proxy setups (nginx, etc.)
	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	server := &WebServer{
		Router:   router,
		Config:   webconfig,
		Pages:    NewPageRenderer(templates),
		staticFS: static,
	}

	if files, err := ListStaticFiles(static); err != nil {
		log.Printf("[WEB]: Warning: cannot list static files: %v", err)
	} else {
		log.Printf("[WEB]: serving %d static files", len(files))
	}

	server.setupRoutes()
	return server, nil
}

// State returns the current lifecycle state
func (s *WebServer) State() ServerState {
	return ServerState(s.state.Load())
}

// Addr returns the bound address, or the configured one before Listen
func (s *WebServer) Addr() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.Config.Addr()
}

// Start binds the listener and serves until ctx is done.
// A bind failure is returned as *BindError and nothing is served.
func (s *WebServer) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Listen acquires the configured address without serving on it yet
func (s *WebServer) Listen() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.State() != StateNotStarted {
		return fmt.Errorf("web server is %s", s.State())
	}

	addr := s.Config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &BindError{Addr: addr, Err: err}
	}
	s.listener = ln
	s.StartTime = time.Now() // Set the start time for uptime calculations
	s.state.Store(int32(StateListening))
	return nil
}

// Serve accepts connections on the bound listener until ctx is done,
// then shuts down gracefully.
func (s *WebServer) Serve(ctx context.Context) error {
	s.mux.Lock()
	ln := s.listener
	s.mux.Unlock()
	if ln == nil || s.State() != StateListening {
		return errors.New("web server is not listening")
	}
	defer s.state.Store(int32(StateStopped))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.Config.ReloadTemplates {
		if err := s.watchTemplates(ctx); err != nil {
			ln.Close()
			return err
		}
	}

	srv := &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if s.Config.SSL {
			log.Printf("[WEB]: Starting HTTPS server on %s", ln.Addr())
			serveErr <- srv.ServeTLS(ln, s.Config.CertFile, s.Config.KeyFile)
		} else {
			log.Printf("[WEB]: Starting HTTP server on %s", ln.Addr())
			serveErr <- srv.Serve(ln)
		}
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[WEB]: shutting down web server on %s", ln.Addr())
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
