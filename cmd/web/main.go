// Web server for the go-modot markdown editor
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-modot/internal/config"
	"github.com/go-while/go-modot/internal/web"
)

var (
	// command-line flags
	configFile      string
	webhost         string
	webport         int
	webssl          bool
	webcertFile     string
	webkeyFile      string
	templateDir     string
	staticDir       string
	reloadTemplates bool
	exposeErrors    bool
	pprofAddr       string
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&configFile, "config", "", "YAML config file (optional, flags override its values)")
	flag.StringVar(&webhost, "webhost", "", "Web server bind address (default: 127.0.0.1)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 5000)")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&templateDir, "templates", "", "Serve templates from this directory instead of the embedded ones")
	flag.StringVar(&staticDir, "static", "", "Serve static files from this directory instead of the embedded ones")
	flag.BoolVar(&reloadTemplates, "reload", false, "Re-render templates when they change on disk (development only, needs -templates)")
	flag.BoolVar(&exposeErrors, "expose-errors", false, "Include internal error detail in 500 responses (development only)")
	flag.StringVar(&pprofAddr, "pprof", "", "Serve pprof on this address, e.g. 127.0.0.1:51111 (default: off)")
	flag.Parse()

	log.Printf("Starting go-modot: Web Server (version: %s)", appVersion)

	webConfig := config.NewDefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadFile(configFile)
		if err != nil {
			log.Fatalf("[WEB]: %v", err)
		}
		webConfig = loaded
	}
	applyFlags(webConfig)
	log.Printf("[WEB]: Using WEB configuration: %#v", webConfig)

	if webConfig.ExposeErrors {
		log.Printf("[WEB]: WARNING: internal error detail is exposed to clients")
	}

	if webConfig.PprofAddr != "" {
		p := prof.NewProf()
		go p.PprofWeb(webConfig.PprofAddr)
		log.Printf("[WEB]: pprof listening on %s", webConfig.PprofAddr)
	}

	server, err := web.NewServer(webConfig)
	if err != nil {
		log.Fatalf("[WEB]: Failed to create web server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[WEB]: Starting web server on %s ...", webConfig.Addr())
	started := time.Now()
	if err := server.Start(ctx); err != nil {
		var bindErr *web.BindError
		if errors.As(err, &bindErr) {
			log.Fatalf("[WEB]: Failed to bind %s: %v", bindErr.Addr, bindErr.Err)
		}
		log.Fatalf("[WEB]: Web server failed: %v", err)
	}
	log.Printf("[WEB]: Graceful shutdown completed after %s", time.Since(started).Round(time.Second))
}

// applyFlags overrides config values with command-line flags if provided
func applyFlags(webConfig *config.WebConfig) {
	if webhost != "" {
		webConfig.ListenHost = webhost
		log.Printf("[WEB]: Overriding listen host with command-line flag: %s", webConfig.ListenHost)
	}
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	}
	if webssl {
		webConfig.SSL = true
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
	}
	if templateDir != "" {
		webConfig.TemplateDir = templateDir
	}
	if staticDir != "" {
		webConfig.StaticDir = staticDir
	}
	if reloadTemplates {
		webConfig.ReloadTemplates = true
	}
	if exposeErrors {
		webConfig.ExposeErrors = true
	}
	if pprofAddr != "" {
		webConfig.PprofAddr = pprofAddr
	}
}
