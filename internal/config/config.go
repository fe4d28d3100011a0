// Package config provides configuration management for go-modot.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/romshark/yamagiconf"
)

var AppVersion = "-unset-" // will be set at build time

const (
	DefaultListenHost = "127.0.0.1"
	DefaultListenPort = 5000
)

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenHost string `json:"listen_host"`
	ListenPort int    `json:"listen_port"`
	SSL        bool   `json:"ssl"`
	CertFile   string `json:"cert_file,omitempty"`
	KeyFile    string `json:"key_file,omitempty"`

	// TemplateDir and StaticDir switch from the embedded assets to files on disk.
	TemplateDir string `json:"template_dir,omitempty"`
	StaticDir   string `json:"static_dir,omitempty"`

	// ReloadTemplates re-renders templates after they change on disk.
	// Requires TemplateDir.
	ReloadTemplates bool `json:"reload_templates"`
	// ExposeErrors puts internal error detail into 500 responses.
	// Never enable this on a public listener.
	ExposeErrors bool `json:"expose_errors"`

	PprofAddr string `json:"pprof_addr,omitempty"`
}

// fileConfig is the on-disk YAML layout. Every key must be present.
type fileConfig struct {
	Web webFileConfig `yaml:"web"`
}

type webFileConfig struct {
	ListenHost      string `yaml:"listen_host" env:"MODOT_LISTEN_HOST"`
	ListenPort      uint16 `yaml:"listen_port" env:"MODOT_LISTEN_PORT"`
	SSL             bool   `yaml:"ssl"`
	CertFile        string `yaml:"cert_file"`
	KeyFile         string `yaml:"key_file"`
	TemplateDir     string `yaml:"template_dir"`
	StaticDir       string `yaml:"static_dir"`
	ReloadTemplates bool   `yaml:"reload_templates"`
	ExposeErrors    bool   `yaml:"expose_errors"`
	PprofAddr       string `yaml:"pprof_addr"`
}

// NewDefaultConfig returns a configuration with sensible defaults.
// Reload and error exposure are both off.
func NewDefaultConfig() *WebConfig {
	return &WebConfig{
		ListenHost: DefaultListenHost,
		ListenPort: DefaultListenPort,
	}
}

// LoadFile reads a YAML config file and returns the resulting WebConfig.
func LoadFile(path string) (*WebConfig, error) {
	var fc fileConfig
	if err := yamagiconf.LoadFile(path, &fc); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg := &WebConfig{
		ListenHost:      fc.Web.ListenHost,
		ListenPort:      int(fc.Web.ListenPort),
		SSL:             fc.Web.SSL,
		CertFile:        fc.Web.CertFile,
		KeyFile:         fc.Web.KeyFile,
		TemplateDir:     fc.Web.TemplateDir,
		StaticDir:       fc.Web.StaticDir,
		ReloadTemplates: fc.Web.ReloadTemplates,
		ExposeErrors:    fc.Web.ExposeErrors,
		PprofAddr:       fc.Web.PprofAddr,
	}
	log.Printf("[CONFIG]: loaded %s", path)
	return cfg, nil
}

// Addr returns the host:port the listener binds to.
func (c *WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.ListenHost, c.ListenPort)
}

// Validate checks the configuration before the server is built.
func (c *WebConfig) Validate() error {
	// port 0 lets the kernel pick, tests rely on it
	if c.ListenPort < 0 || c.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 0 and 65535)", c.ListenPort)
	}
	if c.SSL && (c.CertFile == "" || c.KeyFile == "") {
		return errors.New("SSL enabled but cert_file or key_file not specified in config")
	}
	if c.ReloadTemplates {
		if c.TemplateDir == "" {
			return errors.New("reload_templates requires template_dir")
		}
		if fi, err := os.Stat(c.TemplateDir); err != nil || !fi.IsDir() {
			return fmt.Errorf("template_dir %q is not a directory", c.TemplateDir)
		}
	}
	return nil
}
