package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `web:
  listen_host: "0.0.0.0"
  listen_port: 8088
  ssl: false
  cert_file: ""
  key_file: ""
  template_dir: ""
  static_dir: "web/static"
  reload_templates: false
  expose_errors: true
  pprof_addr: ""
`

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
	assert.False(t, cfg.ReloadTemplates)
	assert.False(t, cfg.ExposeErrors)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.ListenHost)
	assert.Equal(t, 8088, cfg.ListenPort)
	assert.Equal(t, "web/static", cfg.StaticDir)
	assert.True(t, cfg.ExposeErrors)
	assert.False(t, cfg.ReloadTemplates)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]struct {
		mutate  func(c *WebConfig)
		wantErr bool
	}{
		"defaults":              {func(c *WebConfig) {}, false},
		"ephemeral port":        {func(c *WebConfig) { c.ListenPort = 0 }, false},
		"port too large":        {func(c *WebConfig) { c.ListenPort = 70000 }, true},
		"negative port":         {func(c *WebConfig) { c.ListenPort = -1 }, true},
		"ssl without cert":      {func(c *WebConfig) { c.SSL = true }, true},
		"ssl with cert and key": {func(c *WebConfig) { c.SSL, c.CertFile, c.KeyFile = true, "c.pem", "k.pem" }, false},
		"reload without dir":    {func(c *WebConfig) { c.ReloadTemplates = true }, true},
		"reload with dir":       {func(c *WebConfig) { c.ReloadTemplates, c.TemplateDir = true, dir }, false},
		"reload with bad dir": {func(c *WebConfig) {
			c.ReloadTemplates, c.TemplateDir = true, filepath.Join(dir, "missing")
		}, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			if tt.wantErr {
				require.Error(t, cfg.Validate())
				return
			}
			require.NoError(t, cfg.Validate())
		})
	}
}
