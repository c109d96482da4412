package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeCLI {
		t.Errorf("Expected default mode to be 'cli', got '%s'", cfg.Mode)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}

	if cfg.Page != 1 {
		t.Errorf("Expected default page to be 1, got %d", cfg.Page)
	}

	if cfg.DPI != 200 {
		t.Errorf("Expected default dpi to be 200, got %d", cfg.DPI)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "pagelens" {
		t.Errorf("Expected default server name to be 'pagelens', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(mutate func(*Config)) *Config {
		cfg := DefaultConfig()
		cfg.PDFPath = "/tmp/form.pdf"
		mutate(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{
			name:   "valid cli config",
			config: valid(func(c *Config) {}),
		},
		{
			name: "valid server config without pdf path",
			config: valid(func(c *Config) {
				c.Mode = ModeServer
				c.PDFPath = ""
			}),
		},
		{
			name:    "invalid mode",
			config:  valid(func(c *Config) { c.Mode = "http" }),
			wantErr: "mode must be either",
		},
		{
			name: "server mode port too low",
			config: valid(func(c *Config) {
				c.Mode = ModeServer
				c.Port = 0
			}),
			wantErr: "port must be between",
		},
		{
			name: "server mode port too high",
			config: valid(func(c *Config) {
				c.Mode = ModeServer
				c.Port = 70000
			}),
			wantErr: "port must be between",
		},
		{
			name:   "cli mode ignores port",
			config: valid(func(c *Config) { c.Port = 0 }),
		},
		{
			name:    "cli mode requires pdf path",
			config:  valid(func(c *Config) { c.PDFPath = "" }),
			wantErr: "PDF path is required",
		},
		{
			name:    "page below one",
			config:  valid(func(c *Config) { c.Page = 0 }),
			wantErr: "page must be at least 1",
		},
		{
			name:    "dpi too low",
			config:  valid(func(c *Config) { c.DPI = 35 }),
			wantErr: "dpi must be between",
		},
		{
			name:    "dpi too high",
			config:  valid(func(c *Config) { c.DPI = 601 }),
			wantErr: "dpi must be between",
		},
		{
			name:   "dpi at lower bound",
			config: valid(func(c *Config) { c.DPI = 36 }),
		},
		{
			name:   "dpi at upper bound",
			config: valid(func(c *Config) { c.DPI = 600 }),
		},
		{
			name:    "invalid log level",
			config:  valid(func(c *Config) { c.LogLevel = "trace" }),
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				return
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "localhost"
	cfg.Port = 9090

	if got := cfg.Address(); got != "localhost:9090" {
		t.Errorf("Expected address 'localhost:9090', got '%s'", got)
	}
}

func TestConfigModeHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.IsCLIMode() {
		t.Error("Expected default config to be in cli mode")
	}
	if cfg.IsServerMode() {
		t.Error("Expected default config not to be in server mode")
	}

	cfg.Mode = ModeServer
	if cfg.IsCLIMode() {
		t.Error("Expected server config not to be in cli mode")
	}
	if !cfg.IsServerMode() {
		t.Error("Expected server config to be in server mode")
	}
}

func TestConfigIsDebug(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.IsDebug() {
		t.Error("Expected info level not to report debug")
	}

	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("Expected debug level to report debug")
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PDFPath = "/tmp/form.pdf"
	cfg.Page = 3

	s := cfg.String()
	for _, want := range []string{"cli", "/tmp/form.pdf", "Page: 3", "DPI: 200"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected String() to contain %q, got %q", want, s)
		}
	}
}
