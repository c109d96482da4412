package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeCLI    = "cli"
	ModeServer = "server"

	// Default values
	DefaultDPI      = 200
	DefaultPage     = 1
	DefaultPort     = 8080
	DefaultHost     = "127.0.0.1"
	DefaultLogLevel = "info"
)

// Config holds all configuration for the page structure extractor.
type Config struct {
	// Execution mode: one-shot CLI extraction or MCP server.
	Mode string
	Host string
	Port int

	// Extraction configuration
	PDFPath string
	Page    int
	DPI     int
	Output  string
	Pretty  bool
	Debug   bool

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:       ModeCLI,
		Host:       DefaultHost,
		Port:       DefaultPort,
		Page:       DefaultPage,
		DPI:        DefaultDPI,
		Version:    "1.0.0",
		ServerName: "pagelens",
		LogLevel:   DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// The PDF path is positional in cli mode.
	if args := pflag.Args(); len(args) > 0 {
		cfg.PDFPath = args[0]
	}
	if cfg.PDFPath != "" {
		if expandedPath, err := filepath.Abs(cfg.PDFPath); err == nil {
			cfg.PDFPath = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PAGELENS")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("page", cfg.Page)
	viper.SetDefault("dpi", cfg.DPI)
	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("pretty", cfg.Pretty)
	viper.SetDefault("debug", cfg.Debug)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Execution mode: 'cli' for one-shot extraction, 'server' for MCP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.Int("page", cfg.Page, "Page number to extract, 1-indexed (cli mode only)")
	pflag.Int("dpi", cfg.DPI, "Render resolution for control detection")
	pflag.StringP("output", "o", cfg.Output, "Output JSON file path (default stdout)")
	pflag.Bool("pretty", cfg.Pretty, "Pretty print JSON output")
	pflag.Bool("debug", cfg.Debug, "Write an annotated debug image next to the PDF")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("page", pflag.Lookup("page"))
	_ = viper.BindPFlag("dpi", pflag.Lookup("dpi"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("pretty", pflag.Lookup("pretty"))
	_ = viper.BindPFlag("debug", pflag.Lookup("debug"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npagelens - document page structure extraction\n\n")
		fmt.Fprintf(os.Stderr, "  %s [options] <pdf-path>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s form.pdf                            # extract page 1 to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --page=3 --pretty form.pdf          # pretty-printed page 3\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --debug -o out.json form.pdf        # with debug image\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server                       # MCP server mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PAGELENS_MODE      Execution mode\n")
		fmt.Fprintf(os.Stderr, "  PAGELENS_HOST      Server host\n")
		fmt.Fprintf(os.Stderr, "  PAGELENS_PORT      Server port\n")
		fmt.Fprintf(os.Stderr, "  PAGELENS_DPI       Render resolution\n")
		fmt.Fprintf(os.Stderr, "  PAGELENS_LOGLEVEL  Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.Page = viper.GetInt("page")
	cfg.DPI = viper.GetInt("dpi")
	cfg.Output = viper.GetString("output")
	cfg.Pretty = viper.GetBool("pretty")
	cfg.Debug = viper.GetBool("debug")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeCLI && c.Mode != ModeServer {
		return errors.New("mode must be either 'cli' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.Mode == ModeCLI && c.PDFPath == "" {
		return errors.New("a PDF path is required in cli mode")
	}

	if c.Page < 1 {
		return errors.New("page must be at least 1")
	}

	if c.DPI < 36 || c.DPI > 600 {
		return errors.New("dpi must be between 36 and 600")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, PDFPath: %s, Page: %d, DPI: %d, LogLevel: %s}",
		c.Mode, c.PDFPath, c.Page, c.DPI, c.LogLevel)
}

// IsServerMode returns true if running as an MCP server.
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsCLIMode returns true if running a one-shot extraction.
func (c *Config) IsCLIMode() bool {
	return c.Mode == ModeCLI
}
