package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/pagelens/pagelens/internal/config"
	"github.com/pagelens/pagelens/internal/mcp"
	"github.com/pagelens/pagelens/internal/page"
	"github.com/pagelens/pagelens/internal/pdfio"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	// All diagnostics go to stderr; stdout carries either the JSON record
	// (cli mode) or the MCP protocol stream (server mode).
	log.SetOutput(os.Stderr)
	if cfg.IsServerMode() && !cfg.IsDebug() {
		log.SetOutput(os.NewFile(0, os.DevNull))
	}
}

// newExtractor wires the PDF backends into a page extractor. pdfium carries
// both text extraction and rendering; if its WASM runtime cannot start we
// fall back to the pure-Go text backend and lose raster analysis.
func newExtractor(cfg *config.Config, logger *log.Logger) (*page.Extractor, func(), error) {
	extractorConfig := page.DefaultExtractorConfig()
	extractorConfig.DPI = cfg.DPI
	extractorConfig.Debug = cfg.Debug

	engine, err := pdfio.NewPdfiumEngine()
	if err != nil {
		logger.Printf("pdfium unavailable, falling back to text-only extraction: %v", err)
		extractor := page.NewExtractorWithConfig(pdfio.NewLedongthucExtractor(), nil, logger, extractorConfig)
		return extractor, func() {}, nil
	}

	extractor := page.NewExtractorWithConfig(engine, engine, logger, extractorConfig)
	return extractor, func() { _ = engine.Close() }, nil
}

// runCLIMode extracts one page and writes the JSON record to stdout or the
// configured output file.
func runCLIMode(ctx context.Context, cfg *config.Config, extractor *page.Extractor) error {
	if _, err := os.Stat(cfg.PDFPath); err != nil {
		return fmt.Errorf("file not found: %s", cfg.PDFPath)
	}

	result, err := extractor.ExtractPage(ctx, cfg.PDFPath, cfg.Page)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	var payload []byte
	if cfg.Pretty {
		payload, err = json.MarshalIndent(result, "", "  ")
	} else {
		payload, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	payload = append(payload, '\n')

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
		}
		return nil
	}

	_, err = os.Stdout.Write(payload)
	return err
}

// runServerMode serves MCP on stdio with signal handling
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		cancel()
		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger := log.New(os.Stderr, "pagelens: ", log.LstdFlags)
	if cfg.IsServerMode() && !cfg.IsDebug() {
		logger.SetOutput(os.NewFile(0, os.DevNull))
	}

	extractor, cleanup, err := newExtractor(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize extractor: %v", err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		server, err := mcp.NewServer(cfg, extractor)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		runServerMode(ctx, cancel, server)
		return
	}

	if err := runCLIMode(ctx, cfg, extractor); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("pagelens\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
