// Package mcp exposes the page structure extractor over the Model Context
// Protocol so an LLM can request structural records for pages it is asked to
// interpret.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pagelens/pagelens/internal/config"
	"github.com/pagelens/pagelens/internal/descriptions"
	"github.com/pagelens/pagelens/internal/page"
	"github.com/pagelens/pagelens/internal/pdfio"
)

// Server represents the MCP server instance.
type Server struct {
	config    *config.Config
	extractor *page.Extractor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, extractor *page.Extractor) (*Server, error) {
	if extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		extractor: extractor,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		"page_structure_extract",
		mcp.WithDescription(descriptions.PageStructureExtractDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number, 1-indexed (default 1)"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handlePageStructureExtract)

	validateTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.PDFValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handlePDFValidateFile)
}

func (s *Server) handlePageStructureExtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pageNum := 1
	if p, ok := request.GetArguments()["page"].(float64); ok && p >= 1 {
		pageNum = int(p)
	}

	result, err := s.extractor.ExtractPage(ctx, path, pageNum)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := pdfio.ValidateFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages, %d bytes)",
			result.Path, result.PageCount, result.SizeBytes)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Error)
	}

	return mcp.NewToolResultText(responseText), nil
}

// Run starts the MCP server on standard I/O.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting %s MCP server on stdio", s.config.ServerName)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
