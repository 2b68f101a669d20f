// Package mcp exposes the extractor over the Model Context Protocol so
// editor agents can run dry-run extractions and probe the classifier
// without shelling out.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dougaird/angular-text-extractor/pkg/parser"
)

const serverVersion = "0.1.0"

// Server implements the MCP server, exposing extraction and
// classification tools over stdio.
type Server struct {
	mcpServer *server.MCPServer
	parserMgr *parser.Manager
	logger    *slog.Logger
}

// NewServer creates an MCP server sharing the given parser manager across
// tool calls.
func NewServer(pm *parser.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{parserMgr: pm, logger: logger}

	s.mcpServer = server.NewMCPServer(
		"ngextract",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: extractTextsTool(), Handler: s.handleExtractTexts},
		server.ServerTool{Tool: classifyTextTool(), Handler: s.handleClassifyText},
		server.ServerTool{Tool: previewKeyTool(), Handler: s.handlePreviewKey},
	)
	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func extractTextsTool() mcp.Tool {
	return mcp.NewTool("extract_texts",
		mcp.WithDescription("Extract user-facing display texts from an Angular source directory (dry run, no files modified). Returns the translation artifact as JSON."),
		mcp.WithString("src_path", mcp.Required(), mcp.Description("Root directory to scan")),
		mcp.WithString("key_prefix", mcp.Description("Root namespace for generated keys (default: app)")),
		mcp.WithString("locale", mcp.Description("Locale tag stored in the artifact (default: en)")),
		mcp.WithBoolean("component_context", mcp.Description("Namespace keys with a token derived from each filename")),
	)
}

func classifyTextTool() mcp.Tool {
	return mcp.NewTool("classify_text",
		mcp.WithDescription("Decide whether a string is user-facing display text or incidental code (identifier, path, URL, constant)."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Candidate string to classify")),
	)
}

func previewKeyTool() mcp.Tool {
	return mcp.NewTool("preview_key",
		mcp.WithDescription("Show the translation key a text would receive, without registering it."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Display text to derive a key for")),
		mcp.WithString("key_prefix", mcp.Description("Root namespace (default: app)")),
		mcp.WithString("component_file", mcp.Description("Filename to derive a component context from")),
	)
}
