package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dougaird/angular-text-extractor/pkg/classifier"
	"github.com/dougaird/angular-text-extractor/pkg/keygen"
	"github.com/dougaird/angular-text-extractor/pkg/session"
)

func (s *Server) handleExtractTexts(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	srcPath, err := req.RequireString("src_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := session.DefaultConfig()
	cfg.SrcPath = srcPath
	cfg.KeyPrefix = req.GetString("key_prefix", cfg.KeyPrefix)
	cfg.Locale = req.GetString("locale", cfg.Locale)
	cfg.UseComponentContext = req.GetBool("component_context", false)
	cfg.Replace = false // tool calls never touch the working tree

	sess, err := session.New(cfg, s.parserMgr, nil, s.logger)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create session: %v", err)), nil
	}
	defer sess.Close()

	artifact, err := sess.Run()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	return jsonResult(artifact)
}

func (s *Server) handleClassifyText(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"text":        text,
		"displayText": classifier.IsDisplayText(text, nil),
	})
}

func (s *Server) handlePreviewKey(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	componentCtx := ""
	if file := req.GetString("component_file", ""); file != "" {
		componentCtx = keygen.DeriveComponentContext(file)
	}

	// A throwaway generator: the preview must not advance any session
	// counter.
	gen := keygen.NewGenerator(req.GetString("key_prefix", "app"))
	return jsonResult(map[string]any{
		"key": gen.Next(text, componentCtx),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
