// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// NewMCPServer initializes and configures the Benchboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"Benchboard Leaderboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	if logger == nil {
		logger = zap.NewNop()
	}
	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		logger:  logger,
	}

	// --- 1. Tool: list_leaderboards ---
	s.AddTool(mcp.NewTool("list_leaderboards",
		mcp.WithDescription("List every leaderboard with its fields, formula and submission form."),
	), h.handleListLeaderboards)

	// --- 2. Tool: get_leaderboard ---
	s.AddTool(mcp.NewTool("get_leaderboard",
		mcp.WithDescription("Load one leaderboard, ranked by its aggregate score, then filtered and sorted."),
		mcp.WithString("variant", mcp.Description("Leaderboard name."), mcp.Required(), mcp.Enum("models", "logickor", "rag")),
		mcp.WithString("sort", mcp.Description("Field key to sort by (defaults to rank).")),
		mcp.WithString("direction", mcp.Description("Sort direction. Defaults to the field default."), mcp.Enum("asc", "desc")),
		mcp.WithString("search", mcp.Description("Case-insensitive substring matched against the name columns.")),
		mcp.WithString("filter", mcp.Description("Filter type: all, top10, or a category value.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleGetLeaderboard)

	// --- 3. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Summarize every leaderboard: record count, average, top entry and metric totals."),
	), h.handleGetSummary)

	// --- 4. Tool: submit_score ---
	s.AddTool(mcp.NewTool("submit_score",
		mcp.WithDescription("Submit one score to a leaderboard. Field values are validated against the submission form."),
		mcp.WithString("variant", mcp.Description("Leaderboard name."), mcp.Required(), mcp.Enum("models", "logickor", "rag")),
		mcp.WithObject("fields", mcp.Description("Form field values keyed by field name, e.g. {\"model\": \"x\", \"ifeval\": 80}."), mcp.Required()),
	), h.handleSubmitScore)

	return s
}

// StartMCPServer starts the Benchboard MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := NewMCPServer(baseCfg, mgr, logger)
	logger.Info("serving MCP on stdio", zap.String("backend", string(baseCfg.StoreBackend)))
	return server.ServeStdio(s)
}
