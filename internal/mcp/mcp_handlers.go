package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	logger  *zap.Logger
}

// variantInfo is the listing of one leaderboard.
type variantInfo struct {
	Name        schema.VariantName `json:"name"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Formula     schema.Formula     `json:"formula"`
	SortKeys    []string           `json:"sort_keys"`
	Form        []schema.FormField `json:"form"`
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListLeaderboards(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := make([]variantInfo, len(schema.AllVariants))
	for i, v := range schema.AllVariants {
		out[i] = variantInfo{
			Name:        v.Name,
			Title:       v.Title,
			Description: v.Description,
			Formula:     v.Formula,
			SortKeys:    v.SortableKeys(),
			Form:        v.FormFields(),
		}
	}
	return jsonResult(out)
}

func (h *toolHandler) handleGetLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := contract.RevalidateView(h.baseCfg, contract.ViewParams{
		Variant:   request.GetString("variant", ""),
		Sort:      request.GetString("sort", ""),
		Direction: request.GetString("direction", ""),
		Search:    request.GetString("search", ""),
		Filter:    request.GetString("filter", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid leaderboard parameters: %v", err)), nil
	}

	board, err := core.GetLeaderboard(ctx, cfg, h.mgr)
	if err != nil {
		h.logger.Warn("get_leaderboard failed", zap.String("variant", string(cfg.Variant.Name)), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	if l := request.GetInt("limit", 0); l > 0 && l < len(board.Rows) {
		board.Rows = board.Rows[:l]
	}
	return jsonResult(board)
}

func (h *toolHandler) handleGetSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := core.GetSummaries(ctx, h.mgr, schema.AllVariants)
	if err != nil {
		h.logger.Warn("get_summary failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(summaries)
}

func (h *toolHandler) handleSubmitScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := schema.LookupVariant(request.GetString("variant", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, ok := request.GetArguments()["fields"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("fields must be an object of form values"), nil
	}
	fields, err := contract.FormValues(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, err := core.SubmitRecord(ctx, h.mgr.GetRecordStore(), v, fields)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			return mcp.NewToolResultError(fmt.Sprintf("%v (fields: %s)", err, strings.Join(ve.Fields(), ", "))), nil
		}
		h.logger.Error("submit_score failed", zap.String("variant", string(v.Name)), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	h.logger.Info("score submitted", zap.String("variant", string(v.Name)), zap.String("id", record.ID))
	return jsonResult(record)
}
