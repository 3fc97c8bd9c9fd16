package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/willshacklett/godscore/core"
	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	led     contract.Ledger
}

func (h *toolHandler) handleEvaluateChange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := &schema.RawChange{
		AddedLines:    request.GetInt("added_lines", 0),
		RemovedLines:  request.GetInt("removed_lines", 0),
		Message:       request.GetString("message", ""),
		TestsDetected: request.GetBool("tests_detected", false),
	}
	if files := request.GetString("files", ""); files != "" {
		for _, f := range strings.Split(files, ",") {
			if f = strings.TrimSpace(f); f != "" {
				raw.Files = append(raw.Files, f)
			}
		}
	}
	if !raw.TestsDetected {
		raw.TestsDetected = core.DetectTestSignals(raw.Files)
	}

	policy := h.baseCfg.Policy
	if t := request.GetString("threshold", ""); t != "" {
		v, err := parseScale(t)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid threshold: %v", err)), nil
		}
		policy.Threshold = v
	}
	if m := request.GetString("mode", ""); m != "" {
		mode, err := schema.ParseMode(m)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid mode: %v", err)), nil
		}
		policy.Mode = mode
	}

	lineage := request.GetString("lineage", h.baseCfg.Lineage)
	identity := request.GetString("identity", "mcp")

	ev := &core.Evaluation{
		Raw:        raw,
		ScoreInput: request.GetString("score", ""),
		Weights:    h.baseCfg.Weights,
		Extractor:  h.baseCfg.Extractor,
		Policy:     policy,
		Lineage:    lineage,
		Identity:   identity,
		WindowSize: h.baseCfg.WindowSize,
	}

	result, err := core.Evaluate(ctx, ev, h.led)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.led == nil {
		return mcp.NewToolResultError("history ledger is disabled"), nil
	}

	lineage := request.GetString("lineage", h.baseCfg.Lineage)
	limit := request.GetInt("limit", 0)
	if limit <= 0 || limit > schema.MaxWindowSize {
		limit = schema.DefaultWindowSize
	}

	records, err := h.led.RecentWindow(ctx, lineage, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history read failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFeatureInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type featureInfo struct {
		Feature     schema.FeatureKey `json:"feature"`
		Penalty     bool              `json:"penalty"`
		Description string            `json:"description"`
	}
	infos := make([]featureInfo, 0, len(schema.AllFeatures))
	for _, key := range schema.AllFeatures {
		infos = append(infos, featureInfo{
			Feature:     key,
			Penalty:     key != schema.FeatureRevert,
			Description: schema.FeatureDescriptions[key],
		})
	}

	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// parseScale accepts a threshold on either scale and normalizes it.
func parseScale(raw string) (float64, error) {
	var v float64
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%f", &v); err != nil {
		return 0, fmt.Errorf("not numeric: %q", raw)
	}
	return core.NormalizeScale(v), nil
}
