// Package mcptools serves the outreach tools over the Model Context Protocol so
// any MCP-capable agent host can drive the drafting workflow.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"investor_outreach/agent"
	"investor_outreach/outreach"
)

// Server wraps the MCP SDK server around an agent toolbox.
type Server struct {
	MCPServer *sdkmcp.Server

	tools  *agent.Toolbox
	logger *zap.Logger
}

type bulletsOutput struct {
	Bullets string `json:"bullets" jsonschema:"one line per metric, each starting with a bullet"`
}

// NewServer registers the five outreach tools. Calls share the toolbox, so
// product fields left empty are filled from its profile.
func NewServer(tools *agent.Toolbox, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		MCPServer: sdkmcp.NewServer(&sdkmcp.Implementation{Name: "investor-outreach", Version: version}, nil),
		tools:     tools,
		logger:    logger.Named("mcp"),
	}

	for _, t := range tools.Tools() {
		switch t.Name {
		case agent.ToolTractionBullets:
			addTool[outreach.TractionItems](s, t, func(raw string) (bulletsOutput, error) {
				return bulletsOutput{Bullets: raw}, nil
			})
		case agent.ToolBridgeAndAngle:
			addTool[outreach.BridgeInput](s, t, decodeJSON[outreach.BridgeAngle])
		case agent.ToolComposeEmail:
			addTool[outreach.ComposeInput](s, t, decodeJSON[outreach.ComposedEmail])
		case agent.ToolSoWhatCheck:
			addTool[outreach.PersonalizationInput](s, t, decodeJSON[outreach.Issues])
		case agent.ToolSkimCheck:
			addTool[outreach.ScannabilityInput](s, t, decodeJSON[outreach.Issues])
		default:
			s.logger.Warn("tool has no MCP binding", zap.String("tool", t.Name))
		}
	}
	return s
}

// Run serves over stdin/stdout until ctx ends or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server over stdio", zap.Int("tools", len(s.tools.Tools())))
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func addTool[In, Out any](s *Server, tool agent.Tool, decode func(string) (Out, error)) {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        tool.Name,
		Description: tool.Description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, Out, error) {
		var zero Out
		args, err := json.Marshal(in)
		if err != nil {
			return nil, zero, fmt.Errorf("%s: encode arguments: %w", tool.Name, err)
		}
		raw, err := s.tools.Call(ctx, tool.Name, args)
		if err != nil {
			s.logger.Warn("tool call failed", zap.String("tool", tool.Name), zap.Error(err))
			return nil, zero, err
		}
		out, err := decode(raw)
		if err != nil {
			return nil, zero, fmt.Errorf("%s: %w", tool.Name, err)
		}
		s.logger.Debug("tool call", zap.String("tool", tool.Name))
		return nil, out, nil
	})
}

func decodeJSON[Out any](raw string) (Out, error) {
	var out Out
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode result: %w", err)
	}
	return out, nil
}
