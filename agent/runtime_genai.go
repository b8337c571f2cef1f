package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiRuntime drives the tool workflow with Gemini function calling.
type GeminiRuntime struct {
	Model string

	apiKey   string
	baseURL  string
	maxTurns int
	logger   *zap.Logger
}

func NewGeminiRuntime(s Settings, logger *zap.Logger) (*GeminiRuntime, error) {
	if s.APIKey == "" {
		return nil, errors.New("gemini api key missing; provide llm.api_key or GEMINI_API_KEY")
	}
	model := s.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiRuntime{
		Model:    model,
		apiKey:   s.APIKey,
		baseURL:  s.BaseURL,
		maxTurns: s.maxTurns(),
		logger:   logger.Named("gemini"),
	}, nil
}

func (g *GeminiRuntime) Name() string { return "gemini" }

func (g *GeminiRuntime) Run(ctx context.Context, conv Conversation, tools *Toolbox) (Result, error) {
	cfg := &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(tools.Tools()))
	for _, t := range tools.Tools() {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:                 t.Name,
			Description:          t.Description,
			ParametersJsonSchema: t.Schema,
		})
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(conv.System, genai.RoleUser),
		Tools:             []*genai.Tool{{FunctionDeclarations: decls}},
	}

	contents := make([]*genai.Content, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	for turn := 1; turn <= g.maxTurns; turn++ {
		resp, err := client.Models.GenerateContent(ctx, g.Model, contents, config)
		if err != nil {
			return nil, fmt.Errorf("GenAI generate failed: %w", err)
		}
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return geminiResult(resp), nil
		}
		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}

		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			g.logger.Debug("tool call", zap.Int("turn", turn), zap.String("tool", call.Name))
			response := map[string]any{}
			args, err := json.Marshal(call.Args)
			if err == nil {
				var out string
				out, err = tools.Call(ctx, call.Name, args)
				response["output"] = out
			}
			if err != nil {
				g.logger.Warn("tool call failed", zap.String("tool", call.Name), zap.Error(err))
				response = map[string]any{"error": err.Error()}
			}
			part := genai.NewPartFromFunctionResponse(call.Name, response)
			part.FunctionResponse.ID = call.ID
			parts = append(parts, part)
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}
	return nil, fmt.Errorf("gemini: no final answer after %d turns", g.maxTurns)
}

// geminiResult hands the response over as a JSON document; its text lives
// under candidates[].content.parts[].text.
func geminiResult(resp *genai.GenerateContentResponse) Result {
	raw, err := json.Marshal(resp)
	if err != nil {
		return Unrecognized{Value: resp}
	}
	return Document(raw)
}
