package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

// OpenAIRuntime drives the tool workflow through the official openai-go SDK
// (chat completions with function tools).
type OpenAIRuntime struct {
	Model string
	Opts  []option.RequestOption

	provider string
	maxTurns int
	logger   *zap.Logger
}

func NewOpenAIRuntime(s Settings, logger *zap.Logger) (*OpenAIRuntime, error) {
	if s.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key or OPENAI_API_KEY")
	}
	if s.Model == "" {
		return nil, errors.New("llm model is required")
	}
	// Failures surface to the user instead of being retried.
	opts := []option.RequestOption{option.WithAPIKey(s.APIKey), option.WithMaxRetries(0)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	provider := s.Provider
	if provider == "" {
		provider = "openai"
	}
	return &OpenAIRuntime{
		Model:    s.Model,
		Opts:     opts,
		provider: provider,
		maxTurns: s.maxTurns(),
		logger:   logger.Named(provider),
	}, nil
}

func (o *OpenAIRuntime) Name() string { return o.provider }

func (o *OpenAIRuntime) Run(ctx context.Context, conv Conversation, tools *Toolbox) (Result, error) {
	client := openai.NewClient(o.Opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(conv.System),
	}
	for _, m := range conv.Messages {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	toolParams, err := openAITools(tools)
	if err != nil {
		return nil, err
	}
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.Model),
		Messages: msgs,
		Tools:    toolParams,
	}

	for turn := 1; turn <= o.maxTurns; turn++ {
		resp, err := client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("openai: empty choices")
		}
		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return completionResult(resp), nil
		}

		params.Messages = append(params.Messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			o.logger.Debug("tool call",
				zap.Int("turn", turn),
				zap.String("tool", call.Function.Name),
				zap.String("call_id", call.ID))
			out, err := tools.Call(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
			if err != nil {
				o.logger.Warn("tool call failed", zap.String("tool", call.Function.Name), zap.Error(err))
				out = toolError(err)
			}
			params.Messages = append(params.Messages, openai.ToolMessage(out, call.ID))
		}
	}
	return nil, fmt.Errorf("%s: no final answer after %d turns", o.provider, o.maxTurns)
}

func openAITools(tools *Toolbox) ([]openai.ChatCompletionToolParam, error) {
	var out []openai.ChatCompletionToolParam
	for _, t := range tools.Tools() {
		params, err := t.Parameters()
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", t.Name, err)
		}
		out = append(out, openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  shared.FunctionParameters(params),
			},
		})
	}
	return out, nil
}

// completionResult exposes the final completion as an Object with a
// choices sequence and the raw JSON as its structure dump.
func completionResult(resp *openai.ChatCompletion) Result {
	items := make([]Item, 0, len(resp.Choices))
	for _, c := range resp.Choices {
		items = append(items, Item{
			Type:    "message",
			Message: &Message{Role: string(c.Message.Role), Content: c.Message.Content},
		})
	}
	obj := &Object{Choices: items}
	if raw := resp.RawJSON(); raw != "" {
		obj.Dump = json.RawMessage(raw)
	}
	return obj
}
