package agent

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Runtime executes the tool-calling workflow for one conversation. Its internal
// decision loop is opaque to the orchestrator.
type Runtime interface {
	Name() string
	Run(ctx context.Context, conv Conversation, tools *Toolbox) (Result, error)
}

// Settings configures a concrete runtime.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	MaxTurns int
}

const defaultMaxTurns = 8

func (s Settings) maxTurns() int {
	if s.MaxTurns > 0 {
		return s.MaxTurns
	}
	return defaultMaxTurns
}

// NewRuntime picks the runtime for s.Provider.
func NewRuntime(s Settings, logger *zap.Logger) (Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch s.Provider {
	case "openai":
		return NewOpenAIRuntime(s, logger)
	case "deepseek":
		// DeepSeek speaks the OpenAI chat completions protocol.
		if s.BaseURL == "" {
			return nil, errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return NewOpenAIRuntime(s, logger)
	case "gemini":
		return NewGeminiRuntime(s, logger)
	case "local":
		return NewLocalRuntime(logger), nil
	case "":
		return nil, errors.New("llm provider missing; set llm.provider in config")
	default:
		return nil, fmt.Errorf("llm provider %s not supported", s.Provider)
	}
}
