package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"investor_outreach/outreach"
)

// LocalRuntime runs the mandated tool sequence itself, without calling a model.
// Handy for local debugging and offline demos.
type LocalRuntime struct {
	logger *zap.Logger
}

func NewLocalRuntime(logger *zap.Logger) *LocalRuntime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalRuntime{logger: logger.Named("local")}
}

func (*LocalRuntime) Name() string { return "local" }

func (l *LocalRuntime) Run(ctx context.Context, conv Conversation, tools *Toolbox) (Result, error) {
	var content string
	for _, m := range conv.Messages {
		if m.Role == "user" {
			content = m.Content
		}
	}
	if content == "" {
		return nil, errors.New("local runtime: no user message")
	}
	req, product, err := decodePayload(content)
	if err != nil {
		return nil, err
	}
	if product.Name == "" {
		product = tools.Product()
	}

	var ba outreach.BridgeAngle
	if err := callJSON(ctx, tools, ToolBridgeAndAngle, req.BridgeInput(product), &ba); err != nil {
		return nil, err
	}
	var email outreach.ComposedEmail
	if err := callJSON(ctx, tools, ToolComposeEmail, req.ComposeInput(product, ba), &email); err != nil {
		return nil, err
	}

	var soWhat, skim outreach.Issues
	check := outreach.PersonalizationInput{
		EmailText:         email.Body,
		InvestorFirstName: req.InvestorFirstName,
		FirmName:          req.Firm,
		Product:           product.Name,
	}
	if err := callJSON(ctx, tools, ToolSoWhatCheck, check, &soWhat); err != nil {
		return nil, err
	}
	if err := callJSON(ctx, tools, ToolSkimCheck, outreach.ScannabilityInput{EmailText: email.Body}, &skim); err != nil {
		return nil, err
	}
	// Nothing to revise with; the orchestrator re-runs the checks on the final text.
	l.logger.Debug("draft review",
		zap.String("firm", req.Firm),
		zap.Strings("so_what", soWhat.Issues),
		zap.Strings("skim", skim.Issues),
	)
	return Text(email.Body), nil
}

func callJSON(ctx context.Context, tools *Toolbox, name string, in, out any) error {
	args, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode arguments: %w", name, err)
	}
	raw, err := tools.Call(ctx, name, args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%s: decode result: %w", name, err)
	}
	return nil
}
