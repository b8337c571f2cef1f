package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"investor_outreach/outreach"
)

// Tool names, as declared to runtimes and the MCP server.
const (
	ToolTractionBullets = "traction_bullets"
	ToolBridgeAndAngle  = "bridge_and_angle"
	ToolComposeEmail    = "compose_email"
	ToolSoWhatCheck     = "so_what_check"
	ToolSkimCheck       = "skim_check"
)

// Tool is one strongly-typed callable offered to the runtime.
type Tool struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema

	call func(ctx context.Context, args json.RawMessage) (any, error)
}

// Parameters returns the input schema as a plain JSON object.
func (t Tool) Parameters() (map[string]any, error) {
	raw, err := json.Marshal(t.Schema)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Toolbox holds the outreach tools and dispatches calls by name.
type Toolbox struct {
	product outreach.ProductProfile
	tools   []Tool
	byName  map[string]int
}

// NewToolbox builds the tool set. Product fields left empty by the model are
// filled from product.
func NewToolbox(product outreach.ProductProfile) (*Toolbox, error) {
	tb := &Toolbox{product: product, byName: map[string]int{}}

	builders := []func() (Tool, error){
		func() (Tool, error) {
			return newTool(ToolTractionBullets, "Return formatted bullets from traction items.",
				func(_ context.Context, in outreach.TractionItems) (string, error) {
					return outreach.TractionBullets(in.Items), nil
				})
		},
		func() (Tool, error) {
			return newTool(ToolBridgeAndAngle, "Produce a personalized bridge (why them + why now) and a suggested angle.",
				func(_ context.Context, in outreach.BridgeInput) (outreach.BridgeAngle, error) {
					if in.Product == "" {
						in.Product = tb.product.Name
					}
					if in.Positioning == "" {
						in.Positioning = tb.product.Positioning
					}
					return outreach.BridgeAndAngle(in), nil
				})
		},
		func() (Tool, error) {
			return newTool(ToolComposeEmail, "Compose the investor email (subject + body with bullets + CTA).",
				func(_ context.Context, in outreach.ComposeInput) (outreach.ComposedEmail, error) {
					if in.Product == "" {
						in.Product = tb.product.Name
					}
					if in.FromCompany == "" {
						in.FromCompany = tb.product.Company
					}
					return outreach.Compose(in), nil
				})
		},
		func() (Tool, error) {
			return newTool(ToolSoWhatCheck, "Personalization & value checks.",
				func(_ context.Context, in outreach.PersonalizationInput) (outreach.Issues, error) {
					if in.Product == "" {
						in.Product = tb.product.Name
					}
					return outreach.CheckPersonalization(in), nil
				})
		},
		func() (Tool, error) {
			return newTool(ToolSkimCheck, "Scannability checks: subject, bullets, paragraph length.",
				func(_ context.Context, in outreach.ScannabilityInput) (outreach.Issues, error) {
					return outreach.CheckScannability(in.EmailText), nil
				})
		},
	}
	for _, build := range builders {
		t, err := build()
		if err != nil {
			return nil, err
		}
		tb.byName[t.Name] = len(tb.tools)
		tb.tools = append(tb.tools, t)
	}
	return tb, nil
}

func newTool[In, Out any](name, description string, fn func(context.Context, In) (Out, error)) (Tool, error) {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return Tool{}, fmt.Errorf("schema for %s: %w", name, err)
	}
	return Tool{
		Name:        name,
		Description: description,
		Schema:      schema,
		call: func(ctx context.Context, args json.RawMessage) (any, error) {
			var in In
			if len(args) > 0 {
				if err := json.Unmarshal(args, &in); err != nil {
					return nil, fmt.Errorf("%s: decode arguments: %w", name, err)
				}
			}
			return fn(ctx, in)
		},
	}, nil
}

// Tools lists the declared tools in a stable order.
func (tb *Toolbox) Tools() []Tool {
	return tb.tools
}

// Product returns the profile used to fill defaults.
func (tb *Toolbox) Product() outreach.ProductProfile {
	return tb.product
}

// Call runs the named tool and returns its output as text for the model.
func (tb *Toolbox) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	i, ok := tb.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}
	out, err := tb.tools[i].call(ctx, args)
	if err != nil {
		return "", err
	}
	if s, ok := out.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("%s: encode result: %w", name, err)
	}
	return string(raw), nil
}

// toolError renders a failed call as a tool message the model can read.
func toolError(err error) string {
	raw, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(raw)
}
