package agent

import (
	"encoding/json"
	"fmt"

	"investor_outreach/outreach"
)

// Conversation is everything sent to the runtime for one request.
type Conversation struct {
	System   string
	Messages []ChatMessage
}

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role    string
	Content string
}

const instructionsTemplate = `You are %s's Investor Outreach Agent. Follow this strict, tool-driven workflow:

1) If bridge/angle aren't provided by the user, call bridge_and_angle(...) to generate them.
2) Call compose_email(...) with the provided inputs to draft the email.
3) Call so_what_check(...) and skim_check(...) on the draft.
4) If any issues are returned, revise the draft and re-check once.
Constraints:
- Tone: crisp, investor-friendly, confident.
- Never invent metrics. Only use user-provided inputs.
Return ONLY the final email body (first line must be 'Subject: ...').
`

// Instructions returns the fixed system instruction for product.
func Instructions(product outreach.ProductProfile) string {
	name := product.Name
	if name == "" {
		name = "the startup"
	}
	return fmt.Sprintf(instructionsTemplate, name)
}

// payload is the JSON body of the single user message.
type payload struct {
	outreach.Request
	Product outreach.ProductProfile `json:"product"`
}

// BuildConversation serializes the request as the sole user turn.
func BuildConversation(req outreach.Request, product outreach.ProductProfile) (Conversation, error) {
	raw, err := json.Marshal(payload{Request: req, Product: product})
	if err != nil {
		return Conversation{}, fmt.Errorf("encode payload: %w", err)
	}
	return Conversation{
		System:   Instructions(product),
		Messages: []ChatMessage{{Role: "user", Content: string(raw)}},
	}, nil
}

// decodePayload is the inverse of BuildConversation's user message.
func decodePayload(content string) (outreach.Request, outreach.ProductProfile, error) {
	var p payload
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return outreach.Request{}, outreach.ProductProfile{}, fmt.Errorf("decode payload: %w", err)
	}
	return p.Request, p.Product, nil
}
