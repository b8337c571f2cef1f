package outreach

import (
	"context"
	"fmt"
	"strings"
)

const defaultEvent = "our recent conversation"

// TractionBullets renders one "• label: value" line per metric, in order.
func TractionBullets(items []Metric) string {
	lines := make([]string, len(items))
	for i, m := range items {
		lines[i] = fmt.Sprintf("• %s: %s", m.Label, m.Value)
	}
	return strings.Join(lines, "\n")
}

// Subject returns the fixed subject pattern. Downstream checks rely on the exact punctuation.
func Subject(product, event string) string {
	if event == "" {
		event = defaultEvent
	}
	return fmt.Sprintf("%s — Following up from %s", product, event)
}

// Compose renders the investor email. Optional inputs that are empty drop their
// sentence entirely; nothing outside the input is rendered as a fact.
func Compose(in ComposeInput) ComposedEmail {
	product := in.Product
	if product == "" {
		product = in.FromCompany
	}
	event := in.ContextEvent
	if event == "" {
		event = defaultEvent
	}
	subject := Subject(product, event)

	paragraphs := []string{
		"Subject: " + subject,
		introParagraph(in, event),
	}
	paragraphs = append(paragraphs, productParagraphs(in, product)...)
	if len(in.TractionItems) > 0 {
		paragraphs = append(paragraphs, "Our traction shows the model is working:\n"+TractionBullets(in.TractionItems))
	}
	if len(in.Partnerships) > 0 {
		paragraphs = append(paragraphs, fmt.Sprintf("Key partnerships: %s.", strings.Join(in.Partnerships, ", ")))
	}
	paragraphs = append(paragraphs, closingParagraph(in), signature(in))

	return ComposedEmail{Subject: subject, Body: strings.Join(paragraphs, "\n\n")}
}

func introParagraph(in ComposeInput, event string) string {
	opening := "Great meeting you at"
	if ParseTone(string(in.Tone)) == ToneWarm {
		opening = "It was great meeting you at"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", in.InvestorFirstName)
	fmt.Fprintf(&b, "%s %s. I took a closer look at %s's portfolio and the fit is compelling.", opening, event, in.Firm)
	if in.Bridge != "" {
		b.WriteString(" ")
		b.WriteString(in.Bridge)
	}
	return b.String()
}

func productParagraphs(in ComposeInput, product string) []string {
	var out []string
	if in.OneLiner != "" {
		out = append(out, fmt.Sprintf("%s in one line: %s", product, in.OneLiner))
	}
	var lines []string
	if in.Positioning != "" {
		lines = append(lines, fmt.Sprintf("We're the %s.", in.Positioning))
	}
	if len(in.Differentiators) > 0 {
		line := fmt.Sprintf("For a technical audience, the core is our %s.", strings.Join(in.Differentiators, ", "))
		if in.Angle != "" {
			line += fmt.Sprintf(" (%s)", in.Angle)
		}
		lines = append(lines, line)
	} else if in.Angle != "" {
		lines = append(lines, fmt.Sprintf("(%s)", in.Angle))
	}
	if len(lines) > 0 {
		out = append(out, strings.Join(lines, "\n"))
	}
	return out
}

func closingParagraph(in ComposeInput) string {
	var lines []string
	if in.Vision != "" && ParseTone(string(in.Tone)) != ToneShort {
		lines = append(lines, in.Vision)
	}
	lines = append(lines, callToAction(in.MeetingPreference))
	return strings.Join(lines, "\n")
}

// callToAction always mentions a call or a meeting.
func callToAction(pref MeetingPref) string {
	switch ParseMeetingPref(string(pref)) {
	case MeetingZoom:
		return "Would you be open to a brief Zoom call next week to dive deeper?"
	case MeetingCoffee:
		return "Would you be open to a coffee meeting next week to dive deeper?"
	default:
		return "Would you be open to a brief call next week, over Zoom or coffee, to dive deeper?"
	}
}

func signature(in ComposeInput) string {
	lines := []string{"Best regards,", in.FromName}
	if in.FromTitle != "" {
		lines = append(lines, in.FromTitle)
	}
	if in.FromCompany != "" {
		lines = append(lines, in.FromCompany)
	}
	return strings.Join(lines, "\n")
}

// ComposeRequest drafts req with the template composer alone, no model
// involved, and reviews the result.
func ComposeRequest(ctx context.Context, req Request, p ProductProfile) (ComposedEmail, Review, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return ComposedEmail{}, Review{}, err
	}
	email := Compose(req.ComposeInput(p, BridgeAndAngle(req.BridgeInput(p))))
	review, err := RunReview(ctx, PersonalizationInput{
		EmailText:         email.Body,
		InvestorFirstName: req.InvestorFirstName,
		FirmName:          req.Firm,
		Product:           p.Name,
	})
	return email, review, err
}
