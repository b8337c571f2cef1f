package outreach

import (
	"regexp"
	"strings"
)

// Request is the flat form payload. It is the only accepted request shape.
type Request struct {
	InvestorFirstName      string      `json:"investor_first_name" yaml:"investor_first_name"`
	Firm                   string      `json:"firm" yaml:"firm"`
	ContextEvent           string      `json:"context_event" yaml:"context_event"`
	InvestorBackgroundLine string      `json:"investor_background_line" yaml:"investor_background_line"`
	FirmFocusLine          string      `json:"firm_focus_line" yaml:"firm_focus_line"`
	UsersLine              string      `json:"users_line" yaml:"users_line"`
	GrowthLine             string      `json:"growth_line" yaml:"growth_line"`
	RevenueLine            string      `json:"revenue_line" yaml:"revenue_line"`
	PipelineLine           string      `json:"pipeline_line" yaml:"pipeline_line"`
	PartnershipsLine       string      `json:"partnerships_line" yaml:"partnerships_line"`
	OneLiner               string      `json:"one_liner,omitempty" yaml:"one_liner"`
	MeetingPreference      MeetingPref `json:"meeting_preference" yaml:"meeting_preference"`
	Tone                   Tone        `json:"tone,omitempty" yaml:"tone"`
	FromName               string      `json:"from_name" yaml:"from_name"`
	FromTitle              string      `json:"from_title,omitempty" yaml:"from_title"`
}

// MissingFieldsError lists the labels of blank required fields, in form order.
type MissingFieldsError struct {
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return "Please fill the required fields: " + strings.Join(e.Labels, ", ")
}

// Normalize returns a trimmed copy with enum defaults applied.
func (r Request) Normalize() Request {
	return Request{
		InvestorFirstName:      strings.TrimSpace(r.InvestorFirstName),
		Firm:                   strings.TrimSpace(r.Firm),
		ContextEvent:           strings.TrimSpace(r.ContextEvent),
		InvestorBackgroundLine: strings.TrimSpace(r.InvestorBackgroundLine),
		FirmFocusLine:          strings.TrimSpace(r.FirmFocusLine),
		UsersLine:              strings.TrimSpace(r.UsersLine),
		GrowthLine:             strings.TrimSpace(r.GrowthLine),
		RevenueLine:            strings.TrimSpace(r.RevenueLine),
		PipelineLine:           strings.TrimSpace(r.PipelineLine),
		PartnershipsLine:       strings.TrimSpace(r.PartnershipsLine),
		OneLiner:               strings.TrimSpace(r.OneLiner),
		MeetingPreference:      ParseMeetingPref(string(r.MeetingPreference)),
		Tone:                   ParseTone(string(r.Tone)),
		FromName:               strings.TrimSpace(r.FromName),
		FromTitle:              strings.TrimSpace(r.FromTitle),
	}
}

// Validate reports every blank required field at once.
func (r Request) Validate() error {
	required := []struct {
		label string
		value string
	}{
		{"Investor first name", r.InvestorFirstName},
		{"Firm", r.Firm},
		{"Event", r.ContextEvent},
		{"Investor background line", r.InvestorBackgroundLine},
		{"Firm focus line", r.FirmFocusLine},
		{"Users line", r.UsersLine},
		{"Growth line", r.GrowthLine},
		{"Revenue line", r.RevenueLine},
		{"Pipeline line", r.PipelineLine},
		{"Partnerships line", r.PartnershipsLine},
		{"Signature name", r.FromName},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.label)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Labels: missing}
	}
	return nil
}

// Metrics turns the traction lines into ordered proof points.
func (r Request) Metrics() []Metric {
	lines := []Metric{
		{Label: "Users", Value: r.UsersLine},
		{Label: "Growth", Value: r.GrowthLine},
		{Label: "Revenue", Value: r.RevenueLine},
		{Label: "Pipeline", Value: r.PipelineLine},
	}
	out := make([]Metric, 0, len(lines))
	for _, m := range lines {
		if strings.TrimSpace(m.Value) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

var aimlWord = regexp.MustCompile(`(?i)\b(ai|ml|ai/ml|machine learning)\b`)

// Themes derives portfolio themes from the firm focus line.
func (r Request) Themes() []string {
	var themes []string
	focus := strings.ToLower(r.FirmFocusLine)
	if strings.Contains(focus, "marketplace") {
		themes = append(themes, "marketplace")
	}
	if aimlWord.MatchString(focus) {
		themes = append(themes, "ai-ml")
	}
	return themes
}

// Hooks returns the investor background as a single hook.
func (r Request) Hooks() []string {
	if r.InvestorBackgroundLine == "" {
		return nil
	}
	return []string{r.InvestorBackgroundLine}
}

// BridgeInput builds the bridge_and_angle arguments for this request.
func (r Request) BridgeInput(p ProductProfile) BridgeInput {
	return BridgeInput{
		Themes:          r.Themes(),
		Hooks:           r.Hooks(),
		Firm:            r.Firm,
		Product:         p.Name,
		ProductOneLiner: r.oneLiner(p),
		Positioning:     p.Positioning,
		Differentiators: p.Differentiators,
	}
}

// ComposeInput builds the compose_email arguments for this request.
func (r Request) ComposeInput(p ProductProfile, ba BridgeAngle) ComposeInput {
	var partnerships []string
	if r.PartnershipsLine != "" {
		partnerships = []string{r.PartnershipsLine}
	}
	company := p.Company
	if company == "" {
		company = p.Name
	}
	return ComposeInput{
		InvestorFirstName: r.InvestorFirstName,
		Firm:              r.Firm,
		ContextEvent:      r.ContextEvent,
		Bridge:            ba.Bridge,
		Angle:             ba.Angle,
		Product:           p.Name,
		OneLiner:          r.oneLiner(p),
		Positioning:       p.Positioning,
		Differentiators:   p.Differentiators,
		TractionItems:     r.Metrics(),
		Partnerships:      partnerships,
		Vision:            p.Vision,
		MeetingPreference: r.MeetingPreference,
		Tone:              r.Tone,
		FromName:          r.FromName,
		FromTitle:         r.FromTitle,
		FromCompany:       company,
	}
}

func (r Request) oneLiner(p ProductProfile) string {
	if r.OneLiner != "" {
		return r.OneLiner
	}
	return p.OneLiner
}

// ParseMeetingPref maps free text onto a known preference, defaulting to Either.
func ParseMeetingPref(s string) MeetingPref {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zoom":
		return MeetingZoom
	case "coffee":
		return MeetingCoffee
	default:
		return MeetingEither
	}
}

// ParseTone maps free text onto a known tone, defaulting to crisp.
func ParseTone(s string) Tone {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warm":
		return ToneWarm
	case "short":
		return ToneShort
	default:
		return ToneCrisp
	}
}
