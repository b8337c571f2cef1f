package outreach

// Metric is one traction proof point, e.g. "Users" / "44,000+ users with ~25% MAU".
type Metric struct {
	Label string `json:"label" jsonschema:"metric name, e.g. Users"`
	Value string `json:"value" jsonschema:"metric value, e.g. 44,000+ users with ~25% MAU"`
}

// TractionItems wraps metrics for the traction_bullets tool.
type TractionItems struct {
	Items []Metric `json:"items" jsonschema:"traction metrics as label/value pairs"`
}

// BridgeInput feeds BridgeAndAngle.
type BridgeInput struct {
	Themes          []string `json:"themes,omitempty" jsonschema:"portfolio themes such as marketplace or ai-ml"`
	Hooks           []string `json:"hooks,omitempty" jsonschema:"investor hooks or background keywords"`
	Firm            string   `json:"firm" jsonschema:"investor firm"`
	Product         string   `json:"product,omitempty" jsonschema:"product name"`
	ProductOneLiner string   `json:"product_one_liner,omitempty" jsonschema:"product one-liner"`
	Positioning     string   `json:"positioning" jsonschema:"product positioning sentence"`
	Differentiators []string `json:"differentiators,omitempty" jsonschema:"core technical differentiators"`
}

// BridgeAngle is the personalization sentence plus the strategic framing.
type BridgeAngle struct {
	Bridge string `json:"bridge"`
	Angle  string `json:"angle"`
}

// ComposeInput is the typed argument of the compose_email tool.
type ComposeInput struct {
	InvestorFirstName string      `json:"investor_first_name"`
	Firm              string      `json:"firm"`
	ContextEvent      string      `json:"context_event,omitempty" jsonschema:"where we met; defaults to our recent conversation"`
	Bridge            string      `json:"bridge"`
	Angle             string      `json:"angle,omitempty"`
	Product           string      `json:"product,omitempty"`
	OneLiner          string      `json:"one_liner,omitempty"`
	Positioning       string      `json:"positioning"`
	Differentiators   []string    `json:"differentiators,omitempty"`
	TractionItems     []Metric    `json:"traction_items"`
	Partnerships      []string    `json:"partnerships,omitempty"`
	Vision            string      `json:"vision,omitempty"`
	MeetingPreference MeetingPref `json:"meeting_preference,omitempty" jsonschema:"Either, Zoom or Coffee"`
	Tone              Tone        `json:"tone,omitempty" jsonschema:"crisp, warm or short"`
	FromName          string      `json:"from_name"`
	FromTitle         string      `json:"from_title,omitempty"`
	FromCompany       string      `json:"from_company,omitempty"`
}

// ComposedEmail is produced once per request and never updated.
type ComposedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// PersonalizationInput feeds the so_what_check tool.
type PersonalizationInput struct {
	EmailText         string `json:"email_text"`
	InvestorFirstName string `json:"investor_first_name"`
	FirmName          string `json:"firm_name"`
	Product           string `json:"product,omitempty" jsonschema:"product name that must appear verbatim"`
}

// ScannabilityInput feeds the skim_check tool.
type ScannabilityInput struct {
	EmailText string `json:"email_text"`
}

// Issues lists detected deficiencies. An empty list means checked and clean.
type Issues struct {
	Issues []string `json:"issues"`
}

// Empty reports whether no issue was found.
func (i Issues) Empty() bool { return len(i.Issues) == 0 }

// MeetingPref selects the closing call-to-action.
type MeetingPref string

const (
	MeetingEither MeetingPref = "Either"
	MeetingZoom   MeetingPref = "Zoom"
	MeetingCoffee MeetingPref = "Coffee"
)

// Tone adjusts the opening and closing of the email.
type Tone string

const (
	ToneCrisp Tone = "crisp"
	ToneWarm  Tone = "warm"
	ToneShort Tone = "short"
)

// ProductProfile describes the startup being pitched.
type ProductProfile struct {
	Name            string   `yaml:"name" json:"name"`
	Company         string   `yaml:"company" json:"company"`
	OneLiner        string   `yaml:"one_liner" json:"one_liner,omitempty"`
	Positioning     string   `yaml:"positioning" json:"positioning"`
	Differentiators []string `yaml:"differentiators" json:"differentiators,omitempty"`
	Vision          string   `yaml:"vision" json:"vision,omitempty"`
}

// DefaultProduct returns the built-in Jetzy profile.
func DefaultProduct() ProductProfile {
	return ProductProfile{
		Name:        "Jetzy",
		Company:     "Jetzy",
		Positioning: "community-powered platform for the experience economy",
		Differentiators: []string{
			"AI/ML recommendation engine",
			"social graph flywheel",
		},
		Vision: "We're building the definitive platform for the experience economy, with community as our moat.",
	}
}
