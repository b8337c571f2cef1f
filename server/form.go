package server

import (
	"html/template"
	"net/url"

	"investor_outreach/outreach"
)

type formField struct {
	Name     string
	Label    string
	Value    string
	Required bool
	Options  []string
}

type formSection struct {
	Title  string
	Fields []formField
}

type draftView struct {
	Text    string
	Runtime string
	Issues  []string
	Preview template.HTML
	Formats []string
	Debug   string
}

type pageData struct {
	Title    string
	Sections []formSection
	Error    string
	Trace    string
	Draft    *draftView
}

// defaultRequest pre-fills the form with a worked example.
func defaultRequest() outreach.Request {
	return outreach.Request{
		InvestorFirstName:      "Everett",
		Firm:                   "Legendary Ventures",
		ContextEvent:           "7BC Global VC Demo Day (NYC)",
		InvestorBackgroundLine: "former operator and technical founder with expertise in ML and full-stack development",
		FirmFocusLine:          "marketplace and AI/ML-driven investments",
		UsersLine:              "44,000+ users with ~25% MAU",
		GrowthLine:             "entirely organic growth ($0 paid marketing)",
		RevenueLine:            "~$450K in early B2B revenue",
		PipelineLine:           "$2M+ pipeline",
		PartnershipsLine:       "China and India",
		MeetingPreference:      outreach.MeetingEither,
		Tone:                   outreach.ToneCrisp,
		FromName:               "Shama",
	}
}

func formSections(r outreach.Request) []formSection {
	return []formSection{
		{Title: "Investor & Event", Fields: []formField{
			{Name: "investor_first_name", Label: "Investor first name", Value: r.InvestorFirstName, Required: true},
			{Name: "firm", Label: "Firm", Value: r.Firm, Required: true},
			{Name: "context_event", Label: "Event", Value: r.ContextEvent, Required: true},
		}},
		{Title: "Personalization Lines", Fields: []formField{
			{Name: "investor_background_line", Label: "Investor background line", Value: r.InvestorBackgroundLine, Required: true},
			{Name: "firm_focus_line", Label: "Firm focus line", Value: r.FirmFocusLine, Required: true},
		}},
		{Title: "Traction & Proof", Fields: []formField{
			{Name: "users_line", Label: "Users line", Value: r.UsersLine, Required: true},
			{Name: "growth_line", Label: "Growth line", Value: r.GrowthLine, Required: true},
			{Name: "revenue_line", Label: "Revenue line", Value: r.RevenueLine, Required: true},
			{Name: "pipeline_line", Label: "Pipeline line", Value: r.PipelineLine, Required: true},
			{Name: "partnerships_line", Label: "Partnerships line", Value: r.PartnershipsLine, Required: true},
			{Name: "one_liner", Label: "One-liner", Value: r.OneLiner},
		}},
		{Title: "Closing", Fields: []formField{
			{Name: "meeting_preference", Label: "Meeting preference", Value: string(r.MeetingPreference), Required: true,
				Options: []string{string(outreach.MeetingEither), string(outreach.MeetingZoom), string(outreach.MeetingCoffee)}},
			{Name: "tone", Label: "Tone", Value: string(r.Tone), Required: true,
				Options: []string{string(outreach.ToneCrisp), string(outreach.ToneWarm), string(outreach.ToneShort)}},
			{Name: "from_name", Label: "Signature name", Value: r.FromName, Required: true},
			{Name: "from_title", Label: "Signature title", Value: r.FromTitle},
		}},
	}
}

// requestFromForm reads the posted fields as typed; trimming happens in
// the orchestrator so the form echoes back what the user entered.
func requestFromForm(v url.Values) outreach.Request {
	return outreach.Request{
		InvestorFirstName:      v.Get("investor_first_name"),
		Firm:                   v.Get("firm"),
		ContextEvent:           v.Get("context_event"),
		InvestorBackgroundLine: v.Get("investor_background_line"),
		FirmFocusLine:          v.Get("firm_focus_line"),
		UsersLine:              v.Get("users_line"),
		GrowthLine:             v.Get("growth_line"),
		RevenueLine:            v.Get("revenue_line"),
		PipelineLine:           v.Get("pipeline_line"),
		PartnershipsLine:       v.Get("partnerships_line"),
		OneLiner:               v.Get("one_liner"),
		MeetingPreference:      outreach.MeetingPref(v.Get("meeting_preference")),
		Tone:                   outreach.Tone(v.Get("tone")),
		FromName:               v.Get("from_name"),
		FromTitle:              v.Get("from_title"),
	}
}
