package outreach

import (
	"fmt"
	"strings"
)

const (
	defaultThemes = "community-driven marketplaces"
	defaultHooks  = "your background"

	AngleTechnicalMoat = "Lead with technical moat (AI/ML + social graph) and community flywheel."
	AngleMarketplace   = "Position as category-defining community marketplace in travel/experiences."
	AngleCommunity     = "Emphasize community defensibility and traction as de-risking signals."
)

var technicalHooks = map[string]bool{"ai": true, "ml": true, "machine learning": true}

// BridgeAndAngle produces the personalized "why them, why now" sentence and picks
// one strategic angle. Matching is case-insensitive; the first rule that fires wins.
func BridgeAndAngle(in BridgeInput) BridgeAngle {
	themes := defaultThemes
	if len(in.Themes) > 0 {
		themes = strings.Join(in.Themes, " and ")
	}
	hooks := defaultHooks
	if len(in.Hooks) > 0 {
		hooks = strings.Join(in.Hooks, ", ")
	}
	product := in.Product
	if product == "" {
		product = "Our product"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s repeatedly backs %s. ", in.Firm, themes)
	if in.ProductOneLiner != "" {
		fmt.Fprintf(&b, "%s is %s — the %s. ", product, in.ProductOneLiner, in.Positioning)
	} else {
		fmt.Fprintf(&b, "%s is the %s. ", product, in.Positioning)
	}
	appeal := "what we are building"
	if len(in.Differentiators) > 0 {
		appeal = "our " + joinAnd(in.Differentiators)
	}
	fmt.Fprintf(&b, "Given %s, you'll appreciate %s.", hooks, appeal)

	return BridgeAngle{Bridge: b.String(), Angle: pickAngle(in.Themes, in.Hooks)}
}

func pickAngle(themes, hooks []string) string {
	lowered := make(map[string]bool, len(themes))
	for _, t := range themes {
		lowered[strings.ToLower(strings.TrimSpace(t))] = true
	}
	technical := lowered["ai-ml"]
	for _, h := range hooks {
		if technicalHooks[strings.ToLower(strings.TrimSpace(h))] {
			technical = true
		}
	}
	switch {
	case technical:
		return AngleTechnicalMoat
	case lowered["marketplace"]:
		return AngleMarketplace
	default:
		return AngleCommunity
	}
}

// joinAnd renders "a", "a and b", "a, b and c".
func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
