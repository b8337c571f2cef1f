package outreach

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// MaxParagraphRunes is the longest paragraph the scannability check accepts.
const MaxParagraphRunes = 600

// CheckPersonalization flags missing personalization, product mention, ask, or proof points.
func CheckPersonalization(in PersonalizationInput) Issues {
	txt := in.EmailText
	lower := strings.ToLower(txt)
	issues := []string{}
	if !strings.Contains(lower, strings.ToLower(in.InvestorFirstName)) {
		issues = append(issues, "Personalization: investor first name is missing.")
	}
	if !strings.Contains(lower, strings.ToLower(in.FirmName)) {
		issues = append(issues, "Personalization: firm name is missing.")
	}
	if in.Product != "" && !strings.Contains(txt, in.Product) {
		issues = append(issues, "Clarity: "+in.Product+" is not clearly introduced.")
	}
	if !strings.Contains(lower, "call") && !strings.Contains(lower, "meeting") {
		issues = append(issues, "CTA: add a specific ask (e.g., brief call next week?).")
	}
	if !hasBullets(txt) {
		issues = append(issues, "Proof points: add bullet points for traction.")
	}
	return Issues{Issues: issues}
}

// CheckScannability flags a missing subject line, missing bullets, or long paragraphs.
func CheckScannability(body string) Issues {
	issues := []string{}
	if !strings.HasPrefix(strings.ToLower(firstNonEmptyLine(body)), "subject:") {
		issues = append(issues, "Subject: first line should start with 'Subject: ...'.")
	}
	if !hasBullets(body) {
		issues = append(issues, "Skim: include bullet points for traction.")
	}
	for _, p := range strings.Split(body, "\n\n") {
		if utf8.RuneCountInString(p) > MaxParagraphRunes {
			issues = append(issues, "Skim: shorten long paragraphs for faster reading.")
			break
		}
	}
	return Issues{Issues: issues}
}

// Review holds the results of both checkers for one body.
type Review struct {
	Personalization Issues `json:"personalization"`
	Scannability    Issues `json:"scannability"`
}

// All returns every issue, personalization first.
func (r Review) All() []string {
	out := make([]string, 0, len(r.Personalization.Issues)+len(r.Scannability.Issues))
	out = append(out, r.Personalization.Issues...)
	return append(out, r.Scannability.Issues...)
}

// RunReview runs both checkers concurrently over the same body.
func RunReview(ctx context.Context, in PersonalizationInput) (Review, error) {
	var r Review
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Personalization = CheckPersonalization(in)
		return nil
	})
	g.Go(func() error {
		r.Scannability = CheckScannability(in.EmailText)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Review{}, err
	}
	return r, ctx.Err()
}

func hasBullets(txt string) bool {
	return strings.Contains(txt, "• ") || strings.Contains(txt, "- ")
}

func firstNonEmptyLine(txt string) string {
	for _, line := range strings.Split(txt, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
