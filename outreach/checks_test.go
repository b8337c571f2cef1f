package outreach

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanBody = `Subject: Jetzy — Following up from Demo Day

Hi Everett,

Great to see you. I took a closer look at legendary ventures's portfolio.

Our traction:
• Users: 44,000+

Would you be open to a brief call next week?

Best regards,
Shama`

func personalization(body string) PersonalizationInput {
	return PersonalizationInput{
		EmailText:         body,
		InvestorFirstName: "Everett",
		FirmName:          "Legendary Ventures",
		Product:           "Jetzy",
	}
}

func containsFold(list []string, word string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), word) {
			return true
		}
	}
	return false
}

func TestCheckPersonalization_Clean(t *testing.T) {
	issues := CheckPersonalization(personalization(cleanBody))
	require.NotNil(t, issues.Issues)
	assert.Empty(t, issues.Issues)
	assert.True(t, issues.Empty())
}

func TestCheckPersonalization_FirmName(t *testing.T) {
	body := strings.ReplaceAll(cleanBody, "legendary ventures", "their")
	issues := CheckPersonalization(personalization(body))
	assert.True(t, containsFold(issues.Issues, "firm"), "%v", issues.Issues)

	// Any casing of the firm name counts as present.
	upper := strings.ReplaceAll(cleanBody, "legendary ventures", "LEGENDARY VENTURES")
	assert.False(t, containsFold(CheckPersonalization(personalization(upper)).Issues, "firm"))
}

func TestCheckPersonalization_EachRule(t *testing.T) {
	cases := []struct {
		name string
		edit func(string) string
		want string
	}{
		{"first name", func(s string) string { return strings.ReplaceAll(s, "Everett", "there") }, "Personalization: investor first name is missing."},
		{"product is case-sensitive", func(s string) string { return strings.ReplaceAll(s, "Jetzy", "jetzy") }, "Clarity: Jetzy is not clearly introduced."},
		{"call to action", func(s string) string { return strings.ReplaceAll(s, "a brief call", "a chat") }, "CTA: add a specific ask (e.g., brief call next week?)."},
		{"bullets", func(s string) string { return strings.ReplaceAll(s, "• ", "") }, "Proof points: add bullet points for traction."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues := CheckPersonalization(personalization(tc.edit(cleanBody)))
			assert.Equal(t, []string{tc.want}, issues.Issues)
		})
	}
}

func TestCheckPersonalization_MeetingCountsAsCTA(t *testing.T) {
	body := strings.ReplaceAll(cleanBody, "a brief call", "a MEETING")
	assert.Empty(t, CheckPersonalization(personalization(body)).Issues)
}

func TestCheckPersonalization_DashBullets(t *testing.T) {
	body := strings.ReplaceAll(cleanBody, "• ", "- ")
	assert.Empty(t, CheckPersonalization(personalization(body)).Issues)
}

func TestCheckScannability(t *testing.T) {
	assert.Empty(t, CheckScannability(cleanBody).Issues)

	t.Run("leading blank lines and casing", func(t *testing.T) {
		body := "\n  \nsubject: hi\n\n• a: b"
		assert.Empty(t, CheckScannability(body).Issues)
	})

	t.Run("missing subject", func(t *testing.T) {
		body := strings.TrimPrefix(cleanBody, "Subject: ")
		assert.Equal(t, []string{"Subject: first line should start with 'Subject: ...'."}, CheckScannability(body).Issues)
	})

	t.Run("empty body", func(t *testing.T) {
		assert.Equal(t, []string{
			"Subject: first line should start with 'Subject: ...'.",
			"Skim: include bullet points for traction.",
		}, CheckScannability("").Issues)
	})

	t.Run("long paragraph", func(t *testing.T) {
		body := cleanBody + "\n\n" + strings.Repeat("x", MaxParagraphRunes+1)
		assert.Equal(t, []string{"Skim: shorten long paragraphs for faster reading."}, CheckScannability(body).Issues)
	})

	t.Run("paragraph at the limit", func(t *testing.T) {
		body := cleanBody + "\n\n" + strings.Repeat("é", MaxParagraphRunes)
		assert.Empty(t, CheckScannability(body).Issues)
	})
}

func TestCheckScannability_Idempotent(t *testing.T) {
	body := "no subject\n\n" + strings.Repeat("y", 700)
	first := CheckScannability(body)
	second := CheckScannability(body)
	assert.Equal(t, first, second)
	assert.Len(t, first.Issues, 3)
}

func TestRunReview(t *testing.T) {
	body := strings.ReplaceAll(cleanBody, "legendary ventures", "their")
	body = strings.TrimPrefix(body, "Subject: ")

	review, err := RunReview(context.Background(), personalization(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"Personalization: firm name is missing."}, review.Personalization.Issues)
	assert.Equal(t, []string{"Subject: first line should start with 'Subject: ...'."}, review.Scannability.Issues)
	assert.Equal(t, append(review.Personalization.Issues, review.Scannability.Issues...), review.All())
}
