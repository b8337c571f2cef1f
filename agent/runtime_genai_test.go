package agent

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"investor_outreach/outreach"
)

func TestGeminiRuntime_FunctionCallLoop(t *testing.T) {
	var turns atomic.Int32
	var secondBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if turns.Add(1) == 1 {
			assert.Contains(t, string(body), `"functionDeclarations"`)
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[` +
				`{"functionCall":{"id":"fc_1","name":"skim_check","args":{"email_text":"no subject"}}}]}}]}`))
			return
		}
		secondBody = string(body)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Subject: Jetzy"},{"text":"• Users: 1"}]}}]}`))
	}))
	defer srv.Close()

	rt, err := NewGeminiRuntime(Settings{APIKey: "k", BaseURL: srv.URL + "/", MaxTurns: 3}, zaptest.NewLogger(t))
	require.NoError(t, err)
	tb, err := NewToolbox(outreach.DefaultProduct())
	require.NoError(t, err)

	res, err := rt.Run(context.Background(), Conversation{
		System:   "system",
		Messages: []ChatMessage{{Role: "user", Content: "{}"}},
	}, tb)
	require.NoError(t, err)
	assert.IsType(t, Document{}, res)
	assert.Equal(t, "Subject: Jetzy\n• Users: 1", Extract(res))

	assert.Equal(t, int32(2), turns.Load())
	assert.Contains(t, secondBody, `"functionResponse"`)
	assert.Contains(t, secondBody, "Skim: include bullet points for traction.")
}
