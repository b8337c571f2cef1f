package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestYAML = `
investor_first_name: Everett
firm: Legendary Ventures
context_event: 7BC Global VC Demo Day (NYC)
investor_background_line: former operator and technical founder with expertise in ML
firm_focus_line: marketplace and AI/ML-driven investments
users_line: 44,000+ users with ~25% MAU
growth_line: entirely organic growth ($0 paid marketing)
revenue_line: ~$450K in early B2B revenue
pipeline_line: $2M+ pipeline
partnerships_line: China and India
meeting_preference: Coffee
from_name: Shama
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"OUTREACH_PROVIDER", "OUTREACH_DEBUG", "OPENAI_API_KEY"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("llm: {provider: local}\nlogging: {level: error}\n"), 0o600))
	reqPath := filepath.Join(dir, "request.yaml")
	require.NoError(t, os.WriteFile(reqPath, []byte(requestYAML), 0o600))

	// Flag values persist on the package-level command between runs.
	inputPath, outputPath, formatName = "-", "", "txt"

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, append(args, "--input", reqPath)...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCompose_Command(t *testing.T) {
	out, errOut, err := runCLI(t, "compose")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Subject: Jetzy — Following up from 7BC Global VC Demo Day (NYC)\n"))
	assert.Contains(t, out, "a coffee meeting next week")
	assert.Empty(t, errOut)
}

func TestDraft_LocalRuntime(t *testing.T) {
	out, _, err := runCLI(t, "draft", "--format", "md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "**Subject:** Jetzy — Following up"))
	assert.Contains(t, out, "- Users: 44,000+ users with ~25% MAU")
}

func TestReadRequest_JSON(t *testing.T) {
	req, err := readRequest(strings.NewReader(`{"firm":"Acme","meeting_preference":"Zoom"}`), "-")
	require.NoError(t, err)
	assert.Equal(t, "Acme", req.Firm)
	assert.EqualValues(t, "Zoom", req.MeetingPreference)

	_, err = readRequest(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read request")
}

func TestBuildLogger(t *testing.T) {
	l, err := buildLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))

	l, err = buildLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))

	_, err = buildLogger("loud", false)
	assert.Error(t, err)
}
