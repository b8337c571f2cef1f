package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investor_outreach/agent"
	"investor_outreach/outreach"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OUTREACH_PROVIDER", "OUTREACH_MODEL", "OUTREACH_BASE_URL", "OUTREACH_TIMEOUT",
		"OUTREACH_ADDR", "OUTREACH_DEBUG", "OUTREACH_LOG_LEVEL",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Agent.MaxTurns)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "Jetzy", cfg.Product.Name)

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
llm:
  provider: deepseek
  model: deepseek-chat
  api_key: from-file
  base_url: https://api.deepseek.com/v1/
agent:
  timeout: 45s
  max_turns: 4
server:
  addr: ":9000"
debug: true
product:
  name: Acme
  company: Acme Inc.
  positioning: operating system for field teams
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, agent.Settings{
		Provider: "deepseek",
		Model:    "deepseek-chat",
		APIKey:   "from-file",
		BaseURL:  "https://api.deepseek.com/v1/",
		MaxTurns: 4,
	}, cfg.RuntimeSettings())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "Acme Inc.", cfg.Product.Company)
	assert.Empty(t, cfg.Product.Differentiators)

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)
}

func TestLoad_CustomProductReplacesDefault(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
llm:
  provider: local
product:
  name: Acme
  company: Acme Inc.
  positioning: operating system for field teams
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, outreach.ProductProfile{
		Name:        "Acme",
		Company:     "Acme Inc.",
		Positioning: "operating system for field teams",
	}, cfg.Product)

	email, _, err := outreach.ComposeRequest(context.Background(), outreach.Request{
		InvestorFirstName:      "Everett",
		Firm:                   "Legendary Ventures",
		ContextEvent:           "Demo Day",
		InvestorBackgroundLine: "former operator with expertise in ML",
		FirmFocusLine:          "marketplace investments",
		UsersLine:              "44,000+ users",
		GrowthLine:             "organic growth",
		RevenueLine:            "~$450K revenue",
		PipelineLine:           "$2M+ pipeline",
		PartnershipsLine:       "China and India",
		MeetingPreference:      outreach.MeetingZoom,
		FromName:               "Shama",
	}, cfg.Product)
	require.NoError(t, err)
	assert.Contains(t, email.Body, "Acme")
	assert.NotContains(t, email.Body, "AI/ML recommendation engine")
	assert.NotContains(t, email.Body, "experience economy")
}

func TestLoad_JSON(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.json", `{"llm":{"provider":"local"},"server":{"addr":":7000"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.LLM.Provider)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "Jetzy", cfg.Product.Name)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"bad yaml":       "llm: [",
		"provider":       "llm: {provider: claude}",
		"timeout":        "agent: {timeout: soon}",
		"negative turns": "agent: {max_turns: -1}",
		"product name":   "product: {name: ''}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("provider and server settings", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OUTREACH_PROVIDER", "deepseek")
		t.Setenv("OUTREACH_MODEL", "deepseek-chat")
		t.Setenv("OUTREACH_BASE_URL", "https://gateway.example/v1/")
		t.Setenv("OPENAI_API_KEY", "sk-env")
		t.Setenv("OUTREACH_ADDR", ":8600")
		t.Setenv("OUTREACH_TIMEOUT", "30s")

		cfg := DefaultConfig()
		cfg.LLM.APIKey = "from-file"
		cfg.applyEnvOverrides()

		assert.Equal(t, "deepseek", cfg.LLM.Provider)
		assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
		assert.Equal(t, "https://gateway.example/v1/", cfg.LLM.BaseURL)
		assert.Equal(t, "sk-env", cfg.LLM.APIKey)
		assert.Equal(t, ":8600", cfg.Server.Addr)
		assert.Equal(t, "30s", cfg.Agent.Timeout)
	})

	t.Run("gemini keys", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OUTREACH_PROVIDER", "gemini")
		t.Setenv("OPENAI_API_KEY", "sk-ignored")
		t.Setenv("GOOGLE_API_KEY", "google-key")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "google-key", cfg.LLM.APIKey)

		t.Setenv("GEMINI_API_KEY", "gemini-key")
		cfg.applyEnvOverrides()
		assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
	})

	t.Run("debug flag", func(t *testing.T) {
		clearEnv(t)
		cfg := DefaultConfig()

		t.Setenv("OUTREACH_DEBUG", "1")
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Debug)

		t.Setenv("OUTREACH_DEBUG", "not-a-bool")
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Debug)

		t.Setenv("OUTREACH_DEBUG", "false")
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Debug)
	})
}
