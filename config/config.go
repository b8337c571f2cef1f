// Package config loads the outreach service configuration from YAML (JSON
// files parse too) with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"investor_outreach/agent"
	"investor_outreach/outreach"
)

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = "config/config.yaml"

type Config struct {
	LLM     LLMConfig               `yaml:"llm" json:"llm"`
	Agent   AgentConfig             `yaml:"agent" json:"agent"`
	Server  ServerConfig            `yaml:"server" json:"server"`
	Logging LoggingConfig           `yaml:"logging" json:"logging"`
	Product outreach.ProductProfile `yaml:"product" json:"product"`

	// Debug attaches the raw runtime result to every draft.
	Debug bool `yaml:"debug" json:"debug"`
}

type LLMConfig struct {
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
	APIKey   string `yaml:"api_key" json:"api_key"`
	BaseURL  string `yaml:"base_url" json:"base_url"`
}

type AgentConfig struct {
	// Timeout bounds one runtime call ("45s"); empty means no limit.
	Timeout  string `yaml:"timeout" json:"timeout"`
	MaxTurns int    `yaml:"max_turns" json:"max_turns"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Agent:   AgentConfig{MaxTurns: 8},
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info"},
		Product: outreach.DefaultProduct(),
	}
}

// Load reads the config at path. A missing file yields the defaults; a .env
// file in the working directory is loaded before env overrides apply.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = decode(data); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode layers the file over the defaults. The product profile is replaced
// as a whole: fields a custom product leaves out stay empty instead of
// inheriting the built-in profile's facts.
func decode(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Product = outreach.ProductProfile{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	var section struct {
		Product *outreach.ProductProfile `yaml:"product"`
	}
	if err := yaml.Unmarshal(data, &section); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if section.Product == nil {
		cfg.Product = outreach.DefaultProduct()
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OUTREACH_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("OUTREACH_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("OUTREACH_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}

	switch c.LLM.Provider {
	case "openai", "deepseek":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	case "gemini":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	}

	if v := os.Getenv("OUTREACH_TIMEOUT"); v != "" {
		c.Agent.Timeout = v
	}
	if v := os.Getenv("OUTREACH_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("OUTREACH_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v := os.Getenv("OUTREACH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "deepseek", "gemini", "local":
	case "":
		return errors.New("llm.provider is required")
	default:
		return fmt.Errorf("llm.provider %q not supported (openai, deepseek, gemini, local)", c.LLM.Provider)
	}
	if c.Agent.MaxTurns < 0 {
		return fmt.Errorf("agent.max_turns must not be negative, got %d", c.Agent.MaxTurns)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Product.Name) == "" {
		return errors.New("product.name is required")
	}
	return nil
}

// Timeout returns the per-call runtime limit; zero means none.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Agent.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Agent.Timeout)
	if err != nil {
		return 0, fmt.Errorf("agent.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("agent.timeout must not be negative, got %s", d)
	}
	return d, nil
}

// RuntimeSettings maps the llm and agent sections onto agent.Settings.
func (c *Config) RuntimeSettings() agent.Settings {
	return agent.Settings{
		Provider: c.LLM.Provider,
		Model:    c.LLM.Model,
		APIKey:   c.LLM.APIKey,
		BaseURL:  c.LLM.BaseURL,
		MaxTurns: c.Agent.MaxTurns,
	}
}
