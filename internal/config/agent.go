package config

import (
	"encoding/json"
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	// EnvAgentsConfig overrides the agents definition file path.
	EnvAgentsConfig  = "PRIVPOINT_AGENTS_CONFIG"
	agentsConfigFile = "agents.json"
)

// agentEnv names the environment variables for one agent's settings.
type agentEnv struct {
	ProviderName string
	BaseURL      string
	Token        string
	Deployment   string
	APIVersion   string
	AuthType     string
	ModelName    string
}

var chatEnv = &agentEnv{
	ProviderName: "PRIVPOINT_AGENT_PROVIDER_NAME",
	BaseURL:      "PRIVPOINT_AGENT_BASE_URL",
	Token:        "PRIVPOINT_AGENT_TOKEN",
	Deployment:   "PRIVPOINT_AGENT_DEPLOYMENT",
	APIVersion:   "PRIVPOINT_AGENT_API_VERSION",
	AuthType:     "PRIVPOINT_AGENT_AUTH_TYPE",
	ModelName:    "PRIVPOINT_AGENT_MODEL_NAME",
}

var visionEnv = &agentEnv{
	ProviderName: "PRIVPOINT_VISION_PROVIDER_NAME",
	BaseURL:      "PRIVPOINT_VISION_BASE_URL",
	Token:        "PRIVPOINT_VISION_TOKEN",
	Deployment:   "PRIVPOINT_VISION_DEPLOYMENT",
	APIVersion:   "PRIVPOINT_VISION_API_VERSION",
	AuthType:     "PRIVPOINT_VISION_AUTH_TYPE",
	ModelName:    "PRIVPOINT_VISION_MODEL_NAME",
}

// AgentsConfig holds the two model agents the workflow uses: the chat agent
// backing the drafting stages and the vision agent backing OCR. Agent
// definitions live in a JSON sidecar file since go-agents configs carry
// JSON tags.
type AgentsConfig struct {
	Chat   gaconfig.AgentConfig `json:"chat" toml:"-"`
	Vision gaconfig.AgentConfig `json:"vision" toml:"-"`
}

// Load reads the agents definition file when present. Without a file,
// environment variables and defaults supply the agent settings.
func (c *AgentsConfig) Load() error {
	path := os.Getenv(EnvAgentsConfig)
	if path == "" {
		path = agentsConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read agents config: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse agents config: %w", err)
	}
	return nil
}

// Finalize applies go-agents defaults, environment variable overrides, and
// validation to both agents.
func (c *AgentsConfig) Finalize() error {
	if c.Chat.Name == "" {
		c.Chat.Name = "privacypoint-chat"
	}
	if c.Vision.Name == "" {
		c.Vision.Name = "privacypoint-vision"
	}

	if err := finalizeAgent(&c.Chat, chatEnv); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	if err := finalizeAgent(&c.Vision, visionEnv); err != nil {
		return fmt.Errorf("vision: %w", err)
	}
	return nil
}

func finalizeAgent(c *gaconfig.AgentConfig, env *agentEnv) error {
	loadAgentDefaults(c)
	loadAgentEnv(c, env)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig, env *agentEnv) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(env.ProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(env.BaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(env.ModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(env.Token, "token")
	setOption(env.Deployment, "deployment")
	setOption(env.APIVersion, "api_version")
	setOption(env.AuthType, "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
